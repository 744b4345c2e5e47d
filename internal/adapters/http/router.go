package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/kirillkom/docqa-client/internal/core/domain"
	"github.com/kirillkom/docqa-client/internal/core/ports"
	"github.com/kirillkom/docqa-client/internal/core/usecase"
)

const defaultMaxUploadBytes = 50 << 20

// Router exposes the session over local HTTP so a browser or script can drive
// the same upload and ask flow as the console.
type Router struct {
	session        *domain.Session
	uploader       ports.DocumentUploader
	asker          ports.QuestionAsker
	metrics        http.Handler
	logger         *slog.Logger
	maxUploadBytes int64
}

func NewRouter(
	session *domain.Session,
	uploader ports.DocumentUploader,
	asker ports.QuestionAsker,
	metrics http.Handler,
	logger *slog.Logger,
	maxUploadBytes int64,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Router{
		session:        session,
		uploader:       uploader,
		asker:          asker,
		metrics:        metrics,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics)
	}
	mux.HandleFunc("/v1/session", rt.sessionStatus)
	mux.HandleFunc("/v1/upload", rt.upload)
	mux.HandleFunc("/v1/ask", rt.ask)
	return requestIDMiddleware(accessLogMiddleware(rt.logger, mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) sessionStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	id, _ := rt.session.DocumentID()
	writeJSON(w, http.StatusOK, map[string]string{
		"session_id":  rt.session.ID(),
		"state":       string(rt.session.State()),
		"document_id": string(id),
	})
}

func (rt *Router) upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, err := rt.readFile(w, r)
	if err != nil {
		rt.logger.Warn("upload_form_unreadable",
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"error": fmt.Sprintf("file exceeds %d bytes", tooLarge.Limit),
				"kind":  "too_large",
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid form",
			"kind":  "invalid_form",
		})
		return
	}

	id, err := rt.uploader.Upload(r.Context(), rt.session, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"document_id": string(id),
		"message":     usecase.MsgUploadSucceeded,
	})
}

// readFile returns nil without error when the form has no "file" part. Bodies
// over the limit fail with *http.MaxBytesError.
func (rt *Router) readFile(w http.ResponseWriter, r *http.Request) (*domain.File, error) {
	if r.ContentLength > rt.maxUploadBytes {
		return nil, &http.MaxBytesError{Limit: rt.maxUploadBytes}
	}
	r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)
	part, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, fmt.Errorf("read file part: %w", err)
	}
	return &domain.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	answer, err := rt.asker.Ask(r.Context(), rt.session, req.Question)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{
		"error": usecase.UserMessage(err),
		"kind":  errorKindName(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
