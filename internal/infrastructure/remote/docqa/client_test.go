package docqa

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kirillkom/docqa-client/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	contract, err := LoadContract(context.Background())
	if err != nil {
		t.Fatalf("LoadContract() error = %v", err)
	}
	return NewWithOptions(server.URL+"/", Options{Contract: contract})
}

func writeJSONBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestUploadDocumentSendsMultipartFile(t *testing.T) {
	var (
		gotPath        string
		gotName        string
		gotContentType string
		gotData        string
		gotRequestID   string
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get(requestIDHeader)
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile() error = %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		raw, _ := io.ReadAll(file)
		gotName = header.Filename
		gotContentType = header.Header.Get("Content-Type")
		gotData = string(raw)
		writeJSONBody(w, http.StatusOK, `{"message":"PDF enviado com sucesso!","filename":"report.pdf"}`)
	})

	receipt, err := client.UploadDocument(context.Background(), domain.File{
		Name:        "report.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 body"),
	})
	if err != nil {
		t.Fatalf("UploadDocument() error = %v", err)
	}
	if receipt.DocumentID != "report.pdf" || receipt.Message == "" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if gotPath != "/upload/" {
		t.Fatalf("expected /upload/, got %s", gotPath)
	}
	if gotName != "report.pdf" || gotContentType != "application/pdf" || gotData != "%PDF-1.4 body" {
		t.Fatalf("unexpected part: name=%s type=%s data=%s", gotName, gotContentType, gotData)
	}
	if gotRequestID == "" {
		t.Fatalf("expected request id header")
	}
}

func TestAskQuestionSendsDocumentAndQuestion(t *testing.T) {
	var gotFilename, gotQuestion string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ask/" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
		}
		gotFilename = r.FormValue("filename")
		gotQuestion = r.FormValue("question")
		writeJSONBody(w, http.StatusOK, `{"answer":"It is a quarterly report."}`)
	})

	answer, err := client.AskQuestion(context.Background(), "report.pdf", "What is the summary?")
	if err != nil {
		t.Fatalf("AskQuestion() error = %v", err)
	}
	if answer.Text != "It is a quarterly report." {
		t.Fatalf("unexpected answer: %q", answer.Text)
	}
	if gotFilename != "report.pdf" || gotQuestion != "What is the summary?" {
		t.Fatalf("unexpected form: filename=%s question=%s", gotFilename, gotQuestion)
	}
}

func TestUploadDocumentIncludesRemoteDetailInError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(w, http.StatusBadRequest, `{"detail":"Could not extract text from the PDF."}`)
	})

	_, err := client.UploadDocument(context.Background(), domain.File{Name: "scan.pdf", Data: []byte("x")})
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected HTTPStatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", statusErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "Could not extract text") {
		t.Fatalf("expected remote detail in error, got %v", err)
	}
}

func TestUploadDocumentRejectsMissingFilename(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(w, http.StatusOK, `{"message":"ok"}`)
	})

	if _, err := client.UploadDocument(context.Background(), domain.File{Name: "a.pdf", Data: []byte("x")}); err == nil {
		t.Fatalf("expected error for response without filename")
	}
}

func TestUploadDocumentRejectsNonJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>gateway</html>")
	})

	if _, err := client.UploadDocument(context.Background(), domain.File{Name: "a.pdf", Data: []byte("x")}); err == nil {
		t.Fatalf("expected error for non-json body")
	}
}

func TestAskQuestionReportsRemoteErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(w, http.StatusOK, `{"error":"upstream model failed","status_code":503}`)
	})

	_, err := client.AskQuestion(context.Background(), "report.pdf", "q")
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remoteErr.Message != "upstream model failed" {
		t.Fatalf("unexpected remote message: %q", remoteErr.Message)
	}
}

func TestAskQuestionWithoutContractStillRequiresAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(w, http.StatusOK, `{"detail":"Arquivo não encontrado."}`)
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.AskQuestion(context.Background(), "missing.pdf", "q")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "Arquivo não encontrado.") {
		t.Fatalf("expected remote detail in error, got %v", err)
	}
}

func TestAskQuestionAcceptsEmptyAnswer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(w, http.StatusOK, `{"answer":""}`)
	})

	answer, err := client.AskQuestion(context.Background(), "report.pdf", "q")
	if err != nil {
		t.Fatalf("AskQuestion() error = %v", err)
	}
	if answer.Text != "" {
		t.Fatalf("expected empty answer, got %q", answer.Text)
	}
}

func TestUploadDocumentNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(url)
	_, err := client.UploadDocument(context.Background(), domain.File{Name: "a.pdf", Data: []byte("x")})
	if err == nil || !strings.Contains(err.Error(), "docqa upload request") {
		t.Fatalf("expected transport error, got %v", err)
	}
}
