package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kirillkom/docqa-client/internal/core/domain"
	"github.com/kirillkom/docqa-client/internal/core/ports"
)

const operationUpload = "upload"

var (
	errNoFileSelected    = errors.New("no file selected")
	errEmptyDocumentID   = errors.New("response carries an empty document identifier")
	errSessionIsRequired = errors.New("session is required")
)

type UploadCoordinator struct {
	remote    ports.DocumentService
	inspector ports.FileInspector
	reporter  reporter
}

// NewUploadCoordinator builds the upload flow. inspector, recorder and logger may be nil.
func NewUploadCoordinator(
	remote ports.DocumentService,
	notifier ports.Notifier,
	inspector ports.FileInspector,
	recorder ports.OperationRecorder,
	logger *slog.Logger,
) *UploadCoordinator {
	return &UploadCoordinator{
		remote:    remote,
		inspector: inspector,
		reporter:  newReporter(notifier, recorder, logger),
	}
}

func (uc *UploadCoordinator) Upload(
	ctx context.Context,
	session *domain.Session,
	file *domain.File,
) (domain.DocumentID, error) {
	started := uc.reporter.start(operationUpload)
	id, err := uc.upload(ctx, session, file)
	uc.reporter.finish(operationUpload, started, err)
	return id, err
}

func (uc *UploadCoordinator) upload(
	ctx context.Context,
	session *domain.Session,
	file *domain.File,
) (domain.DocumentID, error) {
	log := uc.reporter.logger.With("session_id", sessionID(session), "operation", operationUpload)

	if session == nil {
		err := domain.WrapError(domain.ErrPrecondition, operationUpload, errSessionIsRequired)
		log.Error("upload_rejected", "error", err)
		uc.reporter.notifyFailure(ctx, session, err)
		return "", err
	}

	if file.Empty() {
		err := domain.WrapError(domain.ErrMissingInput, operationUpload, errNoFileSelected)
		log.Warn("upload_rejected", "error", err)
		uc.reporter.notifyFailure(ctx, session, err)
		return "", err
	}

	uc.inspect(ctx, log, *file)

	receipt, err := uc.remote.UploadDocument(ctx, *file)
	if err == nil && receipt.DocumentID == "" {
		err = errEmptyDocumentID
	}
	if err != nil {
		wrapped := domain.WrapError(domain.ErrUpload, operationUpload, err)
		log.Error("upload_failed", "filename", file.Name, "error", err)
		uc.reporter.notifyFailure(ctx, session, wrapped)
		return "", wrapped
	}

	previous, replaced := session.DocumentID()
	session.SetDocumentID(receipt.DocumentID)

	attrs := []any{"filename", file.Name, "document_id", string(receipt.DocumentID)}
	if replaced {
		attrs = append(attrs, "replaced_document_id", string(previous))
	}
	log.Info("document_uploaded", attrs...)

	uc.reporter.notifySuccess(ctx, session, MsgUploadSucceeded, successDetail(receipt))
	return receipt.DocumentID, nil
}

func (uc *UploadCoordinator) inspect(ctx context.Context, log *slog.Logger, file domain.File) {
	if uc.inspector == nil {
		return
	}
	info, err := uc.inspector.Inspect(ctx, file)
	if err != nil {
		log.Warn("file_inspection_failed", "filename", file.Name, "error", err)
		return
	}
	if info.Pages == 0 {
		log.Warn("file_not_pdf", "filename", file.Name, "content_type", info.ContentType, "bytes", info.Size)
		return
	}
	log.Debug("file_inspected", "filename", file.Name, "pages", info.Pages, "bytes", info.Size)
}

func successDetail(receipt domain.UploadReceipt) string {
	if receipt.Message == "" {
		return fmt.Sprintf("document: %s", receipt.DocumentID)
	}
	return fmt.Sprintf("%s (document: %s)", receipt.Message, receipt.DocumentID)
}
