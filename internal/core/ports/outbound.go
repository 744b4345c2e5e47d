package ports

import (
	"context"
	"time"

	"github.com/kirillkom/docqa-client/internal/core/domain"
)

// DocumentService is the remote ingestion and question-answering service.
type DocumentService interface {
	UploadDocument(ctx context.Context, file domain.File) (domain.UploadReceipt, error)
	AskQuestion(ctx context.Context, documentID domain.DocumentID, question string) (domain.Answer, error)
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification) error
}

// AnswerDisplay renders the latest answer, replacing the previous one.
type AnswerDisplay interface {
	ShowAnswer(text string)
}

// FileSource turns a user selection into a payload. An empty selection yields nil.
type FileSource interface {
	Load(ctx context.Context, path string) (*domain.File, error)
}

// FileInspector reads local metadata of a file before it is sent.
type FileInspector interface {
	Inspect(ctx context.Context, file domain.File) (domain.FileInfo, error)
}

// OperationRecorder observes coordinator outcomes.
type OperationRecorder interface {
	StartOperation(operation string)
	FinishOperation(operation, outcome string, duration time.Duration)
}
