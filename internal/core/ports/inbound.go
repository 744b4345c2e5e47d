package ports

import (
	"context"

	"github.com/kirillkom/docqa-client/internal/core/domain"
)

// DocumentUploader is the inbound contract for sending a selected document.
type DocumentUploader interface {
	Upload(ctx context.Context, session *domain.Session, file *domain.File) (domain.DocumentID, error)
}

// QuestionAsker is the inbound contract for questions about the uploaded document.
type QuestionAsker interface {
	Ask(ctx context.Context, session *domain.Session, question string) (domain.Answer, error)
}
