package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kirillkom/docqa-client/internal/core/domain"
	"github.com/kirillkom/docqa-client/internal/core/ports"
)

const operationAsk = "ask"

var (
	errNoDocument    = errors.New("no document uploaded")
	errEmptyQuestion = errors.New("question is empty")
)

type QueryCoordinator struct {
	remote   ports.DocumentService
	display  ports.AnswerDisplay
	reporter reporter
}

// NewQueryCoordinator builds the question flow. display, recorder and logger may be nil.
func NewQueryCoordinator(
	remote ports.DocumentService,
	notifier ports.Notifier,
	display ports.AnswerDisplay,
	recorder ports.OperationRecorder,
	logger *slog.Logger,
) *QueryCoordinator {
	return &QueryCoordinator{
		remote:   remote,
		display:  display,
		reporter: newReporter(notifier, recorder, logger),
	}
}

func (uc *QueryCoordinator) Ask(
	ctx context.Context,
	session *domain.Session,
	question string,
) (domain.Answer, error) {
	started := uc.reporter.start(operationAsk)
	answer, err := uc.ask(ctx, session, question)
	uc.reporter.finish(operationAsk, started, err)
	return answer, err
}

func (uc *QueryCoordinator) ask(
	ctx context.Context,
	session *domain.Session,
	question string,
) (domain.Answer, error) {
	log := uc.reporter.logger.With("session_id", sessionID(session), "operation", operationAsk)

	var (
		documentID domain.DocumentID
		ok         bool
		cause      error
	)
	if session != nil {
		documentID, ok = session.DocumentID()
	}
	switch {
	case session == nil:
		cause = errSessionIsRequired
	case !ok:
		cause = errNoDocument
	case strings.TrimSpace(question) == "":
		cause = errEmptyQuestion
	}
	if cause != nil {
		err := domain.WrapError(domain.ErrPrecondition, operationAsk, cause)
		log.Warn("ask_rejected", "error", err)
		uc.reporter.notifyFailure(ctx, session, err)
		return domain.Answer{}, err
	}

	answer, err := uc.remote.AskQuestion(ctx, documentID, question)
	if err != nil {
		wrapped := domain.WrapError(domain.ErrQuery, operationAsk, err)
		log.Error("query_failed", "document_id", string(documentID), "error", err)
		uc.reporter.notifyFailure(ctx, session, wrapped)
		return domain.Answer{}, wrapped
	}

	if uc.display != nil {
		uc.display.ShowAnswer(answer.Text)
	}
	log.Info("question_answered", "document_id", string(documentID), "answer_chars", len(answer.Text))
	return answer, nil
}
