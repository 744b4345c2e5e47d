package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kirillkom/docqa-client/internal/config"
	"github.com/kirillkom/docqa-client/internal/core/domain"
	"github.com/kirillkom/docqa-client/internal/core/ports"
	"github.com/kirillkom/docqa-client/internal/core/usecase"
	"github.com/kirillkom/docqa-client/internal/infrastructure/events/nats"
	"github.com/kirillkom/docqa-client/internal/infrastructure/files/localfs"
	"github.com/kirillkom/docqa-client/internal/infrastructure/inspect/pdfmeta"
	"github.com/kirillkom/docqa-client/internal/infrastructure/notify"
	"github.com/kirillkom/docqa-client/internal/infrastructure/remote/docqa"
	"github.com/kirillkom/docqa-client/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Session  *domain.Session
	Files    ports.FileSource
	Uploader ports.DocumentUploader
	Asker    ports.QuestionAsker
	Metrics  *metrics.ClientMetrics

	closeFn func()
}

// New wires one session. notifier is the surface's own notifier; display may
// be nil when the surface returns answers directly.
func New(
	ctx context.Context,
	cfg config.Config,
	service string,
	logger *slog.Logger,
	notifier ports.Notifier,
	display ports.AnswerDisplay,
) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var contract *docqa.Contract
	if cfg.ValidateContract {
		loaded, err := docqa.LoadContract(ctx)
		if err != nil {
			return nil, fmt.Errorf("load remote contract: %w", err)
		}
		contract = loaded
	}

	remote := docqa.NewWithOptions(cfg.APIBaseURL, docqa.Options{
		UploadPath: cfg.UploadPath,
		AskPath:    cfg.AskPath,
		Timeout:    cfg.HTTPTimeout(),
		Contract:   contract,
		Logger:     logger,
	})

	notifiers := notify.Fanout{notifier}
	closeFn := func() {}
	if cfg.NATSURL != "" {
		publisher, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("init notification publisher: %w", err)
		}
		notifiers = append(notifiers, publisher)
		closeFn = publisher.Close
		logger.Info("notifications_mirrored", "subject", cfg.NATSSubject)
	}

	var inspector ports.FileInspector
	if cfg.InspectPDF {
		inspector = pdfmeta.NewInspector()
	}

	clientMetrics := metrics.NewClientMetrics(service)
	session := domain.NewSession(uuid.NewString())

	return &App{
		Config: cfg,

		Session:  session,
		Files:    localfs.New(cfg.FilesBasePath, int64(cfg.MaxFileBytes)),
		Uploader: usecase.NewUploadCoordinator(remote, notifiers, inspector, clientMetrics, logger),
		Asker:    usecase.NewQueryCoordinator(remote, notifiers, display, clientMetrics, logger),
		Metrics:  clientMetrics,

		closeFn: closeFn,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
