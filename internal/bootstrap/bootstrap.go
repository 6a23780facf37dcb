package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpadapter "github.com/ggh0223/lias-client-sub001/internal/adapters/http"
	"github.com/ggh0223/lias-client-sub001/internal/config"
	"github.com/ggh0223/lias-client-sub001/internal/infrastructure/extractor/pdfimport"
	natsnotify "github.com/ggh0223/lias-client-sub001/internal/infrastructure/notify/nats"
	"github.com/ggh0223/lias-client-sub001/internal/infrastructure/resilience"
	"github.com/ggh0223/lias-client-sub001/internal/infrastructure/workflowapi"
	"github.com/ggh0223/lias-client-sub001/internal/observability/metrics"
)

type App struct {
	Config   config.Config
	Router   *httpadapter.Router
	Sessions *httpadapter.Sessions
	Metrics  *metrics.HTTPServerMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	httpMetrics := metrics.NewHTTPServerMetrics("gateway")
	remoteMetrics := metrics.NewRemoteClientMetrics("gateway", httpMetrics.Registry())

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	engine := workflowapi.New(cfg.EngineURL, executor, remoteMetrics)

	sessions := httpadapter.NewSessions(engine, engine, time.Duration(cfg.SessionIdleTTLMillis)*time.Millisecond)
	router := httpadapter.NewRouter(cfg, sessions, pdfimport.NewExtractor(), httpMetrics)

	closeFn := func() {}
	if cfg.NATSURL != "" {
		subscriber, err := natsnotify.New(cfg.NATSURL, cfg.NATSStepSubject)
		if err != nil {
			return nil, fmt.Errorf("init step-event subscriber: %w", err)
		}
		err = subscriber.SubscribeStepChanges(ctx, func(ctx context.Context, userID string) error {
			slog.Debug("step_event", "user_id", userID)
			sessions.RefreshAllPending(ctx)
			return nil
		})
		if err != nil {
			subscriber.Close()
			return nil, fmt.Errorf("subscribe step events: %w", err)
		}
		closeFn = subscriber.Close
	}

	return &App{
		Config:   cfg,
		Router:   router,
		Sessions: sessions,
		Metrics:  httpMetrics,
		closeFn:  closeFn,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
