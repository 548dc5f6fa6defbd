package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	appfantasy "github.com/preston-bernstein/fantasy-data-service/internal/app/fantasy"
	"github.com/preston-bernstein/fantasy-data-service/internal/config"
	httpserver "github.com/preston-bernstein/fantasy-data-service/internal/http"
	"github.com/preston-bernstein/fantasy-data-service/internal/http/handlers"
	"github.com/preston-bernstein/fantasy-data-service/internal/logging"
	"github.com/preston-bernstein/fantasy-data-service/internal/metrics"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg             config.Config
	logger          *slog.Logger
	metrics         *metrics.Recorder
	service         *appfantasy.Service
	httpServer      httpServer
	metricsServer   httpServer
	metricsStop     func(context.Context) error
	releaseProvider func()
}

// New constructs a server backed by the Sleeper client described in cfg.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.Provider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.Provider, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	var release func()
	if provider == nil {
		provider, release = factory.build(cfg)
	} else {
		provider, release = factory.wrap(cfg.Resilience, provider)
	}
	svc := appfantasy.NewService(provider, logger, recorder)
	httpSrv := buildHTTPServer(cfg, svc, logger, recorder)

	return &Server{
		cfg:             cfg,
		logger:          logger,
		metrics:         recorder,
		service:         svc,
		httpServer:      httpSrv,
		metricsServer:   metricsSrv,
		metricsStop:     metricsShutdown,
		releaseProvider: release,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *appfantasy.Service, httpSrv httpServer, release func()) *Server {
	return &Server{
		cfg:             cfg,
		logger:          logger,
		service:         svc,
		httpServer:      httpSrv,
		releaseProvider: release,
	}
}

func buildHTTPServer(cfg config.Config, svc *appfantasy.Service, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(svc, logger)
	router := httpserver.NewRouter(handler, logger, recorder)

	return newNetHTTPServer(cfg.Port, router, apiTimeouts(cfg))
}

// Run serves the API (and the metrics listener when configured) until ctx is done, then
// drains and releases everything. A listener that fails to start calls stop.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	if s.metricsServer != nil {
		launchServer("metrics", s.metricsServer, s.logger, nil)
	}
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

// shutdownStep is one component stopped during gracefulShutdown.
type shutdownStep struct {
	name  string
	level slog.Level
	run   func(context.Context) error
}

// shutdownSteps lists components in stop order. The provider is released only after the API
// listener has drained, so no in-flight Sleeper call loses its rate-limit ticker.
func (s *Server) shutdownSteps() []shutdownStep {
	steps := []shutdownStep{{name: "graceful shutdown", level: slog.LevelError, run: s.httpServer.Shutdown}}
	if s.releaseProvider != nil {
		steps = append(steps, shutdownStep{name: "provider release", level: slog.LevelWarn, run: func(context.Context) error {
			s.releaseProvider()
			return nil
		}})
	}
	if s.metricsStop != nil {
		steps = append(steps, shutdownStep{name: "metrics shutdown", level: slog.LevelWarn, run: s.metricsStop})
	}
	if s.metricsServer != nil {
		steps = append(steps, shutdownStep{name: "metrics server shutdown", level: slog.LevelWarn, run: s.metricsServer.Shutdown})
	}
	return steps
}

func (s *Server) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, step := range s.shutdownSteps() {
		if err := step.run(ctx); err != nil && s.logger != nil {
			s.logger.Log(ctx, step.level, step.name+" failed", slog.Any("error", err))
		}
	}
	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	telemetry := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}
	rec, handler, shutdown, err := metricsSetup(context.Background(), telemetry)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any("error", err))
		return metrics.NewRecorder(), nil, nil
	}
	if handler == nil || !telemetry.Enabled {
		return rec, nil, shutdown
	}
	return rec, newNetHTTPServer(telemetry.Port, handler, metricsTimeouts()), shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	logging.Info(logger, name+" server starting", slog.String("addr", srv.Addr()))
	go func() {
		err := srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		logging.Warn(logger, name+" server failed", slog.Any("error", err))
		if onError != nil {
			onError(err)
		}
	}()
}

// Handler exposes the API handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
