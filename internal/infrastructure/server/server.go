// Package server assembles the components into a running service.
package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/jiaa-labs/alpine-core/internal/api/http"
	"github.com/jiaa-labs/alpine-core/internal/api/middleware"
	"github.com/jiaa-labs/alpine-core/internal/api/ws"
	"github.com/jiaa-labs/alpine-core/internal/domain/detect"
	"github.com/jiaa-labs/alpine-core/internal/domain/persona"
	"github.com/jiaa-labs/alpine-core/internal/domain/session"
	"github.com/jiaa-labs/alpine-core/internal/infrastructure/config"
	"github.com/jiaa-labs/alpine-core/internal/infrastructure/logging"
	"github.com/jiaa-labs/alpine-core/internal/infrastructure/monitoring"
	"github.com/jiaa-labs/alpine-core/internal/providers/cryptobox"
	"github.com/jiaa-labs/alpine-core/internal/providers/llm"
	"github.com/jiaa-labs/alpine-core/internal/providers/stats"
	"github.com/jiaa-labs/alpine-core/internal/providers/stt"
)

// Server wires the collaborators, domain components, and transports.
type Server struct {
	router  *gin.Engine
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// New builds the full component graph from configuration.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("initializing alpine-core",
		zap.String("port", cfg.Server.Port),
		zap.String("model", cfg.AI.Model),
	)

	metrics := monitoring.NewMetrics()

	llmClient, err := llm.NewClient(ctx, llm.Config{
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Timeout:     cfg.AI.Timeout,
		Temperature: cfg.AI.Temperature,
	}, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	sttClient := stt.NewClient(stt.Config{
		BaseURL: cfg.STT.BaseURL,
		Timeout: cfg.STT.Timeout,
	}, metrics)

	statsClient := stats.NewClient(stats.Config{
		BaseURL: cfg.Stats.BaseURL,
		Timeout: cfg.Stats.Timeout,
	}, metrics)

	detector := detect.New(llm.NewClassifier(llmClient), logger.Logger)
	engine := persona.NewEngine(llmClient, detector, logger.Logger)
	contexts := session.NewContextBuilder(statsClient, cfg.Tracking.StatsWindow, cfg.Tracking.DefaultUserID, logger.Logger)
	silence := session.NewSilence(cfg.Tracking.SilenceThreshold, cfg.Tracking.MinClipboardChars)

	coordinator := ws.NewCoordinator(
		detector,
		engine,
		llmClient,
		sttClient,
		cryptobox.Decrypt,
		contexts,
		silence,
		metrics,
		logger.Logger,
		cfg.Tracking.DefaultUserID,
	)
	wsHandler := ws.NewHandler(coordinator, metrics, logger.Logger)
	handlers := apihttp.NewHandlers(engine, contexts, metrics, logger.Logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS())
	if cfg.RateLimit.Enabled {
		logger.Info("rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(cfg.RateLimit))
	}

	router.GET("/health", handlers.Health)
	router.GET("/stats", handlers.Stats)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/api/v1/chat", handlers.Chat)
	router.GET("/ws/tracking", wsHandler.HandleConnection)

	logger.Info("server initialized")

	return &Server{
		router:  router,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server and blocks.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the gin engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close flushes buffered log output.
func (s *Server) Close() error {
	s.logger.Info("shutting down")
	return s.logger.Sync()
}
