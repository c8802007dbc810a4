package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/dhriti-ai/console-gateway/internal/handler"
	"github.com/dhriti-ai/console-gateway/internal/service"
	"github.com/dhriti-ai/console-gateway/internal/session"
	"github.com/dhriti-ai/console-gateway/internal/upstream"
	"github.com/dhriti-ai/console-gateway/pkg/config"
	"github.com/dhriti-ai/console-gateway/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var store session.Store
	if cfg.Session.UseMemory {
		store = session.NewMemoryStore()
	} else {
		redisClient, err := session.NewRedisClient(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		store = session.NewRedisStore(redisClient)
	}

	sessions := session.NewManager(store, cfg.Session.TTL)
	metrics := service.NewMetricsService()
	client := upstream.New(cfg.Upstream, logr, metrics)
	validate := validator.New()

	router := handler.NewRouter(handler.RouterParams{
		Config:    cfg,
		Logger:    logr,
		Sessions:  sessions,
		Metrics:   metrics,
		Auth:      service.NewAuthService(client, sessions, validate, logr),
		Dashboard: service.NewDashboardService(client, logr),
		Projects:  service.NewProjectService(client, validate, logr),
		Users:     service.NewUserService(client, validate, logr),
		Tasks:     service.NewTaskService(client, logr),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("console gateway starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := router.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
