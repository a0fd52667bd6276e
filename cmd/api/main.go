package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/agendaflow/salon-scheduler/internal/config"
	"github.com/agendaflow/salon-scheduler/internal/db"
	"github.com/agendaflow/salon-scheduler/internal/logger"
	"github.com/agendaflow/salon-scheduler/internal/metrics"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
	"github.com/agendaflow/salon-scheduler/internal/routes"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database := db.NewDB(cfg)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.Middleware())

	routes.SetupRoutes(r, database, cfg)

	logger.L.WithField("addr", cfg.Addr()).Info("servidor iniciado")
	if err := r.Run(cfg.Addr()); err != nil {
		logger.L.WithError(err).Fatal("servidor encerrou com erro")
	}
}
