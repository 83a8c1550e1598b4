package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dubss/internal/config"
	"dubss/internal/database"
	"dubss/internal/database/migration"
	handlers "dubss/internal/http/handler"
	"dubss/internal/http/middleware"
	"dubss/internal/otel"
	"dubss/internal/repository/postgres"
	"dubss/internal/service"
	"dubss/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	ctx := context.Background()

	// Tracing first so the DB driver wrapper picks up the global provider
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Repositories
	tramiteRepo := postgres.NewTramitePostgres(db)
	documentoRepo := postgres.NewDocumentoPostgres(db)
	postulacionRepo := postgres.NewPostulacionPostgres(db)
	becaRepo := postgres.NewBecaPostgres(db)
	rankingRepo := postgres.NewRankingPostgres(db)
	notificacionRepo := postgres.NewNotificacionPostgres(db)

	// Services
	notifier := service.NewRepoNotifier(notificacionRepo)
	tramiteSvc := service.NewTramiteService(tramiteRepo, documentoRepo, postulacionRepo, becaRepo, notifier)
	documentoSvc := service.NewDocumentoService(objStore, documentoRepo, tramiteRepo, tramiteSvc)
	postulacionSvc := service.NewPostulacionService(postulacionRepo, becaRepo, tramiteSvc)
	rankingSvc := service.NewRankingService(becaRepo, postulacionRepo, rankingRepo, tramiteRepo, notifier)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize prometheus middleware: %v", err)
	}
	app.Use(promMW.Handler())
	if err := service.RegisterMetrics(reg); err != nil {
		log.Fatalf("failed to register workflow metrics: %v", err)
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, handlers.Services{
		Tramites:       tramiteSvc,
		Documentos:     documentoSvc,
		Postulaciones:  postulacionSvc,
		Ranking:        rankingSvc,
		Notificaciones: notificacionRepo,
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
