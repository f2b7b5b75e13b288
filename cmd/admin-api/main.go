package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hephzi-centre/admin-api/api/swagger"
	"github.com/hephzi-centre/admin-api/internal/handler"
	"github.com/hephzi-centre/admin-api/internal/middleware"
	"github.com/hephzi-centre/admin-api/internal/repository"
	"github.com/hephzi-centre/admin-api/internal/service"
	"github.com/hephzi-centre/admin-api/pkg/cache"
	"github.com/hephzi-centre/admin-api/pkg/config"
	"github.com/hephzi-centre/admin-api/pkg/database"
	"github.com/hephzi-centre/admin-api/pkg/jobs"
	"github.com/hephzi-centre/admin-api/pkg/logger"
	corsmiddleware "github.com/hephzi-centre/admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hephzi-centre/admin-api/pkg/middleware/requestid"
	"github.com/hephzi-centre/admin-api/pkg/storage"
)

// @title Learning Centre Admin API
// @version 1.0.0
// @description Backend for the learning centre admin dashboard: directory, timetable, weekly plans and daily reports.
// @BasePath /api/v1
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	mentorRepo := repository.NewMentorRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	stateRepo := repository.NewStateRepository(redisClient, logr)
	defer stateRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	stateRepo.WithObserver(metricsSvc)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	mentorSvc := service.NewMentorService(mentorRepo, validate, logr)
	catalogSvc := service.NewCatalogService(sessionRepo, studentRepo, logr)
	timetableSvc := service.NewTimetableService(stateRepo, cfg.Timetable.PerWeek, validate, logr)
	capacitySvc := service.NewCapacityService(timetableSvc, logr)
	planSvc := service.NewPlanService(stateRepo, capacitySvc, validate, logr)
	reportSvc := service.NewReportService(stateRepo, studentRepo, mentorRepo, planSvc, catalogSvc, validate, logr)
	settingsSvc := service.NewSettingsService(stateRepo, validate, logr)
	datesSvc := service.NewDatesService(stateRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(timetableSvc, planSvc, datesSvc, mentorSvc, logr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc = service.NewExportService(reportSvc, service.ExportNames(studentSvc, mentorSvc, catalogSvc), store, signer, validate, logr)
		queue := jobs.NewQueue("report-exports", exportSvc.Handle, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			Logger:     logr,
		})
		queue.Start(ctx)
		defer queue.Stop()
		exportSvc.AttachQueue(queue)
		exportSvc.StartCleanup(ctx, cfg.Exports.CleanupInterval, cfg.Exports.SignedURLTTL)
	}

	studentHandler := handler.NewStudentHandler(studentSvc, reportSvc)
	mentorHandler := handler.NewMentorHandler(mentorSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	planHandler := handler.NewPlanHandler(planSvc, capacitySvc, metricsSvc)
	reportHandler := handler.NewReportHandler(reportSvc, exportSvc)
	datesHandler := handler.NewDatesHandler(datesSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/students", studentHandler.List)
		api.POST("/students", studentHandler.Create)
		api.GET("/students/:id", studentHandler.Get)
		api.PUT("/students/:id", studentHandler.Update)
		api.DELETE("/students/:id", studentHandler.Deactivate)
		api.GET("/students/:id/reports", studentHandler.PublishedReports)

		api.GET("/mentors", mentorHandler.List)
		api.POST("/mentors", mentorHandler.Create)
		api.GET("/mentors/:id", mentorHandler.Get)
		api.PUT("/mentors/:id", mentorHandler.Update)
		api.DELETE("/mentors/:id", mentorHandler.Deactivate)

		api.GET("/sessions", catalogHandler.Candidates)

		api.GET("/timetable", timetableHandler.Get)
		api.PUT("/timetable/:day/:slot", timetableHandler.PutCell)
		api.DELETE("/timetable/:day/:slot/:index", timetableHandler.RemoveAssignment)

		api.GET("/plans/:week/:studentId", planHandler.Get)
		api.PUT("/plans/:week/:studentId", planHandler.Save)
		api.POST("/plans/:week/:studentId/sessions", planHandler.AddSession)
		api.DELETE("/plans/:week/:studentId/sessions", planHandler.RemoveSession)
		api.GET("/plans/:week/:studentId/capacity", planHandler.Capacity)

		api.POST("/reports", reportHandler.Submit)
		api.GET("/reports", reportHandler.List)
		api.GET("/reports/choices", reportHandler.Choices)
		api.POST("/reports/export", reportHandler.CreateExport)
		api.GET("/reports/export/:id", reportHandler.ExportStatus)
		api.GET("/reports/export/:id/download", reportHandler.DownloadExport)
		api.PATCH("/reports/:id", reportHandler.Update)
		api.PUT("/reports/:id/publish", reportHandler.Publish)

		api.GET("/important-dates", datesHandler.List)
		api.POST("/important-dates", datesHandler.Create)
		api.DELETE("/important-dates/:id", datesHandler.Delete)

		api.GET("/settings", settingsHandler.Get)
		api.PUT("/settings", settingsHandler.Update)

		api.GET("/dashboard", dashboardHandler.Summary)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
