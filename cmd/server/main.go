package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jukulab/classdesk-backend/internal/config"
	"github.com/jukulab/classdesk-backend/internal/database"
	"github.com/jukulab/classdesk-backend/internal/drive"
	"github.com/jukulab/classdesk-backend/internal/handler"
	"github.com/jukulab/classdesk-backend/internal/logger"
	"github.com/jukulab/classdesk-backend/internal/repository"
	"github.com/jukulab/classdesk-backend/internal/router"
	"github.com/jukulab/classdesk-backend/internal/service"
	"github.com/jukulab/classdesk-backend/internal/sheet"
	"github.com/jukulab/classdesk-backend/internal/validator"
	"github.com/jukulab/classdesk-backend/internal/websocket"
	"github.com/jukulab/classdesk-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting ClassDesk Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Load Sheet Font ───────────────────────────────────────────────
	face, err := sheet.FindFace(cfg.SheetFontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load sheet font")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	mentorRepo := repository.NewMentorRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	curriculumRepo := repository.NewCurriculumRepository(pool)
	recordRepo := repository.NewClassRecordRepository(pool)
	templateRepo := repository.NewCommentTemplateRepository(pool)
	memoRepo := repository.NewStudentMemoRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, rdb)
	studentService := service.NewStudentService(studentRepo)
	mentorService := service.NewMentorService(mentorRepo)
	classService := service.NewClassService(classRepo, curriculumRepo)
	recordService := service.NewRecordService(recordRepo, studentRepo)
	templateService := service.NewTemplateService(templateRepo, log)
	memoService := service.NewMemoService(memoRepo, studentRepo)
	sheetService := service.NewSheetService(recordRepo, rdb, face)

	// Seed the built-in comment templates on first boot.
	if err := templateService.EnsureDefaults(ctx); err != nil {
		log.Warn().Err(err).Msg("Template seeding failed")
	}

	// ─── Start Event Hub ──────────────────────────────────────────────
	hub := websocket.NewHub(log)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Student:  handler.NewStudentHandler(studentService, hub),
		Mentor:   handler.NewMentorHandler(mentorService, hub),
		Class:    handler.NewClassHandler(classService, hub),
		Record:   handler.NewRecordHandler(recordService, hub),
		Sheet:    handler.NewSheetHandler(sheetService, log),
		Template: handler.NewTemplateHandler(templateService, hub),
		Memo:     handler.NewMemoHandler(memoService, hub),
		WS:       handler.NewWSHandler(hub, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	driveClient := drive.NewGoogle(cfg.DriveClientID, cfg.DriveClientSecret, cfg.DriveRefreshToken, cfg.DriveTimeout)
	uploadWorker := worker.NewUploadWorker(sheetService, driveClient, rdb, cfg.DriveBaseFolder, log)

	go uploadWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the hub and background workers, letting the queue drain.
	hubCancel()
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
