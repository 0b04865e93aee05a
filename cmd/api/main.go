package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/emscoord/internship-api/internal/config"
	"github.com/emscoord/internship-api/internal/database"
	"github.com/emscoord/internship-api/internal/handler"
	"github.com/emscoord/internship-api/internal/middleware"
	"github.com/emscoord/internship-api/internal/repository"
	"github.com/emscoord/internship-api/internal/router"
	"github.com/emscoord/internship-api/internal/service"
	"github.com/emscoord/internship-api/pkg/mailer"
	"github.com/emscoord/internship-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, reminder events disabled")
		} else {
			defer natsConn.Close()
		}
	}

	uploader, err := storage.NewCloudinary(storage.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	var reminderMailer service.ReminderMailer
	if cfg.SMTPHost != "" {
		smtp, err := mailer.New(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create mailer: %v", err)
		}
		reminderMailer = smtp
	} else {
		logger.Warn().Msg("smtp not configured, reminder mail disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	cohortRepo := repository.NewCohortRepository(db)
	agencyRepo := repository.NewAgencyRepository(db)
	preceptorRepo := repository.NewPreceptorRepository(db)
	internshipRepo := repository.NewInternshipRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	closeoutRepo := repository.NewCloseoutRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	internshipService := service.NewInternshipService(internshipRepo, studentRepo, validate, logger)
	clearanceService := service.NewClearanceService(internshipRepo, logger)
	placementService := service.NewPlacementService(internshipRepo, studentRepo, preceptorRepo, assignmentRepo, validate, logger)
	closeoutService := service.NewCloseoutService(closeoutRepo, internshipRepo, uploader, validate, int64(cfg.MaxUploadMB), logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, studentRepo, validate, logger)
	dashboardService := service.NewDashboardService(internshipRepo, redisClient, cfg.DashboardCacheTTL, logger)
	reminderService := service.NewReminderService(internshipRepo, redisClient, natsConn, cfg.NATSReminderSubject, reminderMailer, cfg.ReminderRecipients, logger)
	referenceService := service.NewReferenceService(studentRepo, cohortRepo, agencyRepo, preceptorRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.MaxUploadMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		InternshipHandler: handler.NewInternshipHandler(internshipService, clearanceService, logger),
		PlacementHandler:  handler.NewPlacementHandler(placementService, logger),
		CloseoutHandler:   handler.NewCloseoutHandler(closeoutService, logger),
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, reminderService, logger),
		ReferenceHandler:  handler.NewReferenceHandler(referenceService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
