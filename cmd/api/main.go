package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/config"
	"github.com/riteshsinghh-coder/maxbytelms/internal/database"
	"github.com/riteshsinghh-coder/maxbytelms/internal/handler"
	"github.com/riteshsinghh-coder/maxbytelms/internal/middleware"
	"github.com/riteshsinghh-coder/maxbytelms/internal/repository"
	"github.com/riteshsinghh-coder/maxbytelms/internal/router"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
	"github.com/riteshsinghh-coder/maxbytelms/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, caching and idempotency disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, activity events disabled")
		} else {
			defer natsConn.Drain()
		}
	}
	activity := service.NewActivityPublisher(natsConn, cfg.EventSubject, logger)

	fileStore, err := newFileStorage(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize file storage: %v", err)
	}

	assignmentRepo := repository.NewAssignmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	lectureRepo := repository.NewLectureRepository(db)

	assignmentService := service.NewAssignmentService(assignmentRepo, redisClient, cfg.IdempotencyTTL, activity, logger)
	courseService := service.NewCourseService(courseRepo, redisClient, cfg.CourseCacheTTL, logger)
	studentService := service.NewStudentService(studentRepo, activity, logger)
	authService := service.NewAuthService(studentRepo, cfg, logger)
	lectureService := service.NewLectureService(lectureRepo, activity, logger)
	dashboardService := service.NewDashboardService(studentRepo, courseRepo, lectureRepo, redisClient, cfg.DashboardCacheTTL, logger)
	uploadService := service.NewUploadService(fileStore, studentService, dashboardService, int64(cfg.UploadMaxMB)<<20, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.UploadMaxMB + 1) << 20,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	if cfg.UploadDriver == "local" {
		app.Static(cfg.UploadBaseURL, cfg.UploadDir)
	}

	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		CourseHandler:     handler.NewCourseHandler(courseService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, dashboardService, logger),
		LectureHandler:    handler.NewLectureHandler(lectureService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		UploadHandler:     handler.NewUploadHandler(uploadService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func newFileStorage(cfg config.Config, logger zerolog.Logger) (storage.FileStorage, error) {
	if cfg.UploadDriver == "cloudinary" {
		return storage.NewCloudinary(storage.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
	}
	return storage.NewLocal(cfg.UploadDir, cfg.UploadBaseURL, logger)
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
