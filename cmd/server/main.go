package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuskit/attendance-backend/internal/attendance"
	"github.com/campuskit/attendance-backend/internal/config"
	"github.com/campuskit/attendance-backend/internal/database"
	"github.com/campuskit/attendance-backend/internal/faceclient"
	"github.com/campuskit/attendance-backend/internal/handler"
	"github.com/campuskit/attendance-backend/internal/logger"
	"github.com/campuskit/attendance-backend/internal/repository"
	"github.com/campuskit/attendance-backend/internal/router"
	"github.com/campuskit/attendance-backend/internal/service"
	"github.com/campuskit/attendance-backend/internal/validator"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("face_service", cfg.FaceServiceURL).
		Msg("Starting attendance backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Repositories
	studentRepo := repository.NewStudentRepository(pool)
	professorRepo := repository.NewProfessorRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	sectionRepo := repository.NewSectionRepository(pool)
	classSessionRepo := repository.NewClassSessionRepository(pool)
	faceRegRepo := repository.NewFaceRegistrationRepository(pool)
	professorFaceRepo := repository.NewProfessorFaceRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)

	faceClient := faceclient.New(cfg.FaceServiceURL, cfg.FaceServiceTimeout)

	// Services
	authService := service.NewAuthService(cfg, rdb)
	studentService := service.NewStudentService(studentRepo, authService)
	facultyService := service.NewFacultyService(professorRepo, authService, faceClient, professorFaceRepo, cfg.MatchThreshold)
	adminService := service.NewAdminService(adminRepo, authService)
	sectionService := service.NewSectionService(sectionRepo, studentRepo, faceRegRepo)
	scheduleService := service.NewScheduleService(classSessionRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, classSessionRepo, shiftRepo,
		attendance.Policy{OnTimeWindow: cfg.OnTimeWindow, LockDelay: cfg.LockDelay})
	recognitionService := service.NewRecognitionService(faceClient, faceRegRepo, studentRepo, attendanceService, cfg.MatchThreshold)
	reportService := service.NewReportService(attendanceRepo, studentRepo)
	dashboardService := service.NewDashboardService(studentRepo, professorRepo, sectionRepo, attendanceService, recognitionService)

	// Warn early when the inference server is unreachable; the kiosk cannot
	// identify anyone until it comes back.
	if err := faceClient.Health(ctx); err != nil {
		log.Warn().Err(err).Msg("Face service unreachable at startup")
	}

	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, studentService, facultyService, adminService),
		Attendance: handler.NewAttendanceHandler(attendanceService, recognitionService),
		Face:       handler.NewFaceHandler(recognitionService),
		Shift:      handler.NewShiftHandler(attendanceService),
		Student:    handler.NewStudentHandler(studentService),
		Faculty:    handler.NewFacultyHandler(facultyService),
		Section:    handler.NewSectionHandler(sectionService),
		Schedule:   handler.NewScheduleHandler(scheduleService),
		Report:     handler.NewReportHandler(reportService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
	}

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
