package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-backend/internal/config"
	"github.com/campuskit/attendance-backend/internal/handler"
	"github.com/campuskit/attendance-backend/internal/middleware"
	"github.com/campuskit/attendance-backend/internal/response"
	"github.com/campuskit/attendance-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Attendance *handler.AttendanceHandler
	Face       *handler.FaceHandler
	Shift      *handler.ShiftHandler
	Student    *handler.StudentHandler
	Faculty    *handler.FacultyHandler
	Section    *handler.SectionHandler
	Schedule   *handler.ScheduleHandler
	Report     *handler.ReportHandler
	Dashboard  *handler.DashboardHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Identify frames hit the inference server; keep a camera loop from
	// flooding it (30 requests per minute per IP).
	kioskLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Auth group (public).
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/professor/login", handlers.Auth.ProfessorLogin)
		auth.POST("/professor/face-login", kioskLimiter.Middleware(), handlers.Auth.ProfessorFaceLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.StudentProfile)
		auth.GET("/professor/me", middleware.RequireProfessorJWT(authService), handlers.Auth.ProfessorProfile)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.AdminProfile)
	}

	// Kiosk group. The kiosk terminal runs under a professor's login so a
	// stolen tablet cannot scan faces for another class.
	kiosk := router.Group("/api/v1/kiosk")
	kiosk.Use(
		middleware.RequireProfessorJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		kiosk.POST("/identify", kioskLimiter.Middleware(), handlers.Attendance.Identify)
		kiosk.POST("/identify/batch", kioskLimiter.Middleware(), handlers.Attendance.IdentifyBatch)
		kiosk.GET("/sections/:id/class-info", handlers.Attendance.ClassInfo)
		kiosk.GET("/sections/:id/today", handlers.Attendance.TodayStats)
	}

	// Professor group (JWT + single device session).
	professorAPI := router.Group("/api/v1")
	professorAPI.Use(
		middleware.RequireProfessorJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		professorAPI.POST("/attendance/mark", handlers.Attendance.Mark)
		professorAPI.POST("/attendance/sweep", handlers.Attendance.Sweep)
		professorAPI.GET("/attendance/sections/:id/records", handlers.Attendance.SessionRecords)
		professorAPI.POST("/shifts/open", handlers.Shift.Open)
		professorAPI.POST("/shifts/close", handlers.Shift.Close)
		professorAPI.GET("/professor/schedules", handlers.Schedule.Mine)
		professorAPI.POST("/professor/face", handlers.Faculty.RegisterFace)
		professorAPI.GET("/professor/face", handlers.Faculty.FaceStatus)
		professorAPI.DELETE("/professor/face", handlers.Faculty.RemoveFace)
		professorAPI.GET("/reports/sections/:id", handlers.Report.SectionReport)
		professorAPI.GET("/reports/students/:id", handlers.Report.StudentHistory)
		professorAPI.GET("/sections", handlers.Section.List)
		professorAPI.GET("/sections/:id", handlers.Section.Get)
		professorAPI.GET("/sections/:id/students", handlers.Section.Roster)
		professorAPI.GET("/sections/:id/enrollment", handlers.Section.Enrollment)
		professorAPI.GET("/schedules", handlers.Schedule.List)
		professorAPI.GET("/schedules/:id", handlers.Schedule.Get)
	}

	// Student portal group (JWT + single device session).
	studentAPI := router.Group("/api/v1/students/me")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.POST("/face", handlers.Face.Register)
		studentAPI.GET("/face", handlers.Face.Status)
		studentAPI.GET("/attendance", handlers.Report.MyHistory)
		studentAPI.GET("/section", handlers.Section.MySection)
	}

	// Admin group (JWT).
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.GET("/dashboard", handlers.Dashboard.Stats)

		// Roster management
		adminAPI.GET("/students", handlers.Student.List)
		adminAPI.GET("/students/:id", handlers.Student.Get)
		adminAPI.POST("/students", handlers.Student.Create)
		adminAPI.PUT("/students/:id", handlers.Student.Update)
		adminAPI.DELETE("/students/:id", handlers.Student.Delete)
		adminAPI.POST("/students/:id/reset-session", handlers.Student.ResetSession)
		adminAPI.DELETE("/students/:id/face", handlers.Face.Remove)

		// Faculty management
		adminAPI.GET("/professors", handlers.Faculty.List)
		adminAPI.GET("/professors/:id", handlers.Faculty.Get)
		adminAPI.POST("/professors", handlers.Faculty.Create)
		adminAPI.PUT("/professors/:id", handlers.Faculty.Update)
		adminAPI.DELETE("/professors/:id", handlers.Faculty.Delete)

		// Sections and schedules
		adminAPI.GET("/sections", handlers.Section.List)
		adminAPI.GET("/sections/:id", handlers.Section.Get)
		adminAPI.GET("/sections/:id/students", handlers.Section.Roster)
		adminAPI.GET("/sections/:id/enrollment", handlers.Section.Enrollment)
		adminAPI.POST("/sections", handlers.Section.Create)
		adminAPI.PUT("/sections/:id", handlers.Section.Update)
		adminAPI.DELETE("/sections/:id", handlers.Section.Delete)
		adminAPI.GET("/schedules", handlers.Schedule.List)
		adminAPI.POST("/schedules", handlers.Schedule.Create)
		adminAPI.PUT("/schedules/:id", handlers.Schedule.Update)
		adminAPI.DELETE("/schedules/:id", handlers.Schedule.Delete)

		// Reports
		adminAPI.GET("/reports/sections/:id", handlers.Report.SectionReport)
		adminAPI.GET("/reports/students/:id", handlers.Report.StudentHistory)
	}

	return router
}
