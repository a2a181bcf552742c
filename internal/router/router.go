package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jukulab/classdesk-backend/internal/config"
	"github.com/jukulab/classdesk-backend/internal/handler"
	"github.com/jukulab/classdesk-backend/internal/middleware"
	"github.com/jukulab/classdesk-backend/internal/response"
	"github.com/jukulab/classdesk-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Student  *handler.StudentHandler
	Mentor   *handler.MentorHandler
	Class    *handler.ClassHandler
	Record   *handler.RecordHandler
	Sheet    *handler.SheetHandler
	Template *handler.TemplateHandler
	Memo     *handler.MemoHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
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
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-Upload-Warning"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/external", handlers.Auth.ExternalLogin)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. API Group (JWT + Active Session) ───────────────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireJWT(authService),
		middleware.CheckSession(authService),
	)
	{
		// Student management
		api.GET("/students", handlers.Student.ListStudents)
		api.POST("/students", handlers.Student.CreateStudent)
		api.GET("/students/:id", handlers.Student.GetStudent)
		api.PUT("/students/:id", handlers.Student.UpdateStudent)
		api.DELETE("/students/:id", middleware.RequireAdmin(), handlers.Student.DeleteStudent)

		// Per-student records, stats, memos, export
		api.GET("/students/:id/records", handlers.Record.ListStudentRecords)
		api.GET("/students/:id/records/export", handlers.Record.ExportStudentRecords)
		api.GET("/students/:id/stats", handlers.Record.GetStudentStats)
		api.GET("/students/:id/memos", handlers.Memo.ListStudentMemos)
		api.POST("/students/:id/memos", handlers.Memo.CreateStudentMemo)

		// Mentor management
		api.GET("/mentors", handlers.Mentor.ListMentors)
		api.POST("/mentors", handlers.Mentor.CreateMentor)
		api.GET("/mentors/:id", handlers.Mentor.GetMentor)
		api.PUT("/mentors/:id", handlers.Mentor.UpdateMentor)
		api.DELETE("/mentors/:id", middleware.RequireAdmin(), handlers.Mentor.DeleteMentor)

		// Class and curriculum management
		api.GET("/classes", handlers.Class.ListClasses)
		api.POST("/classes", handlers.Class.CreateClass)
		api.POST("/classes/reorder", handlers.Class.ReorderClasses)
		api.GET("/classes/:id", handlers.Class.GetClass)
		api.PUT("/classes/:id", handlers.Class.UpdateClass)
		api.DELETE("/classes/:id", middleware.RequireAdmin(), handlers.Class.DeleteClass)
		api.GET("/classes/:id/curricula", handlers.Class.ListCurricula)
		api.POST("/classes/:id/curricula", handlers.Class.CreateCurriculum)
		api.POST("/classes/:id/curricula/reorder", handlers.Class.ReorderCurricula)
		api.PUT("/curricula/:id", handlers.Class.UpdateCurriculum)
		api.DELETE("/curricula/:id", handlers.Class.DeleteCurriculum)

		// Class records and evaluation sheets
		api.POST("/records", handlers.Record.CreateRecord)
		api.GET("/records/:id", handlers.Record.GetRecord)
		api.PUT("/records/:id", handlers.Record.UpdateRecord)
		api.DELETE("/records/:id", handlers.Record.DeleteRecord)
		api.GET("/records/:id/sheet", handlers.Sheet.GetSheet)

		// Comment templates
		api.GET("/templates", handlers.Template.ListTemplates)
		api.POST("/templates", handlers.Template.CreateTemplate)
		api.PUT("/templates/:id", handlers.Template.UpdateTemplate)
		api.DELETE("/templates/:id", handlers.Template.DeleteTemplate)

		// Student memos
		api.PUT("/memos/:id", handlers.Memo.UpdateMemo)
		api.DELETE("/memos/:id", handlers.Memo.DeleteMemo)
	}

	// ─── 3. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/events", handlers.WS.EventStream)
	}

	return router
}
