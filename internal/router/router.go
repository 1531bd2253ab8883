package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lzradio/lzradio-backend/internal/config"
	"github.com/lzradio/lzradio-backend/internal/handler"
	"github.com/lzradio/lzradio-backend/internal/middleware"
	"github.com/lzradio/lzradio-backend/internal/response"
	"github.com/lzradio/lzradio-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Logbook  *handler.LogbookHandler
	Exam     *handler.ExamHandler
	Settings *handler.SettingsHandler
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
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/pair", handlers.Auth.PairDevice)
		auth.GET("/me", middleware.RequireDeviceJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Logbook Group (Device JWT) ─────────────────────────────────
	logbookAPI := router.Group("/api/v1/logbook")
	logbookAPI.Use(middleware.RequireDeviceJWT(authService))
	{
		logbookAPI.GET("/contacts", handlers.Logbook.ListContacts)
		logbookAPI.GET("/contacts/count", handlers.Logbook.CountContacts)
		logbookAPI.GET("/search", handlers.Logbook.SearchContacts)
		logbookAPI.POST("/contacts", handlers.Logbook.CreateContact)
		logbookAPI.GET("/contacts/:id", handlers.Logbook.GetContact)
		logbookAPI.PUT("/contacts/:id", handlers.Logbook.UpdateContact)
		logbookAPI.DELETE("/contacts/:id", handlers.Logbook.DeleteContact)

		logbookAPI.POST("/import/preview", handlers.Logbook.PreviewImport)
		logbookAPI.POST("/import", handlers.Logbook.ApplyImport)
		logbookAPI.GET("/export", handlers.Logbook.Export)
	}

	// ─── 3. Exam Group (Device JWT) ────────────────────────────────────
	examAPI := router.Group("/api/v1/exam")
	examAPI.Use(middleware.RequireDeviceJWT(authService))
	{
		examAPI.GET("/questions", handlers.Exam.ListQuestions)
		examAPI.GET("/questions/count", handlers.Exam.CountQuestions)
		examAPI.GET("/attempts", handlers.Exam.ListAttempts)

		examAPI.POST("/sessions", handlers.Exam.StartSession)
		examAPI.GET("/sessions/:session_id", handlers.Exam.GetSession)
		examAPI.GET("/sessions/:session_id/remaining", handlers.Exam.GetRemaining)
		examAPI.GET("/sessions/:session_id/attempt", handlers.Exam.GetAttempt)
		examAPI.DELETE("/sessions/:session_id", handlers.Exam.CloseSession)
		examAPI.POST("/sessions/:session_id/answer", handlers.Exam.SelectAnswer)
		examAPI.POST("/sessions/:session_id/navigate", handlers.Exam.Navigate)
		examAPI.POST("/sessions/:session_id/submit", handlers.Exam.Submit)
		examAPI.POST("/sessions/:session_id/review", handlers.Exam.EnterReview)
		examAPI.POST("/sessions/:session_id/pause", handlers.Exam.PauseTimer)
		examAPI.POST("/sessions/:session_id/resume", handlers.Exam.ResumeTimer)
	}

	// ─── 4. Settings Group (Device JWT) ────────────────────────────────
	settingsAPI := router.Group("/api/v1/settings")
	settingsAPI.Use(middleware.RequireDeviceJWT(authService))
	{
		settingsAPI.GET("/station", handlers.Settings.GetStation)
		settingsAPI.PUT("/station", handlers.Settings.UpdateStation)
	}

	// ─── 5. WebSocket Group (Device WS Auth) ───────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireDeviceWSAuth(authService))
	{
		ws.GET("/exam/sessions/:session_id/stream", handlers.WS.ExamSessionStream)
	}

	return router
}
