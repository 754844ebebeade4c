package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"household-hub/internal/service"
)

// Services are the handlers' dependencies.
type Services struct {
	Reminders   *service.ReminderService
	Assets      *service.AssetService
	Preferences *service.PreferencesService
}

// Server serves the Hub REST API.
type Server struct {
	router *gin.Engine
	svc    Services
}

// NewServer builds the router. An empty origin list disables CORS.
func NewServer(svc Services, corsOrigins []string) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	s := &Server{router: router, svc: svc}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")

	reminders := api.Group("/reminders")
	reminders.GET("", s.listReminders)
	reminders.POST("", s.createReminder)
	reminders.GET("/summary", s.reminderSummary)
	reminders.POST("/generate", s.generateReminders)
	reminders.GET("/:id", s.getReminder)
	reminders.POST("/:id/complete", s.completeReminder)
	reminders.POST("/:id/dismiss", s.dismissReminder)

	registerAssets(api.Group("/vehicles"), s.svc.Assets.Vehicles)
	registerAssets(api.Group("/subscriptions"), s.svc.Assets.Subscriptions)
	registerAssets(api.Group("/insurance"), s.svc.Assets.Insurance)
	registerAssets(api.Group("/documents"), s.svc.Assets.Documents)

	api.GET("/preferences", s.getPreferences)
	api.PUT("/preferences", s.putPreferences)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[info] http listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("[info] http server stopped")
	return nil
}
