package server

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bill_tracker/internal/config"
	"bill_tracker/internal/handler"
	"bill_tracker/internal/middleware"
	"bill_tracker/internal/repository"
	"bill_tracker/internal/service"
	"bill_tracker/internal/utils"
	"bill_tracker/internal/web"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sessionCookieName = "bill_tracker_session"

// Server is the application context: configuration, store, services and the
// router built from them. It is constructed once at startup.
type Server struct {
	cfg    *config.Config
	store  *repository.Store
	router *gin.Engine
}

// New wires services and handlers on top of the store
func New(cfg *config.Config, store *repository.Store) (*Server, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("config and store are required")
	}
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	sessionKey, err := sessionKey(cfg.SessionKey)
	if err != nil {
		return nil, err
	}

	var jwtUtil *utils.JWTUtil
	if cfg.JWT.Secret != "" {
		jwtUtil = utils.NewJWTUtil(cfg.JWT.Secret, cfg.JWT.ExpirationHours)
	}

	// --- Services ---
	authService := service.NewAuthService(store.Users, jwtUtil)
	groupService := service.NewGroupService(store.Groups)
	billService := service.NewBillService(store.Bills, store.Groups, cfg.Bills.ListAll)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	groupHandler := handler.NewGroupHandler(groupService)
	billHandler := handler.NewBillHandler(billService, groupService)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger())
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if jwtUtil != nil {
		apiHandler := handler.NewAPIHandler(authService, groupService, billService)
		apiHandler.RegisterAPIRoutes(router.Group("/api/v1"), middleware.JWTAuthMiddleware(jwtUtil))
	} else {
		log.Info("jwt.secret not set, JSON API disabled")
	}

	sessionStore := cookie.NewStore(sessionKey)
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	pages := router.Group("/")
	pages.Use(
		gzip.Gzip(gzip.DefaultCompression),
		sessions.Sessions(sessionCookieName, sessionStore),
		middleware.CSRF(),
		middleware.LoadUser(authService),
	)
	requireLogin := middleware.RequireLogin()
	authHandler.RegisterAuthRoutes(pages, requireLogin)
	groupHandler.RegisterGroupRoutes(pages, requireLogin)
	billHandler.RegisterBillRoutes(pages, requireLogin)

	return &Server{cfg: cfg, store: store, router: router}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "listen", s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func sessionKey(configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}
	log.Warn("session_key not set, generating a random key; sessions will not survive a restart")
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	return key, nil
}
