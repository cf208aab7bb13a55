// Package mockapi is a local stand-in for the Courtside backend. It serves
// the endpoints the client SDK consumes so the CLI and stores can be
// exercised without the production API.
package mockapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/courtside-app/courtside/internal/logger"
)

// Config holds the mock server configuration
type Config struct {
	ListenAddr  string
	DatabaseURL string
	JWTSecret   string
	SeedFile    string
	TokenTTL    time.Duration
}

// LoadConfig reads the mock server configuration from environment variables
func LoadConfig() Config {
	cfg := Config{
		ListenAddr:  os.Getenv("MOCKAPI_LISTEN_ADDR"),
		DatabaseURL: os.Getenv("MOCKAPI_DATABASE_URL"),
		JWTSecret:   os.Getenv("MOCKAPI_JWT_SECRET"),
		SeedFile:    os.Getenv("MOCKAPI_SEED_FILE"),
		TokenTTL:    24 * time.Hour,
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "courtside-mock.sqlite"
	}
	return cfg
}

// Server represents the mock HTTP server
type Server struct {
	router    *gin.Engine
	db        *gorm.DB
	config    Config
	logger    zerolog.Logger
	validator *validator.Validate
	cron      *cron.Cron
	hub       *hub
	jwtSecret []byte
}

// New creates a new mock server instance
func New(cfg Config, zlog zerolog.Logger) (*Server, error) {
	db, err := initDatabase(cfg, zlog)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// An explicit secret keeps tokens valid across restarts; otherwise a
	// fresh one is generated per process.
	secret := cfg.JWTSecret
	if secret == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = hex.EncodeToString(raw)
		zlog.Info().Msg("No MOCKAPI_JWT_SECRET set - generated an ephemeral secret")
	}

	server := &Server{
		db:        db,
		config:    cfg,
		logger:    zlog,
		validator: validator.New(),
		cron:      cron.New(),
		hub:       newHub(zlog),
		jwtSecret: []byte(secret),
	}

	if err := server.seed(); err != nil {
		return nil, err
	}

	// Sweep bookings whose end time has passed
	if _, err := server.cron.AddFunc("@every 10m", server.sweepExpiredBookings); err != nil {
		return nil, fmt.Errorf("failed to schedule booking sweep: %w", err)
	}

	server.setupRouter()

	return server, nil
}

// initDatabase initializes the sqlite database connection
func initDatabase(cfg Config, zlog zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(zlog, 200*time.Millisecond),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=1",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			zlog.Warn().Str("pragma", pragma).Err(err).Msg("Failed to apply pragma")
		}
	}

	return db, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// Public endpoints
	s.router.POST("/api/auth/login", s.login)
	s.router.POST("/api/auth/register", s.register)
	s.router.GET("/api/venues", s.listVenues)
	s.router.GET("/api/venues/:id", s.getVenue)
	s.router.GET("/api/clubs", s.listClubs)
	s.router.GET("/api/sessions", s.listSessions)

	// Realtime socket (token validated during the upgrade handshake)
	s.router.GET("/ws", s.serveWS)

	// Authenticated API routes
	api := s.router.Group("/api")
	api.Use(s.authMiddleware())
	{
		api.GET("/auth/session", s.getSession)
		api.POST("/auth/logout", s.logout)

		api.GET("/users/me", s.getProfile)
		api.PUT("/users/me", s.updateProfile)

		api.POST("/venues/:id/bookings", s.bookVenue)
		api.POST("/clubs/:id/members", s.joinClub)
		api.POST("/sessions/:id/attendees", s.joinSession)

		// User management (admin only)
		admin := api.Group("/admin")
		admin.Use(s.adminOnlyMiddleware())
		{
			admin.GET("/users", s.listUsers)
			admin.GET("/users/search", s.searchUsers)
			admin.DELETE("/users/:id", s.deleteUser)

			// Role changes require super-admin
			roles := admin.Group("/users/:id/roles")
			roles.Use(s.superAdminOnlyMiddleware())
			{
				roles.POST("/:role", s.grantRole)
				roles.DELETE("/:role", s.revokeRole)
			}
		}
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "courtside-mockapi",
	})
}

// sweepExpiredBookings marks confirmed bookings as completed once their end
// time has passed.
func (s *Server) sweepExpiredBookings() {
	result := s.db.Model(&Booking{}).
		Where("status = ? AND ends_at < ?", "confirmed", time.Now()).
		Update("status", "completed")
	if result.Error != nil {
		s.logger.Error().Err(result.Error).Msg("Booking sweep failed")
		return
	}
	if result.RowsAffected > 0 {
		s.logger.Info().Int64("bookings", result.RowsAffected).Msg("Marked expired bookings completed")
	}
}

// Start starts the HTTP server and blocks until shutdown
func (s *Server) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.cron.Start()
	go s.hub.run()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.config.ListenAddr).Msg("Mock API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	s.cron.Stop()
	s.hub.close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
