// Package api exposes the journal and statistics over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/DragosCt10/trading-tracker-sub007/config"
	"github.com/DragosCt10/trading-tracker-sub007/internal/auth"
	"github.com/DragosCt10/trading-tracker-sub007/internal/cache"
	"github.com/DragosCt10/trading-tracker-sub007/internal/database"
	"github.com/DragosCt10/trading-tracker-sub007/internal/stats"
)

// RateLimiter provides simple in-memory rate limiting per endpoint
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
	limit    int           // max requests
	window   time.Duration // time window
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

// Allow checks if a request is allowed for the given key
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-r.window)

	var recent []time.Time
	for _, t := range r.requests[key] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= r.limit {
		r.requests[key] = recent
		return false
	}

	r.requests[key] = append(recent, now)
	return true
}

// Server represents the HTTP API server
type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	db          *database.DB
	config      config.ServerConfig
	statsConfig stats.Config
	authService *auth.Service
	statsCache  *cache.StatsCache
	cacheStats  func() cache.Stats // nil when Redis is disabled
	hub         *WSHub
	rateLimiter *RateLimiter
	logger      zerolog.Logger
}

// NewServer creates a new API server. statsCache may be nil when Redis is
// disabled; every aggregate is then recomputed per request.
func NewServer(
	cfg config.ServerConfig,
	statsCfg stats.Config,
	db *database.DB,
	authService *auth.Service,
	statsCache *cache.StatsCache,
	cacheService *cache.CacheService,
	logger zerolog.Logger,
) *Server {
	if cfg.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	server := &Server{
		router:      router,
		db:          db,
		config:      cfg,
		statsConfig: statsCfg,
		authService: authService,
		statsCache:  statsCache,
		hub:         NewWSHub(logger),
		rateLimiter: NewRateLimiter(240, time.Minute),
		logger:      logger,
	}
	if cacheService != nil {
		server.cacheStats = cacheService.GetStats
	}

	server.setupRoutes()
	go server.hub.Run()

	return server
}

// rateLimitMiddleware limits requests per endpoint path.
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		if !s.rateLimiter.Allow(path) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "RATE_LIMITED",
				"message": "too many requests to this endpoint",
				"path":    path,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	jwtManager := s.authService.GetJWTManager()

	api := s.router.Group("/api")
	api.Use(s.rateLimitMiddleware())

	authHandlers := auth.NewHandlers(s.authService)
	authHandlers.RegisterRoutes(api, jwtManager)

	protected := api.Group("")
	protected.Use(auth.Middleware(jwtManager))
	{
		protected.GET("/trades", s.handleListTrades)
		protected.POST("/trades", s.handleCreateTrade)
		protected.GET("/trades/:id", s.handleGetTrade)
		protected.PUT("/trades/:id", s.handleUpdateTrade)
		protected.DELETE("/trades/:id", s.handleDeleteTrade)

		protected.GET("/account-settings", s.handleListAccounts)
		protected.POST("/account-settings", s.handleCreateAccount)
		protected.PUT("/account-settings/:id", s.handleUpdateAccount)
		protected.DELETE("/account-settings/:id", s.handleDeleteAccount)

		protected.GET("/stats/dashboard", s.handleDashboard)
		protected.GET("/stats/monthly", s.handleMonthly)
		protected.GET("/stats/years", s.handleTradeYears)
	}

	ws := s.router.Group("/ws")
	ws.Use(auth.Middleware(jwtManager))
	{
		ws.GET("/stats", s.handleWebSocket)
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("addr", addr).Msg("starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.db.Pool.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "unhealthy",
		})
		return
	}

	resp := gin.H{
		"status":   "healthy",
		"database": "healthy",
	}
	if s.cacheStats != nil {
		resp["cache"] = s.cacheStats()
	}
	c.JSON(http.StatusOK, resp)
}

// errorResponse is a helper to send error responses
func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":   true,
		"message": message,
	})
}

// successResponse is a helper to send success responses
func successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
