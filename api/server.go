package api

import (
	"context"
	"net/http"
	"time"

	_ "github.com/Aidin1998/marketgw/docs"

	"github.com/Aidin1998/marketgw/common/apiutil"
	"github.com/Aidin1998/marketgw/common/auth"
	"github.com/Aidin1998/marketgw/internal/config"
	"github.com/Aidin1998/marketgw/internal/identities"
	"github.com/Aidin1998/marketgw/internal/marketfeeds"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Pinger reports upstream liveness
type Pinger interface {
	Ping(ctx context.Context) bool
}

// Options carries the static settings of the HTTP surface
type Options struct {
	// ServiceName names spans produced by the tracing middleware
	ServiceName    string
	AllowedOrigins []string
	Version        config.VersionInfo
}

// GinMode picks the gin mode for an environment. Only "dev" runs in debug
// mode; every other environment runs in release mode.
func GinMode(environment string) string {
	if environment == "dev" {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

// Server represents the API server
type Server struct {
	router      *gin.Engine
	logger      *zap.Logger
	identities  identities.IdentityService
	marketfeeds marketfeeds.MarketFeedService
	upstream    Pinger
	version     config.VersionInfo
}

// NewServer creates a new API server with injected service interfaces
func NewServer(
	logger *zap.Logger,
	identities identities.IdentityService,
	marketfeeds marketfeeds.MarketFeedService,
	upstream Pinger,
	opts Options,
) *Server {
	server := &Server{
		logger:      logger,
		identities:  identities,
		marketfeeds: marketfeeds,
		upstream:    upstream,
		version:     opts.Version,
	}

	if opts.ServiceName == "" {
		opts.ServiceName = "marketgw-api"
	}

	router := gin.New()

	// Add middleware
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	router.Use(apiutil.RequestIDMiddleware())
	router.Use(apiutil.MetricsMiddleware())
	router.Use(apiutil.RFC7807ErrorMiddleware(logger))

	server.router = router
	server.registerRoutes()
	return server
}

// Router returns the internal Gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", apiutil.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", apiutil.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Public routes
	s.router.POST("/auth/token", s.issueToken)
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/version", s.versionInfo)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Bearer-protected market data
	v1 := s.router.Group("/api/v1")
	v1.Use(auth.Middleware(s.logger, s.identities))
	{
		v1.GET("/coins", s.listCoins)
		v1.GET("/coins/markets", s.listCoinMarkets)
		v1.GET("/categories", s.listCategories)
	}
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status    string `json:"status"`
	CoinGecko bool   `json:"coingecko"`
}

// healthCheck reports "ok" when the upstream answers its ping and
// "degraded" otherwise. It always responds 200.
// @Summary Health check
// @Tags meta
// @Produce json
// @Success 200 {object} api.HealthResponse
// @Router /health [get]
func (s *Server) healthCheck(c *gin.Context) {
	up := s.upstream.Ping(c.Request.Context())
	status := "ok"
	if !up {
		status = "degraded"
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		CoinGecko: up,
	})
}

// versionInfo returns the application metadata
// @Summary Application version
// @Tags meta
// @Produce json
// @Success 200 {object} config.VersionInfo
// @Router /version [get]
func (s *Server) versionInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.version)
}
