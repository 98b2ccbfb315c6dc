package api

import (
	"net/http"

	"hallbook/internal/cache"
	"hallbook/internal/config"
	"hallbook/internal/database"
	"hallbook/internal/handlers"
	"hallbook/internal/logger"
	"hallbook/internal/messaging"
	"hallbook/internal/middleware"
	"hallbook/internal/repository"
	"hallbook/internal/search"
	"hallbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires storage, messaging and the HTTP routes together.
type Server struct {
	router       *gin.Engine
	config       *config.Config
	db           *database.DB
	nats         *messaging.NATSClient
	valkeyClient *cache.ValkeyClient
	services     *service.Services
	repos        *repository.Repositories
}

func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	documentStore, err := search.NewBookingDocumentStore(cfg.Elasticsearch)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		// The engine runs without messaging; side effects are lost but
		// bookings still work.
		logger.Get().Warn("NATS unavailable, side-effect events disabled", "error", err)
		natsClient = nil
	}

	valkeyClient, err := cache.NewValkeyClient(cfg.Cache)
	if err != nil {
		logger.Get().Warn("Valkey unavailable, tenant/resource cache disabled", "error", err)
		valkeyClient = nil
	}

	repos := repository.NewRepositories(db)

	var publisher service.Publisher
	if natsClient != nil {
		publisher = natsClient
	}
	services := service.NewServices(repos, repos.Bookings, documentStore, valkeyClient, publisher)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics())
	}

	server := &Server{
		router:       router,
		config:       cfg,
		db:           db,
		nats:         natsClient,
		valkeyClient: valkeyClient,
		services:     services,
		repos:        repos,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	api := s.router.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("/unavailable-dates/:tenantId", h.UnavailableDates)
		}

		api.GET("/resources/public/:tenantId", h.PublicResources)
		api.GET("/pricing/public/:tenantId", h.PublicPricing)
	}

	s.router.GET("/health", s.healthCheck)
	if s.config.MetricsEnabled {
		s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	check := s.db.HealthCheck(c.Request.Context())
	if check.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"service":  "hallbook-api",
			"database": check,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "hallbook-api",
		"version":  "1.0.0",
		"database": check,
	})
}

// GetRouter exposes the router for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes all outbound connections.
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkeyClient != nil {
		if err := s.valkeyClient.Close(); err != nil {
			logger.Get().Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
