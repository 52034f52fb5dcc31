// Package server contains the HTTP layer: routes, middleware wiring and
// handlers for the API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"trackwerk/internal/ai"
	"trackwerk/internal/auth"
	"trackwerk/internal/cache"
	"trackwerk/internal/config"
	"trackwerk/internal/database"
	"trackwerk/internal/middleware"
	"trackwerk/internal/repository"
	"trackwerk/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *auth.Manager

	authService        *service.AuthService
	jobService         *service.JobService
	appService         *service.ApplicationService
	cvService          *service.CVService
	anschreibenService *service.AnschreibenService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var generator ai.Generator
	if cfg.AIConfigured() {
		generator = ai.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AIModel)
	}

	return NewServerWithDeps(cfg, db, redisClient, generator)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use it with an in-memory database and a stub generator.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, generator ai.Generator) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	cvRepo := repository.NewCVRepository(db)
	anschreibenRepo := repository.NewAnschreibenRepository(db)

	// The default Prometheus registry rejects duplicate collectors, so
	// metrics stay off when tests build multiple servers per process.
	var prom *fiberprometheus.FiberPrometheus
	if cfg.Env != "test" {
		prom = middleware.InitMetrics("trackwerk-api")
	}
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiryDays)

	aiConfigured := func() bool { return generator != nil && cfg.AIConfigured() }

	server := &Server{
		config:             cfg,
		db:                 db,
		redis:              redisClient,
		promMiddleware:     prom,
		tokens:             tokens,
		authService:        service.NewAuthService(userRepo, tokens),
		jobService:         service.NewJobService(jobRepo),
		appService:         service.NewApplicationService(appRepo, jobRepo, cvRepo),
		cvService:          service.NewCVService(cvRepo),
		anschreibenService: service.NewAnschreibenService(anschreibenRepo, appRepo, generator, aiConfigured),
	}
	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// OpenTelemetry spans per request
	if s.config.TracingEnabled {
		app.Use(middleware.Tracing())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; CORS handles them.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	authRequired := middleware.AuthRequired(s.tokens)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	authGroup.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	authGroup.Post("/logout", s.Logout)
	authGroup.Get("/me", authRequired, s.Me)

	// Job routes
	jobs := api.Group("/jobs", authRequired)
	jobs.Post("/", s.CreateJob)
	jobs.Get("/", s.GetJobs)
	// Specific routes before the generic /:id route
	jobs.Get("/search", s.SearchJobs)
	jobs.Get("/statistics", s.GetJobStatistics)
	jobs.Get("/:id", s.GetJob)
	jobs.Put("/:id", s.UpdateJob)
	jobs.Delete("/:id", s.DeleteJob)

	// Application routes
	applications := api.Group("/applications", authRequired)
	applications.Post("/", s.CreateApplication)
	applications.Get("/", s.GetApplications)
	applications.Get("/statistics", s.GetApplicationStatistics)
	applications.Get("/kanban", s.GetKanban)
	applications.Get("/:id", s.GetApplication)
	applications.Put("/:id", s.UpdateApplication)
	applications.Patch("/:id/status", s.UpdateApplicationStatus)
	applications.Delete("/:id", s.DeleteApplication)

	// CV routes
	cvs := api.Group("/cvs", authRequired)
	cvs.Post("/", s.CreateCV)
	cvs.Get("/", s.GetCVs)
	cvs.Get("/default", s.GetDefaultCV)
	cvs.Get("/statistics", s.GetCVStatistics)
	cvs.Get("/:id", s.GetCV)
	cvs.Put("/:id", s.UpdateCV)
	cvs.Patch("/:id/default", s.SetDefaultCV)
	cvs.Post("/:id/duplicate", s.DuplicateCV)
	cvs.Delete("/:id", s.DeleteCV)

	// Anschreiben routes
	anschreiben := api.Group("/anschreiben", authRequired)
	anschreiben.Post("/", s.CreateAnschreiben)
	anschreiben.Post("/generate", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "ai_generate"), s.GenerateAnschreiben)
	anschreiben.Get("/", s.GetAllAnschreiben)
	anschreiben.Get("/statistics", s.GetAnschreibenStatistics)
	anschreiben.Get("/application/:applicationId", s.GetAnschreibenByApplication)
	anschreiben.Get("/:id", s.GetAnschreiben)
	anschreiben.Put("/:id", s.UpdateAnschreiben)
	anschreiben.Post("/:id/refine", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "ai_refine"), s.RefineAnschreiben)
	anschreiben.Post("/:id/duplicate", s.DuplicateAnschreiben)
	anschreiben.Delete("/:id", s.DeleteAnschreiben)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// The cache is best-effort, so Redis only degrades readiness, never
	// fails it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// App builds (once) and returns the configured Fiber application.
func (s *Server) App() *fiber.App {
	if s.app == nil {
		s.app = fiber.New(fiber.Config{
			AppName:      "trackwerk-api",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		})
		s.SetupMiddleware(s.app)
		s.SetupRoutes(s.app)
	}
	return s.app
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	return s.App().Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app == nil {
		return nil
	}
	return s.app.ShutdownWithContext(ctx)
}
