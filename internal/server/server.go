// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"connectsphere/internal/avatar"
	"connectsphere/internal/cache"
	"connectsphere/internal/config"
	"connectsphere/internal/database"
	"connectsphere/internal/media"
	"connectsphere/internal/middleware"
	"connectsphere/internal/repository"
	"connectsphere/internal/service"
	"connectsphere/internal/store"
	"connectsphere/internal/verification"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	kv             store.KeyValue
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository

	postService         *service.PostService
	profileService      *service.ProfileService
	verificationService *service.VerificationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	var kv store.KeyValue
	var db *gorm.DB
	var redisClient *redis.Client

	switch cfg.StoreBackend {
	case config.StoreRedis:
		cache.InitRedis(cfg.RedisURL)
		redisClient = cache.GetClient()
		if redisClient == nil {
			return nil, fmt.Errorf("redis backend selected but connection failed")
		}
		kv = store.NewRedisStore(redisClient)
	case config.StoreDatabase:
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		kv = store.NewGormStore(db)
	case config.StoreMemory:
		kv = store.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	return NewServerWithDeps(cfg, kv, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the store and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, kv store.KeyValue, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(kv)
	postRepo := repository.NewPostRepository(kv)
	profileRepo := repository.NewProfileRepository(kv)

	prom := middleware.InitMetrics("connectsphere-api")

	server := &Server{
		config:         cfg,
		kv:             kv,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		profileRepo:    profileRepo,
	}

	avatarBase := cfg.AvatarBaseURL
	if avatarBase == "" {
		avatarBase = avatar.DefaultBaseURL
	}
	avatars := avatar.NewGenerator(avatarBase, time.Now().UnixNano())

	var issuer verification.CodeIssuer
	if cfg.VerificationCode != "" {
		issuer = verification.StaticIssuer(cfg.VerificationCode)
	} else {
		issuer = verification.NewLogIssuer(middleware.Logger, time.Now().UnixNano())
	}

	prober := media.StaticProber{
		Seconds: float64(cfg.ProbeDurationSeconds),
		Delay:   50 * time.Millisecond,
	}

	server.postService = service.NewPostService(postRepo, userRepo, nil)
	server.profileService = service.NewProfileService(profileRepo, userRepo, avatars)
	server.verificationService = service.NewVerificationService(
		issuer, prober, time.Duration(cfg.SessionTTLMinutes)*time.Minute, nil)

	return server, nil
}

// VerificationService exposes the verification service for bootstrap wiring.
func (s *Server) VerificationService() *service.VerificationService {
	return s.verificationService
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing spans per request
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "ConnectSphere Metrics Dashboard",
	}))

	// Post routes
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/quota", s.GetQuota)
	posts.Post("/", middleware.RateLimit(
		s.redis, 30, time.Minute, "create_post"), s.CreatePost)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", middleware.RateLimit(
		s.redis, 30, time.Minute, "create_comment"), s.CreateComment)
	posts.Post("/:id/like", s.ToggleLike)
	posts.Get("/:id", s.GetPost)

	// Profile and user routes
	api.Get("/profile", s.GetProfile)
	api.Put("/profile", s.UpdateProfile)
	api.Post("/profile/switch/:id", s.SwitchUser)
	users := api.Group("/users")
	users.Get("/", s.GetUsers)
	users.Get("/me", s.GetCurrentUser)
	users.Post("/switch/:id", s.SwitchUser)

	// Avatar routes
	avatars := api.Group("/avatars")
	avatars.Get("/styles", s.GetAvatarStyles)
	avatars.Get("/random", s.GetRandomAvatar)
	avatars.Get("/generate", s.GenerateAvatar)

	// Verification wizard routes
	questions := api.Group("/questions")
	questions.Get("/window", s.GetUploadWindow)
	sessions := questions.Group("/sessions")
	sessions.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_session"), s.CreateSession)
	sessions.Get("/:id", s.GetSession)
	sessions.Post("/:id/email", s.SubmitEmail)
	sessions.Post("/:id/code", s.SubmitCode)
	sessions.Post("/:id/back", s.GoBack)
	sessions.Post("/:id/file", s.SelectFile)
	sessions.Post("/:id/duration", s.RecordDuration)
	sessions.Delete("/:id/file", s.ClearFile)
	sessions.Post("/:id/submit", s.SubmitUpload)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	storeStatus := "healthy"
	switch {
	case s.redis != nil:
		if err := s.redis.Ping(ctx).Err(); err != nil {
			storeStatus = "unhealthy"
		}
	case s.db != nil:
		sqlDB, err := s.db.DB()
		if err != nil {
			storeStatus = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			storeStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if storeStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "ConnectSphere",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"store": storeStatus,
		},
		"time": time.Now(),
	})
}
