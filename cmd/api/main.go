package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Abdulkadar0710/Student-Dashboard-task/config"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/handlers"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/middleware"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/repository"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/services"
	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/session"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/db"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/httpclient"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/logger"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/metrics"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/profiling"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/storage"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/tracing"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/trigger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerAuthRoutes registers the session lifecycle routes. Login and
// signup are rate limited aggressively; logout is cheap and idempotent.
func registerAuthRoutes(
	router *gin.Engine,
	authRateLimiter, generalRateLimiter *middleware.RateLimiter,
	sessionRequired gin.HandlerFunc,
	authHandler *handlers.AuthHandler,
) {
	auth := router.Group("/api/v1/auth")
	auth.POST("/signup", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), authHandler.Signup)
	auth.POST("/login", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), authHandler.Login)
	auth.POST("/logout", generalRateLimiter.Middleware(), authHandler.Logout)
	auth.GET("/session", generalRateLimiter.Middleware(), sessionRequired, authHandler.Session)
}

// registerStudentRoutes registers the record routes. All of them sit
// behind the session middleware: the roster is never served anonymously.
func registerStudentRoutes(
	router *gin.Engine,
	generalRateLimiter, exportRateLimiter *middleware.RateLimiter,
	sessionRequired gin.HandlerFunc,
	studentHandler *handlers.StudentHandler,
	exportHandler *handlers.ExportHandler,
) {
	v1 := router.Group("/api/v1")
	v1.Use(sessionRequired)

	v1.GET("/students", generalRateLimiter.Middleware(), studentHandler.List)
	v1.GET("/students/:id", generalRateLimiter.Middleware(), studentHandler.GetByID)
	v1.POST("/students", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), studentHandler.Create)
	v1.GET("/courses", generalRateLimiter.Middleware(), studentHandler.Courses)

	if exportHandler != nil {
		v1.POST("/admin/export", exportRateLimiter.Middleware(), exportHandler.Export)
	}
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Student Dashboard API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.CollectorEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	if cfg.Profiling.Enabled {
		stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability.ServiceName, cfg.Server.AppEnv)
		if err != nil {
			logger.Fatal("Failed to initialize profiler", zap.Error(err))
		}
		defer stopProfiler()
	}

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: Database migrations are run separately via the migrate command
	// before starting the app: ./migrate or docker-compose run migrate

	// Process-wide session state. Starts unresolved; fan out identity
	// transitions to the configured webhook.
	sessions := session.NewManager()
	httpClient := httpclient.NewStandardClient()

	if triggerURL := cfg.EventTriggers.IdentityChangedTriggerURL; triggerURL != "" {
		sessions.Subscribe(func(ev session.Event) {
			payload := map[string]any{
				"event": "identity_changed",
				"state": ev.State.String(),
			}
			if ev.Identity != nil {
				payload["userId"] = ev.Identity.UserID
				payload["email"] = ev.Identity.Email
			}
			trigger.CallAsyncWithPayload(triggerURL, payload, httpClient)
		})
	}

	// The pool pinged successfully above, so the auth backend is confirmed
	// reachable. A server process holds no principal of its own at startup.
	sessions.Resolve(nil)

	revocations := session.NewRevocationStore()

	// Initialize object storage client (optional; roster export only)
	var storageClient *storage.Client
	if cfg.ObjectStorage.AccessKeyID != "" && cfg.ObjectStorage.SecretAccessKey != "" {
		storageClient, err = storage.NewClient(
			cfg.ObjectStorage.AccessKeyID,
			cfg.ObjectStorage.SecretAccessKey,
			cfg.ObjectStorage.BucketName,
			cfg.ObjectStorage.Endpoint,
			cfg.ObjectStorage.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize object storage client", zap.Error(err))
		}
	}

	// Initialize repositories
	studentRepo := repository.NewStudentRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg, sessions, revocations)
	studentService := services.NewStudentService(studentRepo, cfg, httpClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	studentHandler := handlers.NewStudentHandler(studentService)
	healthHandler := handlers.NewHealthHandler(pool)

	var exportHandler *handlers.ExportHandler
	if storageClient != nil {
		exportService := services.NewExportService(studentRepo, storageClient)
		exportHandler = handlers.NewExportHandler(exportService)
	} else {
		logger.Warn("Roster export disabled: object storage not configured")
	}

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - only allow the configured frontend origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters. Auth endpoints get a tight limit to slow down
	// credential stuffing; export hits object storage, so keep it rare.
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(1, 5)        // 1 req/sec, burst of 5
	exportRateLimiter := middleware.NewRateLimiter(0.1, 2)    // 1 req/10sec, burst of 2

	sessionRequired := middleware.SessionMiddleware(
		authService.GetTokenManager(),
		revocations,
		sessions,
		cfg.Session.CookieDomain,
		cfg.Session.CookieSecure,
	)

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	registerAuthRoutes(router, authRateLimiter, generalRateLimiter, sessionRequired, authHandler)
	registerStudentRoutes(router, generalRateLimiter, exportRateLimiter, sessionRequired, studentHandler, exportHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
