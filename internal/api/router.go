package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ayurveda/iam-service/internal/api/handler"
	"github.com/ayurveda/iam-service/internal/api/middleware"
	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

// LastLoginReader exposes the most recent successful login per username.
type LastLoginReader interface {
	Get(ctx context.Context, username string) (int64, error)
}

// Deps carries the already-constructed collaborators the router wires into
// handlers. Construction happens in main so tests can substitute fakes.
type Deps struct {
	AuthService ports.AuthService
	UserService ports.UserService
	TokenIssuer ports.TokenIssuer
	LastLogin   LastLoginReader
	Mongo       *mongo.Database
	Redis       *redis.Client
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("iam"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.UserService, deps.LastLogin)
	userHandler := handler.NewUserHandler(deps.UserService)
	authMiddleware := middleware.Auth(deps.TokenIssuer)
	adminOnly := middleware.RBAC(domain.RoleSuperAdmin, domain.RoleCollegeAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- User management (admin tiers only) ---
	users := e.Group("/users", authMiddleware, adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.GET("/by-username/:username", userHandler.GetByUsername)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
