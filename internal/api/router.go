package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/deptworks/consultancy-api/docs"
	"github.com/deptworks/consultancy-api/internal/api/handler"
	"github.com/deptworks/consultancy-api/internal/api/middleware"
	"github.com/deptworks/consultancy-api/internal/core/domain"
	"github.com/deptworks/consultancy-api/internal/core/service"
	"github.com/deptworks/consultancy-api/internal/core/token"
	"github.com/deptworks/consultancy-api/internal/infrastructure/config"
	mongodb "github.com/deptworks/consultancy-api/internal/infrastructure/db/mongo"
	redisdb "github.com/deptworks/consultancy-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Every route is registered exactly once, with validation living in the
// handlers themselves rather than stacked route-level validators.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("consultancy"))

	// --- Dependencies ---
	issuer := token.NewIssuer(token.Config{
		Secret:   cfg.JWTSecret,
		TTL:      cfg.JWTExpiry,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	})

	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	projectCache := redisdb.NewProjectCache(rdb)

	authService := service.NewAuthService(userRepo, issuer)
	clientService := service.NewClientService(clientRepo)
	projectService := service.NewProjectService(projectRepo, clientRepo, projectCache, log)

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	projectHandler := handler.NewProjectHandler(projectService)

	authenticate := middleware.Auth(issuer)
	lecturerOnly := middleware.RequireRole(domain.RoleLecturer)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/users", authHandler.ListUsers, authenticate, lecturerOnly)
	auth.GET("/users/:id", authHandler.GetUser, authenticate)
	auth.GET("/me", authHandler.Me, authenticate)
	auth.DELETE("/:id", authHandler.DeleteUser, authenticate, lecturerOnly)

	// --- Client routes: reads authenticated, mutations lecturer-gated ---
	clients := e.Group("/api/clients", authenticate)
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.POST("", clientHandler.Create, lecturerOnly)
	clients.PUT("/:id", clientHandler.Update, lecturerOnly)
	clients.DELETE("/:id", clientHandler.Delete, lecturerOnly)

	// --- Project routes ---
	projects := e.Group("/api/projects", authenticate)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.GET("/client/:clientId", projectHandler.ListByClient)
	projects.POST("", projectHandler.Create, lecturerOnly)
	projects.PUT("/:id", projectHandler.Update, lecturerOnly)
	projects.DELETE("/:id", projectHandler.Delete, lecturerOnly)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API is running...")
	})
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
