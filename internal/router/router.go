package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"pulseadmin/internal/config"
	apperrors "pulseadmin/internal/errors"
	"pulseadmin/internal/handler"
	"pulseadmin/internal/metrics"
	"pulseadmin/internal/rbac"
	"pulseadmin/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	m *metrics.Metrics,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	orgHandler *handler.OrganizationHandler,
	taskHandler *handler.TaskHandler,
	notificationHandler *handler.NotificationHandler,
	fileHandler *handler.FileHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes: echo-jwt verifies the signature, the principal
	// middleware resolves the claims against the current account state.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}), principalMiddleware(authService))

	secured.GET("/profile/me", userHandler.Me)

	// User management
	secured.GET("/users", userHandler.ListUsers)
	secured.POST("/users", userHandler.CreateUser)
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateUser)
	secured.DELETE("/users/:id", userHandler.DeleteUser)
	secured.PUT("/users/:id/role", userHandler.ChangeRole)

	// Superadmin tenant management
	secured.GET("/superadmin/tenants", orgHandler.ListTenants)
	secured.POST("/superadmin/tenants", orgHandler.CreateTenant)
	secured.GET("/superadmin/tenants/stats", orgHandler.Stats)
	secured.GET("/superadmin/tenants/:id", orgHandler.GetTenant)

	// Tasks
	secured.GET("/tasks", taskHandler.ListTasks)
	secured.POST("/tasks", taskHandler.CreateTask)
	secured.GET("/tasks/:id", taskHandler.GetTask)
	secured.PUT("/tasks/:id", taskHandler.UpdateTask)
	secured.DELETE("/tasks/:id", taskHandler.DeleteTask)

	// Notifications
	secured.GET("/notifications", notificationHandler.ListNotifications)
	secured.POST("/notifications", notificationHandler.CreateNotification)
	secured.GET("/notifications/:id", notificationHandler.GetNotification)
	secured.POST("/notifications/:id/read", notificationHandler.MarkRead)
	secured.DELETE("/notifications/:id", notificationHandler.DeleteNotification)

	// Files
	secured.GET("/files", fileHandler.ListFiles)
	secured.POST("/files", fileHandler.CreateFile)
	secured.GET("/files/:id", fileHandler.GetFile)
	secured.DELETE("/files/:id", fileHandler.DeleteFile)
}

// principalMiddleware turns verified token claims into a Principal attached
// to the request context. Verification itself stays pure; this middleware
// reads the account's current state for role and tenant resolution.
func principalMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			uid, ok := claims["user_id"].(float64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			p, err := authService.ResolvePrincipal(c.Request().Context(), uint(uid))
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(rbac.PrincipalContextKey, p)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
