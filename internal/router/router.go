package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/eskalate/jobboard/internal/auth"
	"github.com/eskalate/jobboard/internal/handler"
	"github.com/eskalate/jobboard/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	authMiddleware echo.MiddlewareFunc,
	authHandler *handler.AuthHandler,
	jobHandler *handler.JobHandler,
	applicationHandler *handler.ApplicationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.GET("/auth/verify", authHandler.Verify)
	api.POST("/auth/login", authHandler.Login)

	// Job routes (authenticated)
	jobs := api.Group("/jobs", authMiddleware)
	jobs.POST("", jobHandler.Create, auth.RequireRole(model.RoleCompany))
	jobs.GET("", jobHandler.List, auth.RequireRole(model.RoleApplicant))
	jobs.GET("/my", jobHandler.ListMine, auth.RequireRole(model.RoleCompany))
	jobs.GET("/:id", jobHandler.Get)
	jobs.PUT("/:id", jobHandler.Update, auth.RequireRole(model.RoleCompany))
	jobs.DELETE("/:id", jobHandler.Delete, auth.RequireRole(model.RoleCompany))

	// Application routes (authenticated)
	applications := api.Group("/applications", authMiddleware)
	applications.POST("/:id/apply", applicationHandler.Apply, auth.RequireRole(model.RoleApplicant))
	applications.GET("/my", applicationHandler.ListMine, auth.RequireRole(model.RoleApplicant))
	applications.GET("/job/:jobId", applicationHandler.ListForJob, auth.RequireRole(model.RoleCompany))
	applications.PUT("/:id/status", applicationHandler.UpdateStatus, auth.RequireRole(model.RoleCompany))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
