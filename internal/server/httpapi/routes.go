package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// apiRoot prefixes every route.
const apiRoot = "/api"

// bodyLimit caps request bodies; every payload here is a handful of strings.
const bodyLimit = "64K"

func (s *HTTPServer) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogRoutePath:  true,
		LogStatus:     true,
		LogLatency:    true,
		LogRequestID:  true,
		HandleError:   true,
		LogValuesFunc: s.logRequest,
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: s.logPanic,
	}))
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(bodyLimit))

	s.routes(e)
	return e
}

// routes registers all available routes
func (s *HTTPServer) routes(e *echo.Echo) {
	api := e.Group(apiRoot)

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)

	// Routes for the authenticated user
	auth.GET("/me", s.me, s.authenticate)
	auth.PUT("/update-password", s.updatePassword, s.authenticate)

	// Task routes, all owner-scoped
	tasks := api.Group("/tasks", s.authenticate)
	tasks.GET("", s.listTasks)
	tasks.POST("", s.createTask)
	tasks.PUT("/:id", s.updateTask)
	tasks.DELETE("/:id", s.deleteTask)
}
