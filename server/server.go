// Package server exposes the tracker's operations over HTTP. The
// transport is thin: handlers decode JSON, hand the caller identity
// and arguments to the resolver layer, and map domain errors to
// status codes.
package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/taskhub/internal/config"
	"github.com/existflow/taskhub/internal/logger"
	"github.com/existflow/taskhub/internal/policy"
	"github.com/existflow/taskhub/internal/resolver"
	"github.com/existflow/taskhub/internal/store"
)

// Server is the tracker API server.
type Server struct {
	store    store.Store
	resolver *resolver.Resolver
	echo     *echo.Echo
}

// New opens the database named by cfg and wires up the API.
func New(cfg *config.Config) (*Server, error) {
	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	r := resolver.New(st, policy.ForName(cfg.AccessPolicy))
	if cfg.SessionTTLHours > 0 {
		r.SetSessionTTL(time.Duration(cfg.SessionTTLHours) * time.Hour)
	}

	s := &Server{
		store:    st,
		resolver: r,
	}
	s.setupEcho()

	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Request/response logging middleware.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("size", res.Size),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")

	// Auth endpoints (public).
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	// Everything else carries an optional bearer identity; the
	// resolvers decide what an anonymous caller may do.
	authed := api.Group("", s.identityMiddleware)
	authed.GET("/me", s.handleMe)
	authed.POST("/logout", s.handleLogout)

	authed.GET("/projects", s.handleListProjects)
	authed.GET("/projects/archived", s.handleListArchivedProjects)
	authed.POST("/projects", s.handleCreateProject)
	authed.GET("/projects/:id", s.handleGetProject)
	authed.DELETE("/projects/:id", s.handleDeleteProject)
	authed.POST("/projects/:id/archive", s.handleArchiveProject)
	authed.POST("/projects/:id/unarchive", s.handleUnarchiveProject)

	authed.GET("/projects/:id/tasks", s.handleListTasks)
	authed.POST("/tasks", s.handleCreateTask)
	authed.PATCH("/tasks/:id", s.handleUpdateTask)
	authed.DELETE("/tasks/:id", s.handleDeleteTask)

	authed.GET("/projects/:id/tags", s.handleListTags)
	authed.POST("/tags", s.handleCreateTag)
	authed.PATCH("/tags/:id", s.handleUpdateTag)
	authed.DELETE("/tags/:id", s.handleDeleteTag)

	authed.GET("/projects/:id/templates", s.handleListTemplates)
	authed.POST("/templates", s.handleCreateTemplate)
	authed.GET("/templates/:id", s.handleGetTemplate)
	authed.PATCH("/templates/:id", s.handleUpdateTemplate)
	authed.DELETE("/templates/:id", s.handleDeleteTemplate)
	authed.POST("/templates/:id/tasks", s.handleCreateTaskFromTemplate)

	s.echo = e
}

// Close closes the database connection.
func (s *Server) Close() error {
	return s.store.Close()
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
