package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates an account and returns a session token.
func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	result, err := s.resolver.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// handleLogin verifies credentials and returns a session token.
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	result, err := s.resolver.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// handleLogout invalidates the presented session token.
func (s *Server) handleLogout(c echo.Context) error {
	if token := bearerToken(c); token != "" {
		if err := s.resolver.Logout(c.Request().Context(), token); err != nil {
			return jsonError(c, err)
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleMe returns the caller's user record, or null when anonymous.
func (s *Server) handleMe(c echo.Context) error {
	user, err := s.resolver.CurrentUser(c.Request().Context(), callerID(c))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
