package server

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// identityMiddleware resolves the bearer token to a user ID and
// stashes it in the request context. A missing, malformed, invalid
// or expired token yields an empty caller rather than a transport
// error: the resolvers return Unauthenticated where identity is
// actually required.
func (s *Server) identityMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		callerID := ""

		auth := c.Request().Header.Get("Authorization")
		if token := strings.TrimPrefix(auth, "Bearer "); token != auth && token != "" {
			callerID = s.resolver.CallerFromToken(c.Request().Context(), token)
		}

		c.Set("user_id", callerID)
		return next(c)
	}
}

// callerID returns the authenticated user ID for the request, or ""
// for an anonymous caller.
func callerID(c echo.Context) string {
	if id, ok := c.Get("user_id").(string); ok {
		return id
	}
	return ""
}

// bearerToken returns the raw bearer token, or "".
func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(auth, "Bearer "); token != auth {
		return token
	}
	return ""
}
