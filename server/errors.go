package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/taskhub/internal/logger"
	"github.com/existflow/taskhub/internal/policy"
)

// jsonError maps a domain error to an HTTP response. Kinds outside
// the taxonomy are internal errors and are not leaked to the caller.
func jsonError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch policy.KindOf(err) {
	case policy.KindUnauthenticated, policy.KindInvalidCredentials:
		status = http.StatusUnauthorized
	case policy.KindNotFound:
		status = http.StatusNotFound
	case policy.KindNotAuthorized:
		status = http.StatusForbidden
	case policy.KindInvalidState, policy.KindConflict:
		status = http.StatusConflict
	case policy.KindInvalidInput:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.Error("Internal error", logger.F("error", err))
		return c.JSON(status, map[string]string{"error": "internal error"})
	}

	return c.JSON(status, map[string]string{"error": err.Error()})
}
