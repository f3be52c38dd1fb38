package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleHealth reports liveness only; it does not depend on configuration.
func (s *Server) handleHealth(c echo.Context) error {
	if err := c.JSON(http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to write health response: %w", err)
	}
	return nil
}
