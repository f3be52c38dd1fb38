package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/hello-env/internal/domain"
)

func (s *Server) handleGreeting(c echo.Context) error {
	greeting := domain.NewGreeting(s.config.AppEnv, s.config.DBPassword)

	if err := c.String(http.StatusOK, greeting.Text(s.includeDB)); err != nil {
		return fmt.Errorf("failed to write greeting: %w", err)
	}
	return nil
}
