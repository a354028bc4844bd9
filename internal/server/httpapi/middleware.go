package httpapi

import (
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// userIDKey holds the resolved identity in the echo context.
const userIDKey = "userID"

// authenticate resolves the bearer token and stores the user id for handlers.
// Missing and invalid tokens are reported the same way.
func (s *HTTPServer) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := tokenFromRequest(c)
		if token == "" {
			return common.ErrorUnauthorized
		}

		userID, err := s.users.ResolveIdentity(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

// tokenFromRequest reads "Authorization: Bearer <token>", falling back to the
// x-auth-token header.
func tokenFromRequest(c echo.Context) string {
	h := c.Request().Header
	if v := h.Get(common.AuthorizationHeaderName); v != "" {
		scheme, token, ok := strings.Cut(v, " ")
		if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(h.Get(common.LegacyTokenHeaderName))
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func (s *HTTPServer) logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	s.logger.Info(c.Request().Context(), "request",
		"method", v.Method,
		"uri", v.URI,
		"route", v.RoutePath,
		"status", v.Status,
		"latency", v.Latency,
		"request_id", v.RequestID,
	)
	return nil
}

func (s *HTTPServer) logPanic(c echo.Context, err error, stack []byte) error {
	s.logger.Error(c.Request().Context(), "panic recovered", "error", err, "stack", string(stack))
	return err
}
