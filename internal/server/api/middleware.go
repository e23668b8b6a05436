package api

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/assocportal/internal/common"
	"github.com/dmitrijs2005/assocportal/internal/logging"
	"github.com/dmitrijs2005/assocportal/internal/server/models"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const userContextKey = "user"

// Auth rejects requests without a valid bearer token and stores the
// identity under userContextKey.
func Auth(svc UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(common.AuthorizationHeaderName)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, common.BearerScheme) || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := svc.Authenticate(token)
			if err != nil {
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func currentUser(c echo.Context) (*models.PublicUser, error) {
	user, ok := c.Get(userContextKey).(*models.PublicUser)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}

// requestLogger writes one line per request, tagged with the request ID the
// client sent or echo generated.
func requestLogger(logger logging.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				args = append(args, "error", v.Error)
			}
			logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	})
}
