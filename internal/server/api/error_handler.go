package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/assocportal/internal/common"
	"github.com/dmitrijs2005/assocportal/internal/logging"
	"github.com/dmitrijs2005/assocportal/internal/server/services"
	"github.com/labstack/echo/v4"
)

// errorResponse is the error envelope the client decodes.
type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// NewHTTPErrorHandler maps known errors to status codes, logs unexpected
// ones and renders {"message", "statusCode"}.
func NewHTTPErrorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, logger, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg, StatusCode: code})
	}
}

func resolveError(err error, logger logging.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, services.ErrRoleNotAllowed):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrInvalidResetCode):
		return http.StatusBadRequest, err.Error()
	}

	logger.Error(c.Request().Context(), "unhandled error",
		"error", err,
		"method", c.Request().Method,
		"path", c.Path(),
	)
	return http.StatusInternalServerError, "internal server error"
}
