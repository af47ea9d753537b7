package handlers

import (
	"errors"
	"net/http"

	"smartrental/internal/common"
	"smartrental/internal/logging"
	"smartrental/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// serviceError turns a service error into the HTTP answer. Errors without a
// kind are logged and reported with a generic message.
func serviceError(c echo.Context, operation string, err error) error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		return echo.NewHTTPError(statusFor(svcErr.Kind), svcErr.Message)
	}

	logger := logging.WithComponent("http")
	logger.Error().Err(err).
		Str("operation", operation).
		Str("path", c.Request().URL.Path).
		Msg("request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "Failed to "+operation)
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, services.ErrNotFound), errors.Is(kind, services.ErrDenied):
		return http.StatusNotFound
	case errors.Is(kind, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(kind, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, services.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(kind, services.ErrTooManyRequests):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// caller returns the authenticated user set by the JWT middleware.
func caller(c echo.Context) (services.Actor, error) {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return services.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	role, _ := common.GetRoleFromContext(ctx)
	return services.Actor{ID: userID, Role: role}, nil
}

// pathID parses a UUID path parameter, answering 400 when it is malformed.
func pathID(c echo.Context, name, label string) (uuid.UUID, error) {
	id, err := common.ValidateUUID(c.Param(name), label)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, common.MessageResponse{Message: msg})
}
