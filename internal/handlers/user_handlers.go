package handlers

import (
	"net/http"

	"smartrental/internal/common"
	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers serves profile and admin user management endpoints.
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// Me handles getting current user profile
func (h *UserHandlers) Me(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "load user profile", err)
	}
	return c.JSON(http.StatusOK, user)
}

// Deactivate soft-deletes the caller's own account.
func (h *UserHandlers) Deactivate(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.userService.Deactivate(c.Request().Context(), actor.ID); err != nil {
		return serviceError(c, "update account status", err)
	}
	return message(c, http.StatusOK, "Your account has been deactivated.")
}

func (h *UserHandlers) UpdateNotificationPrefs(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	var prefs models.NotificationPrefs
	if err := c.Bind(&prefs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userService.UpdateNotificationPrefs(c.Request().Context(), actor.ID, prefs)
	if err != nil {
		return serviceError(c, "update notification preferences", err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers returns users, optionally filtered by ?role=, with limit/offset paging.
func (h *UserHandlers) ListUsers(c echo.Context) error {
	page, err := common.ParsePage(c.QueryParam("limit"), c.QueryParam("offset"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	users, err := h.userService.List(c.Request().Context(), c.QueryParam("role"), page.Limit, page.Offset)
	if err != nil {
		return serviceError(c, "list users", err)
	}
	if users == nil {
		users = []*models.User{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": len(users),
		"users": users,
	})
}

func (h *UserHandlers) Suspend(c echo.Context) error {
	return h.setSuspended(c, true)
}

func (h *UserHandlers) Unsuspend(c echo.Context) error {
	return h.setSuspended(c, false)
}

func (h *UserHandlers) setSuspended(c echo.Context, suspended bool) error {
	id, err := pathID(c, "id", "user ID")
	if err != nil {
		return err
	}

	user, err := h.userService.SetSuspended(c.Request().Context(), id, suspended)
	if err != nil {
		return serviceError(c, "update user suspension", err)
	}

	state := "active"
	if user.Suspended {
		state = "suspended"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User is now " + state,
		"user":    user,
	})
}

func (h *UserHandlers) ChangeRole(c echo.Context) error {
	id, err := pathID(c, "id", "user ID")
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userService.ChangeRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return serviceError(c, "change role", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Role updated",
		"user":    user,
	})
}
