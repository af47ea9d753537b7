package handlers

import (
	"net/http"

	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

// NotificationHandlers handles notification-related HTTP requests
type NotificationHandlers struct {
	notificationSvc services.NotificationService
}

// NewNotificationHandlers creates a new notification handlers instance
func NewNotificationHandlers(notificationSvc services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{
		notificationSvc: notificationSvc,
	}
}

// ListMine returns the caller's in-app notifications, newest first.
func (h *NotificationHandlers) ListMine(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationSvc.List(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "fetch notifications", err)
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": notifications,
	})
}

// MarkAllSeen flags every unseen notification of the caller.
func (h *NotificationHandlers) MarkAllSeen(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	if _, err := h.notificationSvc.MarkAllSeen(c.Request().Context(), actor.ID); err != nil {
		return serviceError(c, "mark notifications as seen", err)
	}
	return message(c, http.StatusOK, "All notifications marked as seen")
}

// Delete removes one of the caller's notifications.
func (h *NotificationHandlers) Delete(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "notification ID")
	if err != nil {
		return err
	}

	if err := h.notificationSvc.Delete(c.Request().Context(), actor.ID, id); err != nil {
		return serviceError(c, "delete notification", err)
	}
	return message(c, http.StatusOK, "Notification deleted successfully")
}
