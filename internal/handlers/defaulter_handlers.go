package handlers

import (
	"fmt"
	"net/http"

	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

// DefaulterHandlers serves the landlord's rent defaulter views.
type DefaulterHandlers struct {
	defaulterService services.DefaulterService
}

func NewDefaulterHandlers(defaulterService services.DefaulterService) *DefaulterHandlers {
	return &DefaulterHandlers{defaulterService: defaulterService}
}

// GetDefaulters godoc
// @Summary      List tenants without a payment this month
// @Description  Up to and including the due day only a message is returned.
// @Tags         defaulters
// @Produce      json
// @Success      200  {object}  services.DefaulterReport
// @Security     BearerAuth
// @Router       /defaulters/rent-defaulters [get]
func (h *DefaulterHandlers) GetDefaulters(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	report, err := h.defaulterService.Detect(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "get defaulters", err)
	}
	if report.Early {
		return message(c, http.StatusOK, report.Message)
	}
	return c.JSON(http.StatusOK, report)
}

// SendReminders godoc
// @Summary  Text every defaulter a rent reminder
// @Tags     defaulters
// @Produce  json
// @Success  200  {object}  services.ReminderReport
// @Security BearerAuth
// @Router   /defaulters/send-defaulter-sms [post]
func (h *DefaulterHandlers) SendReminders(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	report, err := h.defaulterService.SendReminders(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "send reminders", err)
	}
	if report.Early {
		return message(c, http.StatusOK, report.Message)
	}
	return c.JSON(http.StatusOK, report)
}

// NotifyDefaulter sends one reminder to a single tenant of the landlord.
func (h *DefaulterHandlers) NotifyDefaulter(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	tenantID, err := pathID(c, "tenantId", "tenant ID")
	if err != nil {
		return err
	}

	name, err := h.defaulterService.NotifyDefaulter(c.Request().Context(), actor.ID, tenantID)
	if err != nil {
		return serviceError(c, "notify defaulter", err)
	}
	return message(c, http.StatusOK, fmt.Sprintf("Notification sent to %s", name))
}
