package handlers

import (
	"net/http"
	"strings"

	"smartrental/internal/common"
	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

// AuditLogsHandlers serves the admin view of the audit trail.
type AuditLogsHandlers struct {
	auditLogsService services.AuditLogsService
}

func NewAuditLogsHandlers(auditLogsService services.AuditLogsService) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditLogsService: auditLogsService}
}

// ListAuditLogs godoc
// @Summary  List audit log entries, newest first
// @Tags     audit
// @Produce  json
// @Param    action  query  string  false  "Action prefix, e.g. PATCH /api/relocations"
// @Param    userId  query  string  false  "Only entries by this user"
// @Param    from    query  string  false  "YYYY-MM-DD"
// @Param    to      query  string  false  "YYYY-MM-DD, inclusive"
// @Param    limit   query  int     false  "Page size"
// @Param    offset  query  int     false  "Page offset"
// @Success  200  {object}  models.AuditLogPage
// @Failure  400  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /audit-logs [get]
func (h *AuditLogsHandlers) ListAuditLogs(c echo.Context) error {
	filter := models.AuditLogFilter{Action: strings.TrimSpace(c.QueryParam("action"))}

	if raw := c.QueryParam("userId"); raw != "" {
		userID, err := common.ValidateUUID(raw, "user ID")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filter.ActionBy = &userID
	}

	days, err := common.ParseDateRange(c.QueryParam("from"), c.QueryParam("to"), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter.Since, filter.Until = days.From, days.To

	page, err := common.ParsePage(c.QueryParam("limit"), c.QueryParam("offset"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter.Limit, filter.Offset = page.Limit, page.Offset

	result, err := h.auditLogsService.ListAuditLogs(c.Request().Context(), filter)
	if err != nil {
		return serviceError(c, "retrieve audit logs", err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuditLogsHandlers) GetAuditLog(c echo.Context) error {
	id, err := pathID(c, "id", "audit log ID")
	if err != nil {
		return err
	}

	entry, err := h.auditLogsService.GetAuditLog(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, "retrieve audit log", err)
	}
	return c.JSON(http.StatusOK, entry)
}

// ClearAuditLogs deletes the whole trail, or with ?before=YYYY-MM-DD only
// the entries older than that day.
func (h *AuditLogsHandlers) ClearAuditLogs(c echo.Context) error {
	before, err := common.ParseDate(c.QueryParam("before"), "before", nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	deleted, err := h.auditLogsService.ClearAuditLogs(c.Request().Context(), before)
	if err != nil {
		return serviceError(c, "clear audit logs", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Audit logs cleared",
		"deleted": deleted,
	})
}
