package handlers

import (
	"errors"
	"net/http"
	"strings"

	"smartrental/internal/common"
	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RelocationHandlers serves the relocation request lifecycle.
type RelocationHandlers struct {
	relocationService services.RelocationService
}

func NewRelocationHandlers(relocationService services.RelocationService) *RelocationHandlers {
	return &RelocationHandlers{relocationService: relocationService}
}

type relocationResponse struct {
	Message string                    `json:"message"`
	Request *models.RelocationRequest `json:"request"`
}

type relocationListResponse struct {
	Count    int                         `json:"count"`
	Requests []*models.RelocationRequest `json:"requests"`
}

type updateStatusRequest struct {
	Status   string `json:"status"`
	DriverID string `json:"driverId"`
}

type assignDriverRequest struct {
	RequestID string `json:"requestId"`
	DriverID  string `json:"driverId"`
}

type rateRequest struct {
	RequestID string `json:"requestId"`
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback"`
}

func listResponse(requests []*models.RelocationRequest) relocationListResponse {
	if requests == nil {
		requests = []*models.RelocationRequest{}
	}
	return relocationListResponse{Count: len(requests), Requests: requests}
}

// RequestRelocation godoc
// @Summary      Request a relocation
// @Description  Creates a pending relocation request with a fixed cost estimate.
// @Tags         relocations
// @Accept       json
// @Produce      json
// @Param        body  body      services.RelocationInput  true  "Move details"
// @Success      201   {object}  relocationResponse
// @Failure      400   {object}  common.ErrorResponse
// @Failure      404   {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /relocations/request [post]
func (h *RelocationHandlers) RequestRelocation(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	var in services.RelocationInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	req, err := h.relocationService.Request(c.Request().Context(), actor.ID, &in)
	if err != nil {
		return serviceError(c, "request relocation", err)
	}

	return c.JSON(http.StatusCreated, relocationResponse{Message: "Relocation requested", Request: req})
}

// ListMine godoc
// @Summary  List the caller's relocation requests
// @Tags     relocations
// @Produce  json
// @Success  200  {object}  relocationListResponse
// @Security BearerAuth
// @Router   /relocations/mine [get]
func (h *RelocationHandlers) ListMine(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	requests, err := h.relocationService.ListMine(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "load relocation requests", err)
	}
	return c.JSON(http.StatusOK, listResponse(requests))
}

// ListAll godoc
// @Summary  List every relocation request
// @Tags     relocations
// @Produce  json
// @Success  200  {object}  relocationListResponse
// @Security BearerAuth
// @Router   /relocations/all [get]
func (h *RelocationHandlers) ListAll(c echo.Context) error {
	requests, err := h.relocationService.ListAll(c.Request().Context())
	if err != nil {
		return serviceError(c, "load requests", err)
	}
	return c.JSON(http.StatusOK, listResponse(requests))
}

// ListFiltered godoc
// @Summary  Filter relocation requests by status and creation date
// @Tags     relocations
// @Produce  json
// @Param    status  query  string  false  "pending, approved, assigned, completed or declined"
// @Param    from    query  string  false  "YYYY-MM-DD, inclusive"
// @Param    to      query  string  false  "YYYY-MM-DD, inclusive"
// @Success  200  {object}  relocationListResponse
// @Failure  400  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /relocations/filtered [get]
func (h *RelocationHandlers) ListFiltered(c echo.Context) error {
	var filter models.RelocationFilter

	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		s := models.RelocationStatus(status)
		filter.Status = &s
	}
	days, err := common.ParseDateRange(c.QueryParam("from"), c.QueryParam("to"), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter.From, filter.To = days.From, days.To

	requests, err := h.relocationService.ListFiltered(c.Request().Context(), filter)
	if err != nil {
		return serviceError(c, "fetch filtered requests", err)
	}
	return c.JSON(http.StatusOK, listResponse(requests))
}

// GetRequest godoc
// @Summary  Get one relocation request
// @Tags     relocations
// @Produce  json
// @Param    id  path  string  true  "Request ID"
// @Success  200  {object}  models.RelocationRequest
// @Failure  404  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /relocations/requests/{id} [get]
func (h *RelocationHandlers) GetRequest(c echo.Context) error {
	id, err := pathID(c, "id", "request ID")
	if err != nil {
		return err
	}

	req, err := h.relocationService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, "load request", err)
	}
	return c.JSON(http.StatusOK, req)
}

// UpdateStatus godoc
// @Summary      Set the status of a relocation request
// @Description  Any whitelisted status is accepted. Setting "assigned" with a driver texts the driver.
// @Tags         relocations
// @Accept       json
// @Produce      json
// @Param        requestId  path  string               true  "Request ID"
// @Param        body       body  updateStatusRequest  true  "New status"
// @Success      200  {object}  relocationResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /relocations/update/{requestId} [patch]
func (h *RelocationHandlers) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "requestId", "request ID")
	if err != nil {
		return err
	}

	var body updateStatusRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	var driverID *uuid.UUID
	if strings.TrimSpace(body.DriverID) != "" {
		parsed, err := common.ValidateUUID(body.DriverID, "driver ID")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		driverID = &parsed
	}

	req, err := h.relocationService.UpdateStatus(c.Request().Context(), id, body.Status, driverID)
	if err != nil {
		return serviceError(c, "update status", err)
	}
	return c.JSON(http.StatusOK, relocationResponse{Message: "Status updated", Request: req})
}

// AssignDriver godoc
// @Summary  Assign a driver and mark the request assigned
// @Tags     relocations
// @Accept   json
// @Produce  json
// @Param    body  body  assignDriverRequest  true  "Request and driver"
// @Success  200  {object}  relocationResponse
// @Failure  400  {object}  common.ErrorResponse
// @Failure  404  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /relocations/assign-driver [patch]
func (h *RelocationHandlers) AssignDriver(c echo.Context) error {
	var body assignDriverRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	requestID, err := common.ValidateUUID(body.RequestID, "request ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	driverID, err := common.ValidateUUID(body.DriverID, "driver ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req, err := h.relocationService.AssignDriver(c.Request().Context(), requestID, driverID)
	if err != nil {
		return serviceError(c, "assign driver", err)
	}
	return c.JSON(http.StatusOK, relocationResponse{Message: "Driver assigned successfully", Request: req})
}

// Complete godoc
// @Summary  Mark a relocation completed
// @Tags     relocations
// @Produce  json
// @Param    requestId  path  string  true  "Request ID"
// @Success  200  {object}  relocationResponse
// @Failure  404  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /relocations/complete/{requestId} [patch]
func (h *RelocationHandlers) Complete(c echo.Context) error {
	id, err := pathID(c, "requestId", "request ID")
	if err != nil {
		return err
	}

	req, err := h.relocationService.Complete(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, "complete relocation", err)
	}
	return c.JSON(http.StatusOK, relocationResponse{Message: "Relocation completed successfully", Request: req})
}

// Rate godoc
// @Summary      Rate a relocation once
// @Description  Unknown requests and requests of other tenants get the same 404.
// @Tags         relocations
// @Accept       json
// @Produce      json
// @Param        body  body  rateRequest  true  "Rating 1-5 and feedback"
// @Success      200  {object}  common.MessageResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /relocations/rate [post]
func (h *RelocationHandlers) Rate(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	var body rateRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	requestID, err := uuid.Parse(strings.TrimSpace(body.RequestID))
	if err != nil {
		// a malformed id cannot be owned by anyone
		return echo.NewHTTPError(http.StatusNotFound, "Not found or unauthorized")
	}

	if err := h.relocationService.Rate(c.Request().Context(), actor.ID, requestID, body.Rating, body.Feedback); err != nil {
		if errors.Is(err, services.ErrConflict) {
			return echo.NewHTTPError(http.StatusBadRequest, "Already rated")
		}
		return serviceError(c, "rate relocation", err)
	}
	return message(c, http.StatusOK, "Thank you for your feedback!")
}

// Delete godoc
// @Summary  Delete a relocation request
// @Tags     relocations
// @Produce  json
// @Param    requestId  path  string  true  "Request ID"
// @Success  200  {object}  common.MessageResponse
// @Failure  404  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /relocations/{requestId} [delete]
func (h *RelocationHandlers) Delete(c echo.Context) error {
	id, err := pathID(c, "requestId", "request ID")
	if err != nil {
		return err
	}

	if err := h.relocationService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, "delete request", err)
	}
	return message(c, http.StatusOK, "Relocation request deleted successfully")
}

// NotifyTenant godoc
// @Summary  Email the tenant that the request was processed
// @Tags     relocations
// @Produce  json
// @Param    requestId  path  string  true  "Request ID"
// @Success  200  {object}  common.MessageResponse
// @Failure  404  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /relocations/notify/{requestId} [post]
func (h *RelocationHandlers) NotifyTenant(c echo.Context) error {
	id, err := pathID(c, "requestId", "request ID")
	if err != nil {
		return err
	}

	if err := h.relocationService.NotifyTenant(c.Request().Context(), id); err != nil {
		return serviceError(c, "notify tenant", err)
	}
	return message(c, http.StatusOK, "Notification sent to tenant")
}
