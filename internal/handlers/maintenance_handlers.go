package handlers

import (
	"net/http"
	"strings"

	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

// MaintenanceHandlers serves tenant repair requests.
type MaintenanceHandlers struct {
	maintenanceService services.MaintenanceService
}

func NewMaintenanceHandlers(maintenanceService services.MaintenanceService) *MaintenanceHandlers {
	return &MaintenanceHandlers{maintenanceService: maintenanceService}
}

type maintenanceResponse struct {
	Message string                     `json:"message"`
	Request *models.MaintenanceRequest `json:"request"`
}

type maintenanceListResponse struct {
	Count    int                          `json:"count"`
	Requests []*models.MaintenanceRequest `json:"requests"`
}

type maintenanceStatusRequest struct {
	Status string `json:"status"`
}

func maintenanceList(requests []*models.MaintenanceRequest) maintenanceListResponse {
	if requests == nil {
		requests = []*models.MaintenanceRequest{}
	}
	return maintenanceListResponse{Count: len(requests), Requests: requests}
}

// Create godoc
// @Summary  File a maintenance request for a house
// @Tags     maintenance
// @Accept   json
// @Produce  json
// @Param    body  body      services.MaintenanceInput  true  "Issue details; priority defaults to medium"
// @Success  201   {object}  maintenanceResponse
// @Failure  400   {object}  common.ErrorResponse
// @Failure  404   {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /maintenance [post]
func (h *MaintenanceHandlers) Create(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	var in services.MaintenanceInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	req, err := h.maintenanceService.Create(c.Request().Context(), actor.ID, &in)
	if err != nil {
		return serviceError(c, "create maintenance request", err)
	}
	return c.JSON(http.StatusCreated, maintenanceResponse{Message: "Maintenance request submitted", Request: req})
}

// List godoc
// @Summary  List maintenance requests
// @Tags     maintenance
// @Produce  json
// @Param    status  query  string  false  "pending, in-progress or resolved"
// @Success  200  {object}  maintenanceListResponse
// @Failure  400  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /maintenance [get]
func (h *MaintenanceHandlers) List(c echo.Context) error {
	requests, err := h.maintenanceService.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("status")))
	if err != nil {
		return serviceError(c, "fetch maintenance requests", err)
	}
	return c.JSON(http.StatusOK, maintenanceList(requests))
}

// ListMine godoc
// @Summary  List the caller's maintenance requests
// @Tags     maintenance
// @Produce  json
// @Success  200  {object}  maintenanceListResponse
// @Security BearerAuth
// @Router   /maintenance/mine [get]
func (h *MaintenanceHandlers) ListMine(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	requests, err := h.maintenanceService.ListMine(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "fetch maintenance requests", err)
	}
	return c.JSON(http.StatusOK, maintenanceList(requests))
}

// Get godoc
// @Summary  Get one maintenance request
// @Tags     maintenance
// @Produce  json
// @Param    id  path  string  true  "Request ID"
// @Success  200  {object}  models.MaintenanceRequest
// @Failure  404  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /maintenance/{id} [get]
func (h *MaintenanceHandlers) Get(c echo.Context) error {
	id, err := pathID(c, "id", "request ID")
	if err != nil {
		return err
	}

	req, err := h.maintenanceService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, "fetch maintenance request", err)
	}
	return c.JSON(http.StatusOK, req)
}

// UpdateStatus godoc
// @Summary      Set the status of a maintenance request
// @Description  The tenant is notified through their notification preferences.
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Request ID"
// @Param        body  body  maintenanceStatusRequest  true  "New status"
// @Success      200  {object}  maintenanceResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance/{id} [patch]
func (h *MaintenanceHandlers) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id", "request ID")
	if err != nil {
		return err
	}

	var body maintenanceStatusRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	req, err := h.maintenanceService.UpdateStatus(c.Request().Context(), id, strings.TrimSpace(body.Status))
	if err != nil {
		return serviceError(c, "update maintenance request", err)
	}
	return c.JSON(http.StatusOK, maintenanceResponse{Message: "Status updated", Request: req})
}

// Delete godoc
// @Summary      Delete a maintenance request
// @Description  Tenants may delete only their own requests.
// @Tags         maintenance
// @Produce      json
// @Param        id  path  string  true  "Request ID"
// @Success      200  {object}  common.MessageResponse
// @Failure      404  {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance/{id} [delete]
func (h *MaintenanceHandlers) Delete(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "request ID")
	if err != nil {
		return err
	}

	if err := h.maintenanceService.Delete(c.Request().Context(), actor, id); err != nil {
		return serviceError(c, "delete maintenance request", err)
	}
	return message(c, http.StatusOK, "Maintenance request deleted")
}
