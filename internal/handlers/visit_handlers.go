package handlers

import (
	"net/http"
	"strings"

	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

// VisitHandlers serves site visit requests between tenants and landlords.
type VisitHandlers struct {
	visitService services.VisitService
}

func NewVisitHandlers(visitService services.VisitService) *VisitHandlers {
	return &VisitHandlers{visitService: visitService}
}

type visitResponse struct {
	Message string               `json:"message"`
	Visit   *models.VisitRequest `json:"visit"`
}

type visitListResponse struct {
	Count  int                    `json:"count"`
	Visits []*models.VisitRequest `json:"visits"`
}

type respondVisitRequest struct {
	Action string `json:"action"`
}

func visitList(visits []*models.VisitRequest) visitListResponse {
	if visits == nil {
		visits = []*models.VisitRequest{}
	}
	return visitListResponse{Count: len(visits), Visits: visits}
}

// Request godoc
// @Summary  Ask the landlord of a house for a site visit
// @Tags     visits
// @Accept   json
// @Produce  json
// @Param    body  body      services.VisitInput  true  "House, message and optional date"
// @Success  201   {object}  visitResponse
// @Failure  400   {object}  common.ErrorResponse
// @Failure  404   {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /visits/request [post]
func (h *VisitHandlers) Request(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	var in services.VisitInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	visit, err := h.visitService.Request(c.Request().Context(), actor.ID, &in)
	if err != nil {
		return serviceError(c, "request visit", err)
	}
	return c.JSON(http.StatusCreated, visitResponse{Message: "Visit request sent", Visit: visit})
}

// ListMine godoc
// @Summary  List the caller's visit requests
// @Tags     visits
// @Produce  json
// @Success  200  {object}  visitListResponse
// @Security BearerAuth
// @Router   /visits/mine [get]
func (h *VisitHandlers) ListMine(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	visits, err := h.visitService.ListMine(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "fetch visits", err)
	}
	return c.JSON(http.StatusOK, visitList(visits))
}

// ListReceived godoc
// @Summary  List visit requests addressed to the caller
// @Tags     visits
// @Produce  json
// @Success  200  {object}  visitListResponse
// @Security BearerAuth
// @Router   /visits/for-me [get]
func (h *VisitHandlers) ListReceived(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	visits, err := h.visitService.ListReceived(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "fetch visits", err)
	}
	return c.JSON(http.StatusOK, visitList(visits))
}

// Respond godoc
// @Summary      Approve or decline a visit request
// @Description  Only the user the visit is addressed to may answer. The tenant is told by email and SMS.
// @Tags         visits
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Visit ID"
// @Param        body  body  respondVisitRequest  true  "approve or decline"
// @Success      200  {object}  visitResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      403  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /visits/{id}/respond [put]
func (h *VisitHandlers) Respond(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "visit ID")
	if err != nil {
		return err
	}

	var body respondVisitRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	visit, err := h.visitService.Respond(c.Request().Context(), actor, id, strings.TrimSpace(body.Action))
	if err != nil {
		return serviceError(c, "respond to visit", err)
	}
	return c.JSON(http.StatusOK, visitResponse{Message: "Visit " + string(visit.Status) + " successfully", Visit: visit})
}
