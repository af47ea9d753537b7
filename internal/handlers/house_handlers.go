package handlers

import (
	"net/http"

	"smartrental/internal/common"
	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

type HouseHandlers struct {
	houseService services.HouseService
}

func NewHouseHandlers(houseService services.HouseService) *HouseHandlers {
	return &HouseHandlers{houseService: houseService}
}

type houseStatusRequest struct {
	Status string `json:"status"`
}

type caretakerRequest struct {
	CaretakerID string `json:"caretakerId"`
}

func houseList(houses []*models.House) map[string]interface{} {
	if houses == nil {
		houses = []*models.House{}
	}
	return map[string]interface{}{"count": len(houses), "houses": houses}
}

func (h *HouseHandlers) Create(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	var in services.HouseInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	house, err := h.houseService.Create(c.Request().Context(), actor.ID, &in)
	if err != nil {
		return serviceError(c, "create house", err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "House created successfully",
		"house":   house,
	})
}

func (h *HouseHandlers) Get(c echo.Context) error {
	id, err := pathID(c, "id", "house ID")
	if err != nil {
		return err
	}

	house, err := h.houseService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, "load house", err)
	}
	return c.JSON(http.StatusOK, house)
}

// List returns all houses; ?status= narrows to one status.
func (h *HouseHandlers) List(c echo.Context) error {
	houses, err := h.houseService.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return serviceError(c, "list houses", err)
	}
	return c.JSON(http.StatusOK, houseList(houses))
}

func (h *HouseHandlers) ListMine(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	houses, err := h.houseService.ListMine(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "list houses", err)
	}
	return c.JSON(http.StatusOK, houseList(houses))
}

func (h *HouseHandlers) UpdateStatus(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "house ID")
	if err != nil {
		return err
	}

	var req houseStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	house, err := h.houseService.UpdateStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return serviceError(c, "update house status", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "House status updated",
		"house":   house,
	})
}

func (h *HouseHandlers) AssignCaretaker(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "house ID")
	if err != nil {
		return err
	}

	var req caretakerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	caretakerID, err := common.ValidateUUID(req.CaretakerID, "caretaker ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	house, err := h.houseService.AssignCaretaker(c.Request().Context(), actor, id, caretakerID)
	if err != nil {
		return serviceError(c, "assign caretaker", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Caretaker assigned",
		"house":   house,
	})
}

func (h *HouseHandlers) Delete(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "house ID")
	if err != nil {
		return err
	}

	if err := h.houseService.Delete(c.Request().Context(), actor, id); err != nil {
		return serviceError(c, "delete house", err)
	}
	return message(c, http.StatusOK, "House deleted successfully")
}
