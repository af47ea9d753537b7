package handlers

import (
	"net/http"

	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

type AgreementHandlers struct {
	agreementService services.AgreementService
}

func NewAgreementHandlers(agreementService services.AgreementService) *AgreementHandlers {
	return &AgreementHandlers{agreementService: agreementService}
}

func agreementList(agreements []*models.RentalAgreement) []*models.RentalAgreement {
	if agreements == nil {
		return []*models.RentalAgreement{}
	}
	return agreements
}

func (h *AgreementHandlers) Create(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	var in services.AgreementInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	agreement, err := h.agreementService.Create(c.Request().Context(), actor.ID, &in)
	if err != nil {
		return serviceError(c, "create agreement", err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Rental agreement created",
		"agreement": agreement,
	})
}

func (h *AgreementHandlers) ListForTenant(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	agreements, err := h.agreementService.ListForTenant(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "retrieve agreements", err)
	}
	return c.JSON(http.StatusOK, agreementList(agreements))
}

func (h *AgreementHandlers) ListForLandlord(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	agreements, err := h.agreementService.ListForLandlord(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "retrieve agreements", err)
	}
	return c.JSON(http.StatusOK, agreementList(agreements))
}

func (h *AgreementHandlers) ListForHouse(c echo.Context) error {
	houseID, err := pathID(c, "id", "house ID")
	if err != nil {
		return err
	}

	agreements, err := h.agreementService.ListForHouse(c.Request().Context(), houseID)
	if err != nil {
		return serviceError(c, "retrieve agreements", err)
	}
	return c.JSON(http.StatusOK, agreementList(agreements))
}

func (h *AgreementHandlers) ListAll(c echo.Context) error {
	agreements, err := h.agreementService.ListAll(c.Request().Context())
	if err != nil {
		return serviceError(c, "retrieve agreements", err)
	}
	return c.JSON(http.StatusOK, agreementList(agreements))
}

func (h *AgreementHandlers) Get(c echo.Context) error {
	id, err := pathID(c, "id", "agreement ID")
	if err != nil {
		return err
	}

	agreement, err := h.agreementService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, "retrieve agreement", err)
	}
	return c.JSON(http.StatusOK, agreement)
}

// Sign records the caller's signature; tenant and landlord sign separately.
func (h *AgreementHandlers) Sign(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "agreement ID")
	if err != nil {
		return err
	}

	agreement, err := h.agreementService.Sign(c.Request().Context(), actor, id)
	if err != nil {
		return serviceError(c, "sign agreement", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Agreement signed",
		"agreement": agreement,
	})
}

func (h *AgreementHandlers) MarkDepositPaid(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "agreement ID")
	if err != nil {
		return err
	}

	agreement, err := h.agreementService.MarkDepositPaid(c.Request().Context(), actor, id)
	if err != nil {
		return serviceError(c, "mark deposit as paid", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Deposit marked as paid",
		"agreement": agreement,
	})
}

func (h *AgreementHandlers) Update(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "agreement ID")
	if err != nil {
		return err
	}

	var in services.AgreementUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	agreement, err := h.agreementService.Update(c.Request().Context(), actor, id, &in)
	if err != nil {
		return serviceError(c, "update agreement", err)
	}
	return c.JSON(http.StatusOK, agreement)
}

func (h *AgreementHandlers) Terminate(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "agreement ID")
	if err != nil {
		return err
	}

	if err := h.agreementService.Terminate(c.Request().Context(), actor, id); err != nil {
		return serviceError(c, "terminate agreement", err)
	}
	return message(c, http.StatusOK, "Agreement terminated")
}
