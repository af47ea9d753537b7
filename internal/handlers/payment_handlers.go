package handlers

import (
	"fmt"
	"net/http"

	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

type PaymentHandlers struct {
	paymentService services.PaymentService
}

func NewPaymentHandlers(paymentService services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{paymentService: paymentService}
}

func paymentList(payments []*models.RentPayment) map[string]interface{} {
	if payments == nil {
		payments = []*models.RentPayment{}
	}
	return map[string]interface{}{"count": len(payments), "payments": payments}
}

// PayRent godoc
// @Summary  Record a rent payment against one of the caller's agreements
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    body  body  services.PayRentInput  true  "Payment"
// @Success  201  {object}  map[string]interface{}
// @Failure  400  {object}  common.ErrorResponse
// @Failure  403  {object}  common.ErrorResponse
// @Security BearerAuth
// @Router   /payments/pay-rent [post]
func (h *PaymentHandlers) PayRent(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	var in services.PayRentInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	payment, err := h.paymentService.PayRent(c.Request().Context(), actor.ID, &in)
	if err != nil {
		return serviceError(c, "process payment", err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Rent paid successfully",
		"payment": payment,
	})
}

func (h *PaymentHandlers) ListMine(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	payments, err := h.paymentService.ListMine(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "load payments", err)
	}
	return c.JSON(http.StatusOK, paymentList(payments))
}

func (h *PaymentHandlers) ListForLandlord(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	payments, err := h.paymentService.ListForLandlord(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "load landlord payments", err)
	}
	return c.JSON(http.StatusOK, paymentList(payments))
}

func (h *PaymentHandlers) ListForHouse(c echo.Context) error {
	houseID, err := pathID(c, "id", "house ID")
	if err != nil {
		return err
	}

	payments, err := h.paymentService.ListForHouse(c.Request().Context(), houseID)
	if err != nil {
		return serviceError(c, "load payments for this house", err)
	}
	return c.JSON(http.StatusOK, paymentList(payments))
}

// EarningsSummary totals the landlord's receipts per calendar month.
func (h *PaymentHandlers) EarningsSummary(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}

	summary, err := h.paymentService.EarningsSummary(c.Request().Context(), actor.ID)
	if err != nil {
		return serviceError(c, "load earnings", err)
	}
	if summary == nil {
		summary = []models.MonthlyEarnings{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"summary": summary})
}

// DownloadReceipt streams the receipt PDF of one of the caller's payments.
func (h *PaymentHandlers) DownloadReceipt(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "payment ID")
	if err != nil {
		return err
	}

	receipt, err := h.paymentService.Receipt(c.Request().Context(), actor.ID, id)
	if err != nil {
		return serviceError(c, "generate receipt", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", receipt.Name))
	return c.Blob(http.StatusOK, "application/pdf", receipt.Content)
}

func (h *PaymentHandlers) ReceiptURL(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "payment ID")
	if err != nil {
		return err
	}

	url, err := h.paymentService.ReceiptURL(c.Request().Context(), actor.ID, id)
	if err != nil {
		return serviceError(c, "generate receipt link", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func (h *PaymentHandlers) EmailReceipt(c echo.Context) error {
	actor, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "payment ID")
	if err != nil {
		return err
	}

	if err := h.paymentService.EmailReceipt(c.Request().Context(), actor.ID, id); err != nil {
		return serviceError(c, "send receipt email", err)
	}
	return message(c, http.StatusOK, "Receipt sent successfully")
}
