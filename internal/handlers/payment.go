package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/govjobs-backend/internal/services"
)

// PaymentHandler handles UPI payment confirmation
type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Verify records the transaction id the applicant reports after paying
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	var req services.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	payment, err := h.payments.Verify(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment verified successfully",
		"payment": payment,
	})
}

// Instructions returns where and how much to pay for an application
func (h *PaymentHandler) Instructions(c *fiber.Ctx) error {
	ins, err := h.payments.Instructions(c.UserContext(), c.Params("applicationId"))
	if err != nil {
		return err
	}
	return c.JSON(ins)
}
