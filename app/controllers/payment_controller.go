package controllers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quidpay/quidpay/internal/pkg/payments"
	"github.com/quidpay/quidpay/internal/pkg/usercontext"
)

const paymentRequestTimeout = 20 * time.Second

// PaymentController exposes the payment-intent lifecycle: initiation by an
// authenticated user and reconciliation via the processor's webhook.
type PaymentController struct {
	svc *payments.Service
}

func NewPaymentController(svc *payments.Service) *PaymentController {
	return &PaymentController{svc: svc}
}

type initiatePaymentRequest struct {
	ProductID uint `json:"product_id"`
}

func (ctl *PaymentController) HandleInitiate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login required"})
	}

	var req initiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), paymentRequestTimeout)
	defer cancel()

	userID := strconv.FormatUint(uint64(userCtx.UserID), 10)
	result, err := ctl.svc.InitiatePayment(ctx, req.ProductID, userID)
	if err != nil {
		return initiateErrorResponse(c, err)
	}

	return c.JSON(result)
}

func initiateErrorResponse(c *fiber.Ctx, err error) error {
	var declined *payments.DeclinedError
	switch {
	case errors.Is(err, payments.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Product not found"})
	case errors.As(err, &declined):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "card_declined", "message": declined.Msg})
	case errors.Is(err, payments.ErrGateway):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "gateway_error", "message": "Payment could not be created"})
	default:
		// Transport failures and storage errors. Log the detail, return a
		// generic message so internals never reach untrusted callers.
		log.Printf("payment initiation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "An unexpected error occurred"})
	}
}

func (ctl *PaymentController) HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)

	sigHeader := c.Get("Stripe-Signature")
	if sigHeader == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing Stripe-Signature header"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), paymentRequestTimeout)
	defer cancel()

	if err := ctl.svc.HandleWebhook(ctx, rawBody, sigHeader); err != nil {
		switch {
		case errors.Is(err, payments.ErrMisconfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "misconfigured", "message": "Webhook secret not configured"})
		case errors.Is(err, payments.ErrInvalidSignature):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature", "message": "Invalid signature"})
		case errors.Is(err, payments.ErrMalformedPayload):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload", "message": "Invalid payload"})
		default:
			log.Printf("webhook processing failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Webhook processing failed"})
		}
	}

	return c.JSON(fiber.Map{"status": "success"})
}
