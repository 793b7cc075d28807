package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strconv"

	"gorm.io/gorm"

	"github.com/quidpay/quidpay/app/models"
	"github.com/quidpay/quidpay/app/repository"
	"github.com/quidpay/quidpay/internal/pkg/config"
)

// Service orchestrates the payment-intent lifecycle: intent creation against
// the gateway and webhook reconciliation back into local state.
type Service struct {
	repo     Repository
	products repository.ProductRepository
	gateway  Gateway
	verifier *Verifier
	currency string
}

// NewService creates a payment service from injected collaborators.
func NewService(repo Repository, products repository.ProductRepository, gateway Gateway, verifier *Verifier, currency string) *Service {
	return &Service{
		repo:     repo,
		products: products,
		gateway:  gateway,
		verifier: verifier,
		currency: currency,
	}
}

// NewServiceFromDB wires the service against GORM and the real Stripe
// gateway using the given configuration.
func NewServiceFromDB(db *gorm.DB, cfg config.StripeConfig) *Service {
	return NewService(
		NewRepository(db),
		repository.NewProductRepository(db),
		NewStripeGateway(cfg),
		NewVerifier(cfg.WebhookSecret),
		cfg.Currency,
	)
}

// IntentResult is returned to the client that initiated a payment.
type IntentResult struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
}

// InitiatePayment looks up the product, creates an intent with the
// processor, and persists a pending payment snapshotting the current price.
// The local record is only written after the external call succeeds, so a
// failed gateway call leaves no phantom pending payments behind.
func (s *Service) InitiatePayment(ctx context.Context, productID uint, userID string) (*IntentResult, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	intent, err := s.gateway.CreateIntent(ctx, product.PriceInPence, s.currency, map[string]string{
		"user_id":    userID,
		"product_id": strconv.FormatUint(uint64(productID), 10),
	})
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ProductID:             productID,
		UserID:                userID,
		StripePaymentIntentID: intent.ExternalID,
		Status:                models.PaymentStatusPending,
		AmountInPence:         product.PriceInPence,
	}
	if err := s.repo.CreatePayment(payment); err != nil {
		return nil, err
	}

	return &IntentResult{
		PaymentIntentID: intent.ExternalID,
		ClientSecret:    intent.ClientSecret,
	}, nil
}

// HandleWebhook verifies and applies one webhook delivery. A verification
// failure rejects the whole request before any state is touched. For
// signature-valid events the processor expects an acknowledgment even when we
// have nothing to do: unknown intent ids and unrecognized event types are
// logged and acknowledged, and a delivery for an already-terminal payment is
// a no-op. Safe to invoke repeatedly with identical input.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, sigHeader string) error {
	event, err := s.verifier.VerifyEvent(rawBody, sigHeader)
	if err != nil {
		return err
	}

	stored := s.recordEvent(event, rawBody)

	var applyErr error
	switch event.Kind {
	case EventIntentSucceeded:
		applyErr = s.applyTransition(event.ExternalID, models.PaymentStatusSucceeded)
	case EventIntentFailed:
		applyErr = s.applyTransition(event.ExternalID, models.PaymentStatusFailed)
	default:
		// Unrecognized event types are acknowledged untouched.
	}

	if stored != nil {
		errMsg := ""
		if applyErr != nil {
			errMsg = applyErr.Error()
		}
		if err := s.repo.MarkWebhookProcessed(stored.ID, errMsg); err != nil {
			log.Printf("failed to mark webhook event %d processed: %v", stored.ID, err)
		}
	}

	return applyErr
}

// recordEvent persists the delivery for audit. The table is advisory: a
// failure to record must not reject a signature-valid webhook, so errors are
// logged and swallowed.
func (s *Service) recordEvent(event *Event, rawBody []byte) *models.WebhookEvent {
	eventID := event.EventID
	if eventID == "" {
		sum := sha256.Sum256(rawBody)
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	_, stored, err := s.repo.CreateWebhookEventIfNotExists(&models.WebhookEvent{
		Provider:        models.ProviderStripe,
		ProviderEventID: eventID,
		EventType:       event.Type,
		Payload:         string(rawBody),
		SignatureValid:  true,
	})
	if err != nil {
		log.Printf("failed to record webhook event %s: %v", eventID, err)
		return nil
	}
	return stored
}

func (s *Service) applyTransition(externalID, newStatus string) error {
	changed, err := s.repo.MarkPaymentStatus(externalID, newStatus)
	if err != nil {
		return err
	}
	if changed {
		log.Printf("payment %s updated to %q", externalID, newStatus)
		return nil
	}

	// No pending row matched: either the payment is already terminal
	// (redundant delivery, no-op) or we never saw this intent.
	if _, err := s.repo.GetPaymentByExternalID(externalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("WARNING: received webhook for unknown payment intent %s", externalID)
			return nil
		}
		return err
	}
	return nil
}
