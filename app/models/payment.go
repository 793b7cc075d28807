package models

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// Payment correlates a local product/user pair with a payment intent held by
// the processor. AmountInPence is a snapshot of the product price at creation
// time, not a live reference. The unique index on the external intent id is
// what keeps racing webhook deliveries from double-applying a transition.
type Payment struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	ProductID             uint      `gorm:"index;not null" json:"product_id"`
	UserID                string    `gorm:"type:varchar(100);index;not null" json:"user_id"`
	StripePaymentIntentID string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"stripe_payment_intent_id"`
	Status                string    `gorm:"type:varchar(50);index;not null;default:'pending'" json:"status"`
	AmountInPence         int64     `gorm:"not null" json:"amount_in_pence"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsTerminal reports whether the payment has reached a final status.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusSucceeded || p.Status == PaymentStatusFailed
}
