package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Transaction is a plain bookkeeping record attached to a user. The reference
// is generated server-side so external systems can quote it back to us.
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Reference     string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	UserID        string    `gorm:"type:varchar(100);index;not null" json:"user_id" validate:"required"`
	AmountInPence int64     `gorm:"not null" json:"amount_in_pence"`
	Description   string    `gorm:"type:varchar(255)" json:"description" validate:"max=255"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Transaction) Validate() error {
	v := validator.New()

	return v.Struct(t)
}

// NewTransaction assigns a fresh reference and validates the record.
func NewTransaction(userID string, amountInPence int64, description string) (*Transaction, error) {
	t := &Transaction{
		Reference:     uuid.NewString(),
		UserID:        userID,
		AmountInPence: amountInPence,
		Description:   description,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}
