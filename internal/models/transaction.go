package models

import (
	"time"

	"gorm.io/gorm"

	"moneyminder/internal/uuid"
)

// Transaction represents a single expense recorded by a user. Amounts are
// stored in minor units (cents) to avoid floating-point error. Transactions
// are immutable once created; the engine never updates or deletes them.
type Transaction struct {
	Base
	TransactionID string    `gorm:"type:uuid;uniqueIndex;not null" json:"transaction_id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Amount        int64     `gorm:"type:bigint;not null" json:"amount"`
	Category      string    `gorm:"not null;index" json:"category"`
	Date          time.Time `gorm:"not null" json:"date"`
	PaymentMethod string    `gorm:"default:other" json:"payment_method"`
	Note          string    `json:"note,omitempty"`
}

// BeforeCreate assigns a time-ordered public identifier to new transactions.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionID == "" {
		t.TransactionID = uuid.New()
	}
	return nil
}
