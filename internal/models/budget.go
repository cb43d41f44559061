package models

// Budget represents a monthly spending limit for a category. Each user has at
// most one active budget per category; setting a budget again replaces the
// limit for future evaluations. Limits are stored in minor units (cents).
//
// The period granularity is fixed to the calendar month, so the budget row
// carries no period definition of its own.
type Budget struct {
	Base
	UserID   uint   `gorm:"not null;uniqueIndex:idx_budgets_user_category" json:"user_id"`
	Category string `gorm:"not null;uniqueIndex:idx_budgets_user_category" json:"category"`
	Limit    int64  `gorm:"column:limit_amount;type:bigint;not null" json:"limit"`
}
