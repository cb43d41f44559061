package models

import "time"

// AlertRecord is the dedup state for budget alerts: one row per
// (user, category, period, tier) that has produced a notification. Rows are
// created with a conditional insert against the composite unique index, so
// concurrent evaluations of the same key agree on a single winner. A new
// period starts with no rows, which resets eligibility for every tier.
//
// Rows are deleted (not soft-deleted) when a claimed alert fails to
// dispatch, so the unique index stays authoritative for retries.
type AlertRecord struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_alert_records_key" json:"user_id"`
	Category string    `gorm:"not null;uniqueIndex:idx_alert_records_key" json:"category"`
	Period   string    `gorm:"not null;uniqueIndex:idx_alert_records_key" json:"period"`
	Tier     Tier      `gorm:"not null;uniqueIndex:idx_alert_records_key" json:"tier"`
	FiredAt  time.Time `gorm:"not null" json:"fired_at"`
}
