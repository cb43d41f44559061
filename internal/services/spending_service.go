package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "moneyminder/internal/errors"
	"moneyminder/internal/models"
	"moneyminder/internal/period"
)

// spendingService computes spend aggregates from transaction rows.
type spendingService struct {
	db *gorm.DB
}

// NewSpendingService creates a new SpendingServicer.
func NewSpendingService(db *gorm.DB) SpendingServicer {
	return &spendingService{db: db}
}

// SpendFor returns the total spent by the user in the category during the
// given month. No matching transactions is zero, not an error.
func (s *spendingService) SpendFor(userID uint, category string, month period.Month) (int64, error) {
	if category == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if month.IsZero() {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "month is required")
	}

	start, end := month.Bounds()

	var total int64
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category = ? AND date >= ? AND date < ?", userID, category, start, end).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Amounts are validated positive on write, so a negative sum means the
	// stored data is corrupt. Surface it as a defect, never as a valid total.
	if total < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvariantViolation,
			fmt.Errorf("negative spend total %d for user %d, category %q, month %s", total, userID, category, month))
	}

	return total, nil
}

// BreakdownBySpan returns per-category totals for transactions dated within
// [start, end], sorted by total descending, ties broken by category name.
func (s *spendingService) BreakdownBySpan(userID uint, start, end time.Time) ([]CategorySpend, error) {
	if end.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not be before start date")
	}

	var rows []CategorySpend
	err := s.db.Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total_spent").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("category").
		Order("total_spent DESC, category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if rows == nil {
		rows = []CategorySpend{}
	}
	return rows, nil
}

// TotalBetween returns the overall spend for the user in [start, end].
func (s *spendingService) TotalBetween(userID uint, start, end time.Time) (int64, error) {
	if end.Before(start) {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not be before start date")
	}

	var total int64
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
