package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "moneyminder/internal/errors"
	"moneyminder/internal/models"
	"moneyminder/internal/period"
)

// alertService is the dedup store for budget alerts. All state lives in the
// alert_records table; the composite unique index makes RecordFired a
// compare-and-set, so the service holds no in-process state and survives
// restarts and concurrent handlers.
type alertService struct {
	db *gorm.DB
}

// NewAlertService creates a new AlertServicer.
func NewAlertService(db *gorm.DB) AlertServicer {
	return &alertService{db: db}
}

// HasFired reports whether an alert has already been recorded for the key.
func (s *alertService) HasFired(userID uint, category string, month period.Month, tier models.Tier) (bool, error) {
	var count int64
	err := s.db.Model(&models.AlertRecord{}).
		Where("user_id = ? AND category = ? AND period = ? AND tier = ?", userID, category, month.String(), tier).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// RecordFired conditionally inserts the alert record for the key. It returns
// true only for the caller whose insert won; a second call for the same key
// is a no-op returning false, never an error.
func (s *alertService) RecordFired(userID uint, category string, month period.Month, tier models.Tier) (bool, error) {
	record := models.AlertRecord{
		UserID:   userID,
		Category: category,
		Period:   month.String(),
		Tier:     tier,
		FiredAt:  time.Now(),
	}

	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}, {Name: "period"}, {Name: "tier"}},
		DoNothing: true,
	}).Create(&record)
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}

	return result.RowsAffected == 1, nil
}

// Release removes an alert record whose send could not be confirmed, making
// the key eligible again for a later evaluation.
func (s *alertService) Release(userID uint, category string, month period.Month, tier models.Tier) error {
	err := s.db.
		Where("user_id = ? AND category = ? AND period = ? AND tier = ?", userID, category, month.String(), tier).
		Delete(&models.AlertRecord{}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
