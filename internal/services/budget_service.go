package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "moneyminder/internal/errors"
	"moneyminder/internal/logger"
	"moneyminder/internal/mailer"
	"moneyminder/internal/models"
	"moneyminder/internal/period"
)

// budgetService handles budget limits and the evaluation/alerting path.
type budgetService struct {
	db       *gorm.DB
	spending SpendingServicer
	alerts   AlertServicer
	mail     Mailer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, spending SpendingServicer, alerts AlertServicer, mail Mailer) BudgetServicer {
	return &budgetService{db: db, spending: spending, alerts: alerts, mail: mail}
}

// SetBudget creates or replaces the monthly limit for a category. Replacing a
// limit affects future evaluations only; alert records for periods already
// evaluated are left untouched.
func (s *budgetService) SetBudget(userID uint, category string, limit int64) (*models.Budget, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if limit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
	}

	budget := &models.Budget{UserID: userID, Category: category, Limit: limit}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"limit_amount": limit,
			"updated_at":   time.Now(),
		}),
	}).Create(budget).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Re-read: on conflict the upsert does not hydrate the existing row's ID.
	return s.GetBudget(userID, category)
}

// GetBudget returns the budget for a category, or ErrBudgetNotFound.
func (s *budgetService) GetBudget(userID uint, category string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("user_id = ? AND category = ?", userID, category).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// ListBudgets returns all budgets for the user ordered by category.
func (s *budgetService) ListBudgets(userID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Order("category ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// Evaluate computes the budget status for a category in the given month. It
// is a pure read: no notification is requested and no dedup state changes.
// A category with no budget evaluates to a nil limit and tier under.
func (s *budgetService) Evaluate(userID uint, category string, month period.Month) (*BudgetStatus, error) {
	spent, err := s.spending.SpendFor(userID, category, month)
	if err != nil {
		return nil, err
	}

	status := &BudgetStatus{
		Category: category,
		Period:   month.String(),
		Spent:    spent,
		Tier:     models.TierUnder,
	}

	budget, err := s.GetBudget(userID, category)
	if err != nil {
		if errors.Is(err, apperrors.ErrBudgetNotFound) {
			return status, nil
		}
		return nil, err
	}

	limit := budget.Limit
	remaining := limit - spent
	status.Limit = &limit
	status.Remaining = &remaining
	status.Percentage = float64(spent) / float64(limit) * 100
	status.Tier = models.TierFor(spent, limit)
	return status, nil
}

// EvaluateAndNotify evaluates the category and dispatches one notification
// per newly crossed tier, in ascending tier order. For each tier at or below
// the current one, the dedup record is claimed with a conditional insert
// before sending; losing the claim means another evaluation already notified
// (or is doing so right now). A claim whose send fails is released so a later
// evaluation retries it. Dispatch failures are logged, not returned: the
// triggering operation has already succeeded and must not be rolled back.
func (s *budgetService) EvaluateAndNotify(userID uint, category string, month period.Month) (*BudgetStatus, []models.Tier, error) {
	status, err := s.Evaluate(userID, category, month)
	if err != nil {
		return nil, nil, err
	}

	// No budget set: never notify, regardless of spend.
	if status.Limit == nil {
		return status, nil, nil
	}

	user, err := s.recipient(userID)
	if err != nil {
		return nil, nil, err
	}

	var fired []models.Tier
	for _, tier := range models.AlertTiers {
		if !status.Tier.AtLeast(tier) {
			break
		}

		claimed, err := s.alerts.RecordFired(userID, category, month, tier)
		if err != nil {
			return status, fired, err
		}
		if !claimed {
			// Already notified for this key, or a concurrent evaluation won.
			continue
		}

		subject, body := alertMessage(category, month, tier, status)
		if sendErr := s.mail.Send(user.Email, subject, body); sendErr != nil {
			if relErr := s.alerts.Release(userID, category, month, tier); relErr != nil {
				logger.Get().Errorw("failed to release unconfirmed alert claim",
					"user_id", userID, "category", category, "period", month.String(), "tier", tier,
					"error", relErr)
			}
			if mailer.IsTransient(sendErr) {
				logger.Get().Warnw("transient alert dispatch failure, will retry on next evaluation",
					"user_id", userID, "category", category, "period", month.String(), "tier", tier,
					"error", sendErr)
			} else {
				logger.Get().Errorw("permanent alert dispatch failure",
					"user_id", userID, "category", category, "period", month.String(), "tier", tier,
					"error", sendErr)
			}
			continue
		}

		fired = append(fired, tier)
	}

	return status, fired, nil
}

// StatusForMonth evaluates every budget the user has for the given month.
func (s *budgetService) StatusForMonth(userID uint, month period.Month) ([]BudgetStatus, error) {
	budgets, err := s.ListBudgets(userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		status, err := s.Evaluate(userID, budget.Category, month)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *status)
	}
	return statuses, nil
}

// recipient loads the user owning the budget; the account email is the alert
// destination.
func (s *budgetService) recipient(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// alertMessage renders the notification for a crossed tier.
func alertMessage(category string, month period.Month, tier models.Tier, status *BudgetStatus) (subject, body string) {
	subject = fmt.Sprintf("MoneyMinder Budget Alert: %s", category)

	switch tier {
	case models.TierExceeded:
		body = fmt.Sprintf(
			"Budget Alert: You've spent $%s on %s in %s, exceeding your budget of $%s.\n\n"+
				"Log in to your MoneyMinder account to review your spending and adjust your budget if needed.",
			formatAmount(status.Spent), category, month, formatAmount(*status.Limit))
	default:
		body = fmt.Sprintf(
			"Budget Alert: You've spent $%s on %s in %s, reaching %d%% of your $%s budget.\n\n"+
				"Log in to your MoneyMinder account to review your spending before the limit is reached.",
			formatAmount(status.Spent), category, month, models.WarningThresholdPct, formatAmount(*status.Limit))
	}
	return subject, body
}

// formatAmount renders minor units as a decimal string ("50000" -> "500.00").
func formatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
