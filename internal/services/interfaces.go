package services

import (
	"time"

	"moneyminder/internal/models"
	"moneyminder/internal/pagination"
	"moneyminder/internal/period"
)

// Mailer is the notification channel used for budget alerts. Implementations
// make exactly one delivery attempt per call and classify failures so the
// caller can decide whether re-evaluation should retry (see internal/mailer).
type Mailer interface {
	Send(to, subject, body string) error
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// CategorySpend is one row of a spending breakdown.
type CategorySpend struct {
	Category   string `json:"category"`
	TotalSpent int64  `json:"total_spent"`
}

// SpendingServicer aggregates transaction amounts. Totals are always
// recomputed from transaction rows; nothing here is cached, so results
// reflect whatever snapshot of transactions the read observes.
type SpendingServicer interface {
	SpendFor(userID uint, category string, month period.Month) (int64, error)
	BreakdownBySpan(userID uint, start, end time.Time) ([]CategorySpend, error)
	TotalBetween(userID uint, start, end time.Time) (int64, error)
}

// AlertServicer tracks which alerts have already fired for a
// (user, category, period, tier) key. RecordFired is a conditional insert:
// exactly one of any number of concurrent callers for the same key observes
// inserted=true, which makes it safe to use as a send claim.
type AlertServicer interface {
	HasFired(userID uint, category string, month period.Month, tier models.Tier) (bool, error)
	RecordFired(userID uint, category string, month period.Month, tier models.Tier) (bool, error)
	Release(userID uint, category string, month period.Month, tier models.Tier) error
}

// BudgetStatus describes spending against a category budget for one month.
// Limit is nil when no budget exists for the category, in which case the tier
// is always under and nothing is ever dispatched.
type BudgetStatus struct {
	Category   string      `json:"category"`
	Period     string      `json:"period"`
	Limit      *int64      `json:"limit"`
	Spent      int64       `json:"spent"`
	Remaining  *int64      `json:"remaining,omitempty"`
	Percentage float64     `json:"percentage"`
	Tier       models.Tier `json:"tier"`
}

// BudgetServicer defines the contract for budget-related business logic,
// including the evaluation and alerting path.
type BudgetServicer interface {
	SetBudget(userID uint, category string, limit int64) (*models.Budget, error)
	GetBudget(userID uint, category string) (*models.Budget, error)
	ListBudgets(userID uint) ([]models.Budget, error)
	Evaluate(userID uint, category string, month period.Month) (*BudgetStatus, error)
	EvaluateAndNotify(userID uint, category string, month period.Month) (*BudgetStatus, []models.Tier, error)
	StatusForMonth(userID uint, month period.Month) ([]BudgetStatus, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Category string
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID uint, amount int64, category string, date time.Time, paymentMethod, note string) (*models.Transaction, []models.Tier, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByPublicID(userID uint, transactionID string) (*models.Transaction, error)
}
