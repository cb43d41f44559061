package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "moneyminder/internal/errors"
	"moneyminder/internal/logger"
	"moneyminder/internal/models"
	"moneyminder/internal/pagination"
	"moneyminder/internal/period"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db      *gorm.DB
	budgets BudgetServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, budgets BudgetServicer) TransactionServicer {
	return &transactionService{db: db, budgets: budgets}
}

// CreateTransaction validates and stores a new transaction, then evaluates
// the affected (category, month) budget. Newly crossed tiers are returned so
// the caller can surface them. A failed evaluation never fails the create:
// the transaction is already durable, and alerting retries on the next
// evaluation of the same key.
func (s *transactionService) CreateTransaction(
	userID uint,
	amount int64,
	category string,
	date time.Time,
	paymentMethod string,
	note string,
) (*models.Transaction, []models.Tier, error) {
	if amount <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a positive number of cents")
	}
	if category == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if date.IsZero() {
		date = time.Now()
	}
	if paymentMethod == "" {
		paymentMethod = "other"
	}

	transaction := &models.Transaction{
		UserID:        userID,
		Amount:        amount,
		Category:      category,
		Date:          date,
		PaymentMethod: paymentMethod,
		Note:          note,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	_, fired, err := s.budgets.EvaluateAndNotify(userID, category, period.Of(date))
	if err != nil {
		logger.Get().Warnw("budget evaluation failed after transaction create",
			"user_id", userID, "category", category, "transaction_id", transaction.TransactionID,
			"error", err)
		return transaction, nil, nil
	}

	return transaction, fired, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions, most recent first.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Category != "" {
		base = base.Where("category = ?", filter.Category)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("date DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByPublicID returns a transaction by its public identifier if
// it belongs to the user.
func (s *transactionService) GetTransactionByPublicID(userID uint, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Where("transaction_id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}
