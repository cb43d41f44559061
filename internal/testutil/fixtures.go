package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneyminder/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction with the given category and
// amount (in cents), dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, category string, amount int64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, userID, category, amount, time.Now())
}

// CreateTestTransactionOn creates a transaction with an explicit date.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, userID uint, category string, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:        userID,
		Amount:        amount,
		Category:      category,
		Date:          date,
		PaymentMethod: "card",
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget with the given limit (in cents).
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, category string, limit int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Limit:    limit,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
