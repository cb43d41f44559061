package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneyminder/internal/errors"
	"moneyminder/internal/models"
	"moneyminder/internal/pagination"
	"moneyminder/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn        func(userID uint, amount int64, category string, date time.Time, paymentMethod, note string) (*models.Transaction, []models.Tier, error)
	getUserTransactionsFn      func(userID uint, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByPublicIDFn func(userID uint, transactionID string) (*models.Transaction, error)
}

func (m *mockTransactionService) CreateTransaction(userID uint, amount int64, category string, date time.Time, paymentMethod, note string) (*models.Transaction, []models.Tier, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, amount, category, date, paymentMethod, note)
	}
	return &models.Transaction{}, nil, nil
}

func (m *mockTransactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByPublicID(userID uint, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByPublicIDFn != nil {
		return m.getTransactionByPublicIDFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.GetTransactions)
	auth.GET("/transactions/:id", handler.GetTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 with crossed alerts", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(userID uint, amount int64, category string, _ time.Time, _, _ string) (*models.Transaction, []models.Tier, error) {
				return &models.Transaction{
					Base:          models.Base{ID: 1},
					TransactionID: "0189aabb-0000-7000-8000-000000000000",
					UserID:        userID,
					Amount:        amount,
					Category:      category,
				}, []models.Tier{models.TierWarning}, nil
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":40000,"category":"food","payment_method":"card","note":"groceries"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		txn := result["transaction"].(map[string]interface{})
		if txn["category"] != "food" {
			t.Errorf("expected food, got %v", txn["category"])
		}
		alerts := result["alerts"].([]interface{})
		if len(alerts) != 1 || alerts[0] != "warning" {
			t.Errorf("expected [warning], got %v", alerts)
		}
	})

	t.Run("returns empty alerts when none crossed", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions", `{"amount":100,"category":"food"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["alerts"] != nil {
			if alerts := result["alerts"].([]interface{}); len(alerts) != 0 {
				t.Errorf("expected no alerts, got %v", alerts)
			}
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions", `{"category":"food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on negative amount", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions", `{"amount":-100,"category":"food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad payment method", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":100,"category":"food","payment_method":"barter"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("returns 200 with page", func(t *testing.T) {
		svc := &mockTransactionService{
			getUserTransactionsFn: func(_ uint, page pagination.PageRequest, _ services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				page.Defaults()
				resp := pagination.NewPageResponse([]models.Transaction{
					{Base: models.Base{ID: 1}, Category: "food", Amount: 1200},
				}, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?page=1&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Errorf("expected 1 transaction, got %d", len(data))
		}
	})

	t.Run("passes filters to the service", func(t *testing.T) {
		var got services.TransactionFilter
		svc := &mockTransactionService{
			getUserTransactionsFn: func(_ uint, _ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				got = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET",
			"/transactions?category=food&start_date=2025-04-01T00:00:00Z&end_date=2025-04-30T00:00:00Z", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Category != "food" {
			t.Errorf("expected category filter food, got %q", got.Category)
		}
		if got.FromDate == nil || got.ToDate == nil {
			t.Error("expected date filters to be set")
		}
	})

	t.Run("returns 400 on malformed start_date", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?start_date=yesterday", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			getTransactionByPublicIDFn: func(_ uint, transactionID string) (*models.Transaction, error) {
				return &models.Transaction{
					Base:          models.Base{ID: 1},
					TransactionID: transactionID,
					Category:      "food",
				}, nil
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions/0189aabb-0000-7000-8000-000000000000", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockTransactionService{
			getTransactionByPublicIDFn: func(_ uint, _ string) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions/unknown", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}
