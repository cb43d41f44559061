package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"moneyminder/internal/period"
	"moneyminder/internal/services"
)

// --- mock spending service ---

type mockSpendingService struct {
	spendForFn        func(userID uint, category string, month period.Month) (int64, error)
	breakdownBySpanFn func(userID uint, start, end time.Time) ([]services.CategorySpend, error)
	totalBetweenFn    func(userID uint, start, end time.Time) (int64, error)
}

func (m *mockSpendingService) SpendFor(userID uint, category string, month period.Month) (int64, error) {
	if m.spendForFn != nil {
		return m.spendForFn(userID, category, month)
	}
	return 0, nil
}

func (m *mockSpendingService) BreakdownBySpan(userID uint, start, end time.Time) ([]services.CategorySpend, error) {
	if m.breakdownBySpanFn != nil {
		return m.breakdownBySpanFn(userID, start, end)
	}
	return []services.CategorySpend{}, nil
}

func (m *mockSpendingService) TotalBetween(userID uint, start, end time.Time) (int64, error) {
	if m.totalBetweenFn != nil {
		return m.totalBetweenFn(userID, start, end)
	}
	return 0, nil
}

var _ services.SpendingServicer = (*mockSpendingService)(nil)

func setupAnalyticsRouter(handler *AnalyticsHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/analytics/spending", handler.GetSpending)
	auth.GET("/analytics/spending/chart", handler.GetSpendingChart)
	return r
}

func TestAnalyticsHandler_GetSpending(t *testing.T) {
	t.Run("returns 200 with breakdown and total", func(t *testing.T) {
		svc := &mockSpendingService{
			breakdownBySpanFn: func(_ uint, _, _ time.Time) ([]services.CategorySpend, error) {
				return []services.CategorySpend{
					{Category: "rent", TotalSpent: 100000},
					{Category: "food", TotalSpent: 45000},
				}, nil
			},
			totalBetweenFn: func(_ uint, _, _ time.Time) (int64, error) {
				return 145000, nil
			},
		}
		handler := NewAnalyticsHandler(svc)
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET", "/analytics/spending", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_spent"].(float64) != 145000 {
			t.Errorf("expected total 145000, got %v", result["total_spent"])
		}
		breakdown := result["breakdown"].([]interface{})
		if len(breakdown) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(breakdown))
		}
		first := breakdown[0].(map[string]interface{})
		if first["category"] != "rent" {
			t.Errorf("expected rent first, got %v", first["category"])
		}
	})

	t.Run("passes explicit range to the service", func(t *testing.T) {
		var gotStart, gotEnd time.Time
		svc := &mockSpendingService{
			breakdownBySpanFn: func(_ uint, start, end time.Time) ([]services.CategorySpend, error) {
				gotStart, gotEnd = start, end
				return nil, nil
			},
		}
		handler := NewAnalyticsHandler(svc)
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET",
			"/analytics/spending?start_date=2025-04-01T00:00:00Z&end_date=2025-04-30T00:00:00Z", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotStart.Day() != 1 || gotEnd.Day() != 30 {
			t.Errorf("expected April 1-30 range, got %v to %v", gotStart, gotEnd)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewAnalyticsHandler(&mockSpendingService{})
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET", "/analytics/spending?start_date=last-week", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestAnalyticsHandler_GetSpendingChart(t *testing.T) {
	t.Run("returns PNG bytes", func(t *testing.T) {
		svc := &mockSpendingService{
			breakdownBySpanFn: func(_ uint, _, _ time.Time) ([]services.CategorySpend, error) {
				return []services.CategorySpend{
					{Category: "food", TotalSpent: 45000},
					{Category: "rent", TotalSpent: 100000},
				}, nil
			},
		}
		handler := NewAnalyticsHandler(svc)
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET", "/analytics/spending/chart", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("expected image/png, got %s", ct)
		}
		body := rec.Body.Bytes()
		if len(body) < 8 || string(body[1:4]) != "PNG" {
			t.Error("expected a PNG payload")
		}
	})

	t.Run("returns 400 when no data", func(t *testing.T) {
		handler := NewAnalyticsHandler(&mockSpendingService{})
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET", "/analytics/spending/chart", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
