package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"moneyminder/internal/charts"
	apperrors "moneyminder/internal/errors"
	"moneyminder/internal/services"
)

// AnalyticsHandler handles spending analytics requests.
type AnalyticsHandler struct {
	spendingService services.SpendingServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(spendingService services.SpendingServicer) *AnalyticsHandler {
	return &AnalyticsHandler{spendingService: spendingService}
}

// spendingSpan parses the optional start_date/end_date query parameters,
// defaulting to the last 30 days.
func spendingSpan(c *gin.Context) (start, end time.Time, err error) {
	end = time.Now()
	start = end.AddDate(0, 0, -30)

	if v := c.Query("start_date"); v != "" {
		start, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return start, end, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must be RFC 3339")
		}
	}
	if v := c.Query("end_date"); v != "" {
		end, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return start, end, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must be RFC 3339")
		}
	}
	return start, end, nil
}

// GetSpending handles retrieving the per-category spending breakdown.
// @Summary     Get spending breakdown
// @Description Get per-category spending totals over a date range (default last 30 days)
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Range start (RFC 3339)"
// @Param       end_date   query string false "Range end (RFC 3339)"
// @Success     200 {array} services.CategorySpend "Spending by category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/spending [get]
func (h *AnalyticsHandler) GetSpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := spendingSpan(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.spendingService.BreakdownBySpan(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.spendingService.TotalBetween(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start_date":  start,
		"end_date":    end,
		"total_spent": total,
		"breakdown":   breakdown,
	})
}

// GetSpendingChart handles rendering the spending breakdown as a PNG.
// @Summary     Get spending chart
// @Description Render per-category spending over a date range as a PNG bar chart
// @Tags        analytics
// @Accept      json
// @Produce     png
// @Security    BearerAuth
// @Param       start_date query string false "Range start (RFC 3339)"
// @Param       end_date   query string false "Range end (RFC 3339)"
// @Success     200 {file} byte "PNG image"
// @Failure     400 {object} ErrorResponse "Invalid input or no data"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/spending/chart [get]
func (h *AnalyticsHandler) GetSpendingChart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := spendingSpan(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.spendingService.BreakdownBySpan(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	title := "Spending " + start.Format("2006-01-02") + " to " + end.Format("2006-01-02")
	png, err := charts.SpendingBarChart(title, breakdown)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
