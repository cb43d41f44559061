package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneyminder/internal/errors"
	"moneyminder/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest represents the request payload for creating or replacing a
// category budget. The limit is a monthly amount in cents.
type SetBudgetRequest struct {
	Category string `json:"category" binding:"required,category"`
	Limit    int64  `json:"limit" binding:"required,gt=0"`
}

// SetBudget handles creating or replacing a monthly category budget.
// @Summary     Set a budget
// @Description Create or replace the monthly spending limit for a category
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetBudgetRequest true "Budget details"
// @Success     200 {object} models.Budget "Budget set"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [put]
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.SetBudget(userID, req.Category, req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudgets handles listing all budgets for the authenticated user.
// @Summary     Get budgets
// @Description Get all category budgets for the authenticated user
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Budget "Budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.ListBudgets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetBudgetStatus handles retrieving the evaluation of every budget for a month.
// @Summary     Get budget status
// @Description Get spending status against every budget for a month (default current)
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month in YYYY-MM format"
// @Success     200 {array} services.BudgetStatus "Budget statuses"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/status [get]
func (h *BudgetHandler) GetBudgetStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := monthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statuses, err := h.budgetService.StatusForMonth(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": month.String(), "statuses": statuses})
}

// GetCategoryStatus handles evaluating a single category budget for a month.
// @Summary     Get category budget status
// @Description Get spending status against one category's budget for a month (default current)
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category path  string true  "Category"
// @Param       month    query string false "Month in YYYY-MM format"
// @Success     200 {object} services.BudgetStatus "Budget status"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{category}/status [get]
func (h *BudgetHandler) GetCategoryStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	category := c.Param("category")
	if category == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required"))
		return
	}

	month, err := monthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.budgetService.Evaluate(userID, category, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
