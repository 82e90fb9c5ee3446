package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/services"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FinanceHandler holds the finance service.
type FinanceHandler struct {
	financeService services.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(fs services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: fs}
}

// GetFeesAndSalary returns membership revenue and salary outgo for one month.
func (h *FinanceHandler) GetFeesAndSalary(c *gin.Context) {
	monthKey := c.Query("month")
	if monthKey == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Query parameter 'month' is required (YYYY-MM).", ""))
		return
	}

	report, err := h.financeService.GetFeesAndSalary(c.Request.Context(), monthKey)
	if err != nil {
		utils.LogError(err, "GetFeesAndSalary: Error from financeService.GetFeesAndSalary")
		if errors.Is(err, services.ErrFinanceValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute fees and salary.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetYearlyProfit returns per-month profit (revenue minus salary) for a year.
func (h *FinanceHandler) GetYearlyProfit(c *gin.Context) {
	year := c.Query("year")
	if year == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Query parameter 'year' is required (YYYY).", ""))
		return
	}

	profit, err := h.financeService.GetYearlyProfit(c.Request.Context(), year)
	if err != nil {
		utils.LogError(err, "GetYearlyProfit: Error from financeService.GetYearlyProfit")
		if errors.Is(err, services.ErrFinanceValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute yearly profit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, profit)
}
