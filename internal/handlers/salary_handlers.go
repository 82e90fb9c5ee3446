package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/services"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SalaryHandler holds the salary service.
type SalaryHandler struct {
	salaryService services.SalaryService
}

// NewSalaryHandler creates a new SalaryHandler.
func NewSalaryHandler(ss services.SalaryService) *SalaryHandler {
	return &SalaryHandler{salaryService: ss}
}

// AddSalaryPayment records a salary payment, accumulating into the staff
// member's monthly total.
func (h *SalaryHandler) AddSalaryPayment(c *gin.Context) {
	var req services.SalaryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "AddSalaryPayment: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.salaryService.AddOrUpdateSalary(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "AddSalaryPayment: Error from salaryService.AddOrUpdateSalary")
		if errors.Is(err, services.ErrSalaryValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record salary payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetSalary returns a staff member's salary record for a given year and
// month, zero-valued when no payment was recorded.
func (h *SalaryHandler) GetSalary(c *gin.Context) {
	staffID := c.Param("staffId")
	year := c.Param("year")
	month := c.Param("month")

	record, err := h.salaryService.GetSalary(c.Request.Context(), staffID, year, month)
	if err != nil {
		utils.LogError(err, "GetSalary: Error from salaryService.GetSalary")
		if errors.Is(err, services.ErrSalaryValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch salary.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetAllSalaries returns every recorded salary payment across all staff.
func (h *SalaryHandler) GetAllSalaries(c *gin.Context) {
	records, err := h.salaryService.GetAllSalaries(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetAllSalaries: Error from salaryService.GetAllSalaries")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch salaries.", "Internal error"))
		return
	}
	if records == nil {
		records = []models.SalaryRecord{}
	}
	c.JSON(http.StatusOK, records)
}
