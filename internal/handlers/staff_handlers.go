package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/services"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff and attendance services.
type StaffHandler struct {
	staffService      services.StaffService
	attendanceService services.AttendanceService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService, as services.AttendanceService) *StaffHandler {
	return &StaffHandler{staffService: ss, attendanceService: as}
}

// CreateStaff handles the creation of a new staff member.
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateStaff: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateStaff: Error from staffService.CreateStaff")
		if errors.Is(err, services.ErrStaffValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// GetStaff handles fetching all staff members.
func (h *StaffHandler) GetStaff(c *gin.Context) {
	staff, err := h.staffService.GetStaff(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetStaff: Error from staffService.GetStaff")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff.", "Internal error"))
		return
	}
	if staff == nil {
		staff = []models.StaffMember{}
	}
	c.JSON(http.StatusOK, staff)
}

// GetStaffByID handles fetching a single staff member.
func (h *StaffHandler) GetStaffByID(c *gin.Context) {
	staffID := c.Param("id")
	staff, err := h.staffService.GetStaffByID(c.Request.Context(), staffID)
	if err != nil {
		utils.LogError(err, "GetStaffByID: Error from staffService.GetStaffByID")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaff handles partial updates of a staff member.
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	staffID := c.Param("id")
	var req services.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateStaff: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), staffID, req)
	if err != nil {
		utils.LogError(err, "UpdateStaff: Error from staffService.UpdateStaff")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else if errors.Is(err, services.ErrStaffValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// DeleteStaff handles removing a staff document.
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	staffID := c.Param("id")
	if err := h.staffService.DeleteStaff(c.Request.Context(), staffID); err != nil {
		utils.LogError(err, "DeleteStaff: Error from staffService.DeleteStaff")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}

// GetAbsentStaff handles listing staff with no attendance entry today.
func (h *StaffHandler) GetAbsentStaff(c *gin.Context) {
	staff, err := h.staffService.GetAbsentStaffToday(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetAbsentStaff: Error from staffService.GetAbsentStaffToday")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch absent staff.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, staff)
}

// MarkStaffAttendance handles marking a staff member present today.
func (h *StaffHandler) MarkStaffAttendance(c *gin.Context) {
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "MarkStaffAttendance: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.attendanceService.MarkAttendance(c.Request.Context(), repositories.KindStaff, req.PersonID); err != nil {
		utils.LogError(err, "MarkStaffAttendance: Error from attendanceService.MarkAttendance")
		if errors.Is(err, services.ErrAttendanceValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark attendance.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance marked", "date": h.attendanceService.Today()})
}
