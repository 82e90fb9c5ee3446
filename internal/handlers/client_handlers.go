package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/services"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/timekey"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MarkAttendanceRequest identifies the person to mark present today.
type MarkAttendanceRequest struct {
	PersonID string `json:"personId" binding:"required"`
}

// ClientHandler holds the client and attendance services.
type ClientHandler struct {
	clientService     services.ClientService
	attendanceService services.AttendanceService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService, as services.AttendanceService) *ClientHandler {
	return &ClientHandler{clientService: cs, attendanceService: as}
}

// CreateClient handles the creation of a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateClient: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateClient: Error from clientService.CreateClient")
		if errors.Is(err, services.ErrClientValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClients handles fetching all clients, enriched with membership expiry.
func (h *ClientHandler) GetClients(c *gin.Context) {
	clients, err := h.clientService.GetClients(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetClients: Error from clientService.GetClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch clients.", "Internal error"))
		return
	}
	if clients == nil {
		clients = []models.EnrichedClient{}
	}
	c.JSON(http.StatusOK, clients)
}

// UpdateClient handles partial updates of a client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID := c.Param("id")
	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateClient: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req)
	if err != nil {
		utils.LogError(err, "UpdateClient: Error from clientService.UpdateClient")
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
		} else if errors.Is(err, services.ErrClientValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles removing a client document.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID := c.Param("id")
	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		utils.LogError(err, "DeleteClient: Error from clientService.DeleteClient")
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// GetAbsentClients handles listing clients with no attendance entry today.
func (h *ClientHandler) GetAbsentClients(c *gin.Context) {
	clients, err := h.clientService.GetAbsentClientsToday(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetAbsentClients: Error from clientService.GetAbsentClientsToday")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch absent clients.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, clients)
}

// MarkClientAttendance handles marking a client present today.
func (h *ClientHandler) MarkClientAttendance(c *gin.Context) {
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "MarkClientAttendance: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.attendanceService.MarkAttendance(c.Request.Context(), repositories.KindClients, req.PersonID); err != nil {
		utils.LogError(err, "MarkClientAttendance: Error from attendanceService.MarkAttendance")
		if errors.Is(err, services.ErrAttendanceValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark attendance.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance marked", "date": h.attendanceService.Today()})
}

// GetDailyAttendance handles the 7-day client attendance counts. startDate
// defaults to today when absent.
func (h *ClientHandler) GetDailyAttendance(c *gin.Context) {
	startDate := c.DefaultQuery("startDate", h.attendanceService.Today())

	counts, err := h.attendanceService.GetDailyCounts(c.Request.Context(), repositories.KindClients, startDate)
	if err != nil {
		utils.LogError(err, "GetDailyAttendance: Error from attendanceService.GetDailyCounts")
		if errors.Is(err, services.ErrAttendanceValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch attendance counts.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, counts)
}

// GetAllClientAttendance handles dumping the raw client attendance tree.
func (h *ClientHandler) GetAllClientAttendance(c *gin.Context) {
	all, err := h.attendanceService.GetAllAttendance(c.Request.Context(), repositories.KindClients)
	if err != nil {
		utils.LogError(err, "GetAllClientAttendance: Error from attendanceService.GetAllAttendance")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch attendance.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, all)
}

// GetVisitFrequency handles per-weekday average visit counts for a month.
// month defaults to the current month when absent.
func (h *ClientHandler) GetVisitFrequency(c *gin.Context) {
	monthKey := c.DefaultQuery("month", timekey.MonthOf(h.attendanceService.Today()))

	averages, err := h.attendanceService.GetVisitFrequency(c.Request.Context(), repositories.KindClients, monthKey)
	if err != nil {
		utils.LogError(err, "GetVisitFrequency: Error from attendanceService.GetVisitFrequency")
		if errors.Is(err, services.ErrAttendanceValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch visit frequency.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, averages)
}
