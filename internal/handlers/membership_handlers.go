package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/services"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MembershipHandler holds the membership service.
type MembershipHandler struct {
	membershipService services.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(ms services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: ms}
}

// CreateMembership opens a new membership version for a client with no
// currently-open version.
func (h *MembershipHandler) CreateMembership(c *gin.Context) {
	var req services.MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateMembership: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	membership, err := h.membershipService.CreateMembership(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateMembership: Error from membershipService.CreateMembership")
		if errors.Is(err, services.ErrMembershipOpen) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Client already has an open membership.", err.Error()))
		} else if errors.Is(err, services.ErrMembershipValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, membership)
}

// UpdateMembership closes the client's open version and appends a new one.
func (h *MembershipHandler) UpdateMembership(c *gin.Context) {
	var req services.MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateMembership: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	membership, err := h.membershipService.UpdateMembership(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "UpdateMembership: Error from membershipService.UpdateMembership")
		if errors.Is(err, services.ErrNoActiveMembership) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client has no active membership to update.", err.Error()))
		} else if errors.Is(err, services.ErrMembershipValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, membership)
}

// GetCurrentMembership returns the client's open membership version.
func (h *MembershipHandler) GetCurrentMembership(c *gin.Context) {
	clientID := c.Param("clientId")
	membership, err := h.membershipService.GetCurrentMembership(c.Request.Context(), clientID)
	if err != nil {
		utils.LogError(err, "GetCurrentMembership: Error from membershipService.GetCurrentMembership")
		if errors.Is(err, services.ErrNoActiveMembership) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client has no active membership.", err.Error()))
		} else if errors.Is(err, services.ErrMembershipValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, membership)
}

// GetMembershipHistory returns every membership version for a client in
// version-key order.
func (h *MembershipHandler) GetMembershipHistory(c *gin.Context) {
	clientID := c.Param("clientId")
	history, err := h.membershipService.GetMembershipHistory(c.Request.Context(), clientID)
	if err != nil {
		utils.LogError(err, "GetMembershipHistory: Error from membershipService.GetMembershipHistory")
		if errors.Is(err, services.ErrMembershipValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch membership history.", "Internal error"))
		}
		return
	}
	if history == nil {
		history = []models.VersionedMembership{}
	}
	c.JSON(http.StatusOK, history)
}

// GetPaymentHistory returns the client's payment history entries.
func (h *MembershipHandler) GetPaymentHistory(c *gin.Context) {
	clientID := c.Param("clientId")
	payments, err := h.membershipService.GetPaymentHistory(c.Request.Context(), clientID)
	if err != nil {
		utils.LogError(err, "GetPaymentHistory: Error from membershipService.GetPaymentHistory")
		if errors.Is(err, services.ErrMembershipValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payment history.", "Internal error"))
		}
		return
	}
	if payments == nil {
		payments = []models.PaymentHistoryEntry{}
	}
	c.JSON(http.StatusOK, payments)
}
