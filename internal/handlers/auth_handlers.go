package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/codes"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/services"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the auth service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Register handles creating a new gym admin account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Register: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	gym, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "Register: Error from authService.Register")
		if errors.Is(err, services.ErrEmailExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already registered.", err.Error()))
		} else if errors.Is(err, services.ErrAuthValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register gym.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, gym)
}

// Login handles credential verification and token issuance.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Login: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "Login: Error from authService.Login")
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid email or password.", ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to log in.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated gym account.
func (h *AuthHandler) Me(c *gin.Context) {
	gymID, exists := c.Get("gymID")
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", ""))
		return
	}

	gym, err := h.authService.Me(c.Request.Context(), gymID.(string))
	if err != nil {
		utils.LogError(err, "Me: Error from authService.Me")
		if errors.Is(err, services.ErrGymNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Gym account not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch account.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gym)
}

// ForgotPassword issues a one-time password-reset code. Always responds 200
// so the endpoint does not reveal whether an email is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "ForgotPassword: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req); err != nil {
		utils.LogError(err, "ForgotPassword: Error from authService.ForgotPassword")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process request.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a reset code has been issued."})
}

// ResetPassword consumes a reset code and sets a new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "ResetPassword: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req); err != nil {
		utils.LogError(err, "ResetPassword: Error from authService.ResetPassword")
		if errors.Is(err, codes.ErrCodeInvalid) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired reset code.", ""))
		} else if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired reset code.", ""))
		} else if errors.Is(err, services.ErrAuthValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to reset password.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
