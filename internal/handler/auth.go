package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/service"
)

type AuthHandler struct {
	auth   service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=20"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// adminSummary is the serialized identity; the password hash never appears.
func adminSummary(admin *models.Admin) gin.H {
	return gin.H{
		"id":        admin.ID,
		"username":  admin.Username,
		"email":     admin.Email,
		"role":      admin.Role,
		"lastLogin": admin.LastLogin,
		"createdAt": admin.CreatedAt,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Please provide username and password",
		})
		return
	}

	token, admin, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid credentials"})
		case errors.Is(err, service.ErrAccountDeactivated):
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Account is deactivated"})
		default:
			h.logger.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error during login"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"token": token,
			"admin": adminSummary(admin),
		},
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	ac, _ := middleware.GetAuthContext(c)

	admin, err := h.auth.GetProfile(ac.AdminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Admin not found"})
			return
		}
		h.logger.Error("Get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"admin": adminSummary(admin)},
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	ac, _ := middleware.GetAuthContext(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid profile payload"})
		return
	}

	admin, err := h.auth.UpdateProfile(ac.AdminID, req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Admin not found"})
		case errors.Is(err, service.ErrInvalidUsername),
			errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		default:
			h.logger.Error("Update profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error updating profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile updated successfully",
		"data":    gin.H{"admin": adminSummary(admin)},
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ac, _ := middleware.GetAuthContext(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Please provide current and new password",
		})
		return
	}

	if err := h.auth.ChangePassword(ac.AdminID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Current password is incorrect"})
		case errors.Is(err, service.ErrAdminNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Admin not found"})
		default:
			h.logger.Error("Change password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error changing password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Password changed successfully",
	})
}

// Verify confirms the bearer token: reaching this handler means the auth
// middleware already accepted it.
func (h *AuthHandler) Verify(c *gin.Context) {
	ac, _ := middleware.GetAuthContext(c)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Token is valid",
		"data": gin.H{
			"admin": gin.H{
				"id":       ac.AdminID,
				"username": ac.Username,
				"role":     ac.Role,
			},
		},
	})
}
