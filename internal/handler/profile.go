package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/repository"
)

type ProfileHandler struct {
	profile repository.ProfileRepository
	logger  *zap.Logger
}

func NewProfileHandler(profile repository.ProfileRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profile: profile, logger: logger}
}

// SiteProfileRequest carries pointer fields so absent keys leave the stored
// value untouched, matching the partial-update behavior of the profile form.
type SiteProfileRequest struct {
	Name               *string `json:"name" binding:"omitempty,max=100"`
	Title              *string `json:"title" binding:"omitempty,max=200"`
	Bio                *string `json:"bio" binding:"omitempty,max=1000"`
	ContactDescription *string `json:"contactDescription" binding:"omitempty,max=500"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Phone              *string `json:"phone" binding:"omitempty,max=20"`
	Location           *string `json:"location" binding:"omitempty,max=100"`
	Website            *string `json:"website" binding:"omitempty,max=200"`
	GitHub             *string `json:"github" binding:"omitempty,max=200"`
	LinkedIn           *string `json:"linkedin" binding:"omitempty,max=200"`
	Twitter            *string `json:"twitter" binding:"omitempty,max=200"`
	Instagram          *string `json:"instagram" binding:"omitempty,max=200"`
	ProfileImage       *string `json:"profileImage"`
	Resume             *string `json:"resume"`
	IsPublic           *bool   `json:"isPublic"`
}

// Get serves the singleton public profile; when none exists yet an empty
// structure is returned so the frontend can render a blank page.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profile.Get()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"status": "success", "data": models.Profile{IsPublic: true}})
			return
		}
		h.logger.Error("Get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": profile})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req SiteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation failed", "errors": bindingErrors(err)})
		return
	}

	profile, err := h.profile.Get()
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.Error("Load profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error updating profile"})
			return
		}
		profile = &models.Profile{IsPublic: true}
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&profile.Name, req.Name)
	applyString(&profile.Title, req.Title)
	applyString(&profile.Bio, req.Bio)
	applyString(&profile.ContactDescription, req.ContactDescription)
	applyString(&profile.Email, req.Email)
	applyString(&profile.Phone, req.Phone)
	applyString(&profile.Location, req.Location)
	applyString(&profile.Website, req.Website)
	applyString(&profile.GitHub, req.GitHub)
	applyString(&profile.LinkedIn, req.LinkedIn)
	applyString(&profile.Twitter, req.Twitter)
	applyString(&profile.Instagram, req.Instagram)
	applyString(&profile.ProfileImage, req.ProfileImage)
	applyString(&profile.Resume, req.Resume)
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}

	if err := h.profile.Upsert(profile); err != nil {
		h.logger.Error("Upsert profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error updating profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile updated successfully",
		"data":    profile,
	})
}
