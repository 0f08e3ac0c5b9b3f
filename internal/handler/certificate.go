package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/query"
	"portfolio-backend/internal/repository"
)

var certificateWhitelist = query.Whitelist{
	Fields: []query.Field{
		{Param: "featured", Column: "featured", Bool: true},
		{Param: "category", Column: "category", Enum: models.CertificateCategories},
		{Param: "level", Column: "level", Enum: models.CertificateLevels},
	},
	SortColumns: map[string]string{
		"priority":  "priority",
		"issueDate": "issue_date",
		"title":     "title",
		"createdAt": "created_at",
	},
	DefaultSort: "-priority,-issueDate",
}

type CertificateHandler struct {
	certificates repository.CertificateRepository
	logger       *zap.Logger
}

func NewCertificateHandler(certificates repository.CertificateRepository, logger *zap.Logger) *CertificateHandler {
	return &CertificateHandler{certificates: certificates, logger: logger}
}

type CertificateRequest struct {
	Title         string                  `json:"title" binding:"required,max=100"`
	Issuer        string                  `json:"issuer" binding:"required,max=100"`
	Description   string                  `json:"description" binding:"max=500"`
	IssueDate     time.Time               `json:"issueDate" binding:"required"`
	ExpiryDate    *time.Time              `json:"expiryDate"`
	CredentialID  string                  `json:"credentialId"`
	CredentialURL string                  `json:"credentialUrl"`
	Skills        []string                `json:"skills"`
	Category      string                  `json:"category" binding:"required,oneof=technical professional academic language other"`
	Level         string                  `json:"level" binding:"omitempty,oneof=beginner intermediate advanced expert"`
	Featured      bool                    `json:"featured"`
	Priority      int                     `json:"priority" binding:"min=0,max=10"`
	IsValid       *bool                   `json:"isValid"`
	Image         models.CertificateImage `json:"image"`
	File          models.CertificateFile  `json:"file"`
}

func (r *CertificateRequest) toModel() *models.Certificate {
	level := r.Level
	if level == "" {
		level = "intermediate"
	}
	isValid := true
	if r.IsValid != nil {
		isValid = *r.IsValid
	}
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	return &models.Certificate{
		Title:         r.Title,
		Issuer:        r.Issuer,
		Description:   r.Description,
		IssueDate:     r.IssueDate,
		ExpiryDate:    r.ExpiryDate,
		CredentialID:  r.CredentialID,
		CredentialURL: r.CredentialURL,
		Skills:        skills,
		Category:      r.Category,
		Level:         level,
		Featured:      r.Featured,
		Priority:      r.Priority,
		IsValid:       isValid,
		Image:         r.Image,
		File:          r.File,
	}
}

// List serves valid certificates only.
func (h *CertificateHandler) List(c *gin.Context) {
	f := query.Build(c.Request.URL.Query(), certificateWhitelist)
	f.Where("is_valid", true)

	certs, total, err := h.certificates.List(f)
	if err != nil {
		h.logger.Error("List certificates failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting certificates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"certificates": certs,
			"pagination":   f.Paginate(total),
		},
	})
}

func (h *CertificateHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid certificate id"})
		return
	}

	cert, err := h.certificates.GetValidByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Certificate not found"})
			return
		}
		h.logger.Error("Get certificate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting certificate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"certificate": cert}})
}

func (h *CertificateHandler) Create(c *gin.Context) {
	var req CertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation error", "errors": bindingErrors(err)})
		return
	}

	cert := req.toModel()
	if err := h.certificates.Create(cert); err != nil {
		h.logger.Error("Create certificate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error creating certificate"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Certificate created successfully",
		"data":    gin.H{"certificate": cert},
	})
}

func (h *CertificateHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid certificate id"})
		return
	}

	var req CertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation error", "errors": bindingErrors(err)})
		return
	}

	cert := req.toModel()
	cert.ID = id
	if err := h.certificates.Update(cert); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Certificate not found"})
			return
		}
		h.logger.Error("Update certificate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error updating certificate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Certificate updated successfully",
		"data":    gin.H{"certificate": cert},
	})
}

func (h *CertificateHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid certificate id"})
		return
	}

	if err := h.certificates.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Certificate not found"})
			return
		}
		h.logger.Error("Delete certificate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error deleting certificate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Certificate deleted successfully"})
}
