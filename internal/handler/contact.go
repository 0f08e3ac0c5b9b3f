package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/query"
	"portfolio-backend/internal/repository"
)

var contactWhitelist = query.Whitelist{
	Fields: []query.Field{
		{Param: "read", Column: "read", Bool: true},
	},
	SortColumns: map[string]string{
		"createdAt": "created_at",
		"name":      "name",
	},
	DefaultSort: "-createdAt",
}

type ContactHandler struct {
	contacts repository.ContactRepository
	logger   *zap.Logger
}

func NewContactHandler(contacts repository.ContactRepository, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,max=2000"`
}

// Create accepts a message from the public contact form.
func (h *ContactHandler) Create(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation error", "errors": bindingErrors(err)})
		return
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contacts.Create(msg); err != nil {
		h.logger.Error("Create contact message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error sending message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Your message has been sent successfully!",
	})
}

// List serves the admin inbox.
func (h *ContactHandler) List(c *gin.Context) {
	f := query.Build(c.Request.URL.Query(), contactWhitelist)

	messages, total, err := h.contacts.List(f)
	if err != nil {
		h.logger.Error("List contact messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"messages":   messages,
			"pagination": f.Paginate(total),
		},
	})
}

func (h *ContactHandler) MarkRead(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message id"})
		return
	}

	msg, err := h.contacts.MarkRead(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Message not found"})
			return
		}
		h.logger.Error("Mark message read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error updating message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": msg})
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message id"})
		return
	}

	if err := h.contacts.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Message not found"})
			return
		}
		h.logger.Error("Delete message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error deleting message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Message deleted successfully"})
}
