package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/repository"
)

const (
	maxImageSize       = 15 << 20
	maxResumeSize      = 10 << 20
	maxCertificateSize = 20 << 20
)

var resumeMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
	"image/gif":       {},
}

type UploadHandler struct {
	resumes repository.ResumeRepository
	dir     string
	logger  *zap.Logger
}

func NewUploadHandler(resumes repository.ResumeRepository, dir string, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{resumes: resumes, dir: dir, logger: logger}
}

// storedName builds a unique on-disk name; the client-supplied name only
// contributes its extension.
func storedName(prefix, originalName string) string {
	return prefix + "-" + uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No image file provided"})
		return
	}
	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Image exceeds the 15MB size limit"})
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Only image files are allowed"})
		return
	}

	filename := storedName("image", file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.dir, filename)); err != nil {
		h.logger.Error("Save image failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      "Image uploaded successfully",
		"imageUrl":     "/uploads/" + filename,
		"filename":     filename,
		"originalName": file.Filename,
		"size":         file.Size,
	})
}

func (h *UploadHandler) DeleteImage(c *gin.Context) {
	// Base strips any path components a malicious client may have injected.
	filename := filepath.Base(c.Param("filename"))

	path := filepath.Join(h.dir, filename)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Image not found"})
			return
		}
		h.logger.Error("Delete image failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Image deleted successfully"})
}

func (h *UploadHandler) UploadResume(c *gin.Context) {
	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No file uploaded"})
		return
	}
	if file.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Resume exceeds the 10MB size limit"})
		return
	}
	if _, ok := resumeMimeTypes[file.Header.Get("Content-Type")]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Only PDF or image files are allowed for resumes"})
		return
	}

	filename := storedName("resume", file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.dir, filename)); err != nil {
		h.logger.Error("Save resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to upload resume"})
		return
	}

	resume := &models.Resume{
		Filename:     filename,
		OriginalName: file.Filename,
		URL:          "/uploads/" + filename,
		Title:        c.PostForm("title"),
		Designation:  c.PostForm("designation"),
	}
	if resume.Title == "" {
		resume.Title = file.Filename
	}
	if ac, ok := middleware.GetAuthContext(c); ok {
		resume.UploadedBy = &ac.AdminID
	}

	if err := h.resumes.Create(resume); err != nil {
		h.logger.Error("Create resume record failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create resume"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": resume})
}

func (h *UploadHandler) ListResumes(c *gin.Context) {
	resumes, err := h.resumes.List()
	if err != nil {
		h.logger.Error("List resumes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to list resumes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": resumes})
}

// DeleteResume removes both the database record and the file on disk.
func (h *UploadHandler) DeleteResume(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid resume id"})
		return
	}

	resume, err := h.resumes.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Resume not found"})
			return
		}
		h.logger.Error("Load resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete resume"})
		return
	}

	if err := os.Remove(filepath.Join(h.dir, filepath.Base(resume.Filename))); err != nil && !os.IsNotExist(err) {
		h.logger.Warn("Failed to remove resume file", zap.String("filename", resume.Filename), zap.Error(err))
	}

	if err := h.resumes.Delete(id); err != nil {
		h.logger.Error("Delete resume record failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete resume"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Resume deleted"})
}

// UploadCertificate stores a credential file and returns its metadata for
// attachment to a certificate record; size is the only restriction.
func (h *UploadHandler) UploadCertificate(c *gin.Context) {
	file, err := c.FormFile("certificate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No certificate file provided"})
		return
	}
	if file.Size > maxCertificateSize {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Certificate exceeds the 20MB size limit"})
		return
	}

	filename := storedName("certificate", file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.dir, filename)); err != nil {
		h.logger.Error("Save certificate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to upload certificate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Certificate file uploaded successfully",
		"file": models.CertificateFile{
			URL:          "/uploads/" + filename,
			Filename:     filename,
			OriginalName: file.Filename,
			Size:         file.Size,
			MimeType:     file.Header.Get("Content-Type"),
		},
	})
}
