package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/query"
	"portfolio-backend/internal/repository"
)

var projectWhitelist = query.Whitelist{
	Fields: []query.Field{
		{Param: "featured", Column: "featured", Bool: true},
		{Param: "category", Column: "category", Enum: models.ProjectCategories},
		{Param: "status", Column: "status", Enum: models.ProjectStatuses},
	},
	SortColumns: map[string]string{
		"priority":  "priority",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"title":     "title",
		"startDate": "start_date",
	},
	DefaultSort: "-priority,-createdAt",
}

var adminProjectWhitelist = query.Whitelist{
	SortColumns: projectWhitelist.SortColumns,
	DefaultSort: "-createdAt",
}

type ProjectHandler struct {
	projects repository.ProjectRepository
	logger   *zap.Logger
}

func NewProjectHandler(projects repository.ProjectRepository, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

type ProjectRequest struct {
	Title            string               `json:"title" binding:"required,max=100"`
	Description      string               `json:"description" binding:"required,max=1000"`
	ShortDescription string               `json:"shortDescription" binding:"required,max=200"`
	Technologies     []string             `json:"technologies" binding:"required,min=1"`
	Category         string               `json:"category" binding:"required,oneof=web mobile desktop other"`
	Status           string               `json:"status" binding:"omitempty,oneof=completed in-progress planned"`
	Featured         bool                 `json:"featured"`
	Priority         int                  `json:"priority" binding:"min=0,max=10"`
	Links            models.ProjectLinks  `json:"links"`
	Images           models.ProjectImages `json:"images"`
	StartDate        *time.Time           `json:"startDate"`
	EndDate          *time.Time           `json:"endDate"`
	Client           string               `json:"client"`
	TeamSize         int                  `json:"teamSize" binding:"omitempty,min=1"`
	IsPublic         *bool                `json:"isPublic"`
}

func (r *ProjectRequest) toModel() *models.Project {
	status := r.Status
	if status == "" {
		status = "completed"
	}
	teamSize := r.TeamSize
	if teamSize == 0 {
		teamSize = 1
	}
	isPublic := true
	if r.IsPublic != nil {
		isPublic = *r.IsPublic
	}
	images := r.Images
	if images == nil {
		images = models.ProjectImages{}
	}
	return &models.Project{
		Title:            r.Title,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Technologies:     r.Technologies,
		Category:         r.Category,
		Status:           status,
		Featured:         r.Featured,
		Priority:         r.Priority,
		Links:            r.Links,
		Images:           images,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Client:           r.Client,
		TeamSize:         teamSize,
		IsPublic:         isPublic,
	}
}

// List serves the public project listing; only public rows are visible.
func (h *ProjectHandler) List(c *gin.Context) {
	f := query.Build(c.Request.URL.Query(), projectWhitelist)
	f.Where("is_public", true)

	projects, total, err := h.projects.List(f)
	if err != nil {
		h.logger.Error("List projects failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"projects":   projects,
			"pagination": f.Paginate(total),
		},
	})
}

// AdminList includes private projects.
func (h *ProjectHandler) AdminList(c *gin.Context) {
	f := query.Build(c.Request.URL.Query(), adminProjectWhitelist)

	projects, total, err := h.projects.List(f)
	if err != nil {
		h.logger.Error("List admin projects failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"projects":   projects,
			"pagination": f.Paginate(total),
		},
	})
}

func (h *ProjectHandler) Featured(c *gin.Context) {
	projects, err := h.projects.Featured(6)
	if err != nil {
		h.logger.Error("Featured projects failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"projects": projects},
	})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid project id"})
		return
	}

	project, err := h.projects.GetPublicByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Project not found"})
			return
		}
		h.logger.Error("Get project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"project": project}})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation error", "errors": bindingErrors(err)})
		return
	}

	project := req.toModel()
	if err := h.projects.Create(project); err != nil {
		h.logger.Error("Create project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error creating project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Project created successfully",
		"data":    gin.H{"project": project},
	})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid project id"})
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation error", "errors": bindingErrors(err)})
		return
	}

	project := req.toModel()
	project.ID = id
	if err := h.projects.Update(project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Project not found"})
			return
		}
		h.logger.Error("Update project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error updating project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project updated successfully",
		"data":    gin.H{"project": project},
	})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid project id"})
		return
	}

	if err := h.projects.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Project not found"})
			return
		}
		h.logger.Error("Delete project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error deleting project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Project deleted successfully"})
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
