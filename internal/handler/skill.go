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

var skillWhitelist = query.Whitelist{
	Fields: []query.Field{
		{Param: "featured", Column: "featured", Bool: true},
		{Param: "category", Column: "category", Enum: models.SkillCategories},
	},
	SortColumns: map[string]string{
		"priority":    "priority",
		"proficiency": "proficiency",
		"name":        "name",
		"createdAt":   "created_at",
	},
	DefaultSort: "-priority,-proficiency",
}

type SkillHandler struct {
	skills repository.SkillRepository
	logger *zap.Logger
}

func NewSkillHandler(skills repository.SkillRepository, logger *zap.Logger) *SkillHandler {
	return &SkillHandler{skills: skills, logger: logger}
}

type SkillRequest struct {
	Name              string  `json:"name" binding:"required,max=50"`
	Category          string  `json:"category" binding:"required,oneof=frontend backend database tools languages frameworks other"`
	Proficiency       int     `json:"proficiency" binding:"required,min=1,max=100"`
	YearsOfExperience float64 `json:"yearsOfExperience" binding:"min=0,max=50"`
	Icon              string  `json:"icon"`
	Color             string  `json:"color" binding:"omitempty,hexcolor"`
	Description       string  `json:"description" binding:"max=500"`
	Priority          int     `json:"priority" binding:"min=0,max=10"`
	Featured          bool    `json:"featured"`
	IsActive          *bool   `json:"isActive"`
}

func (r *SkillRequest) toModel() *models.Skill {
	color := r.Color
	if color == "" {
		color = "#3498db"
	}
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return &models.Skill{
		Name:              r.Name,
		Category:          r.Category,
		Proficiency:       r.Proficiency,
		YearsOfExperience: r.YearsOfExperience,
		Icon:              r.Icon,
		Color:             color,
		Description:       r.Description,
		Priority:          r.Priority,
		Featured:          r.Featured,
		IsActive:          isActive,
	}
}

// List serves active skills, grouped by category on top of the flat page.
func (h *SkillHandler) List(c *gin.Context) {
	f := query.Build(c.Request.URL.Query(), skillWhitelist)
	f.Where("is_active", true)

	skills, total, err := h.skills.List(f)
	if err != nil {
		h.logger.Error("List skills failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting skills"})
		return
	}

	grouped := make(map[string][]models.Skill)
	for _, skill := range skills {
		grouped[skill.Category] = append(grouped[skill.Category], skill)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"skills":        skills,
			"groupedSkills": grouped,
			"pagination":    f.Paginate(total),
		},
	})
}

func (h *SkillHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid skill id"})
		return
	}

	skill, err := h.skills.GetActiveByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Skill not found"})
			return
		}
		h.logger.Error("Get skill failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error getting skill"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"skill": skill}})
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation error", "errors": bindingErrors(err)})
		return
	}

	skill := req.toModel()
	if err := h.skills.Create(skill); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Skill with this name already exists"})
			return
		}
		h.logger.Error("Create skill failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error creating skill"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Skill created successfully",
		"data":    gin.H{"skill": skill},
	})
}

func (h *SkillHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid skill id"})
		return
	}

	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Validation error", "errors": bindingErrors(err)})
		return
	}

	skill := req.toModel()
	skill.ID = id
	if err := h.skills.Update(skill); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Skill not found"})
		case errors.Is(err, repository.ErrDuplicate):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Skill with this name already exists"})
		default:
			h.logger.Error("Update skill failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error updating skill"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Skill updated successfully",
		"data":    gin.H{"skill": skill},
	})
}

func (h *SkillHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid skill id"})
		return
	}

	if err := h.skills.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Skill not found"})
			return
		}
		h.logger.Error("Delete skill failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error deleting skill"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Skill deleted successfully"})
}
