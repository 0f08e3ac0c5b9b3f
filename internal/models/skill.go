package models

import "time"

// SkillCategories are the allowed enum values for a skill's category.
var SkillCategories = []string{"frontend", "backend", "database", "tools", "languages", "frameworks", "other"}

type Skill struct {
	ID                int64     `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Category          string    `db:"category" json:"category"`
	Proficiency       int       `db:"proficiency" json:"proficiency"`
	YearsOfExperience float64   `db:"years_of_experience" json:"yearsOfExperience"`
	Icon              string    `db:"icon" json:"icon"`
	Color             string    `db:"color" json:"color"`
	Description       string    `db:"description" json:"description"`
	Priority          int       `db:"priority" json:"priority"`
	Featured          bool      `db:"featured" json:"featured"`
	IsActive          bool      `db:"is_active" json:"isActive"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}
