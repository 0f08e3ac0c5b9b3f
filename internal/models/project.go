package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ProjectCategories and ProjectStatuses are the allowed enum values.
var (
	ProjectCategories = []string{"web", "mobile", "desktop", "other"}
	ProjectStatuses   = []string{"completed", "in-progress", "planned"}
)

// ProjectLinks holds the optional external links of a project, stored as jsonb.
type ProjectLinks struct {
	GitHub string `json:"github,omitempty"`
	Live   string `json:"live,omitempty"`
	Demo   string `json:"demo,omitempty"`
}

func (l ProjectLinks) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *ProjectLinks) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// ProjectImage is one gallery entry of a project.
type ProjectImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary"`
}

// ProjectImages is stored as a jsonb array.
type ProjectImages []ProjectImage

func (p ProjectImages) Value() (driver.Value, error) {
	if p == nil {
		p = ProjectImages{}
	}
	return json.Marshal(p)
}

func (p *ProjectImages) Scan(src interface{}) error {
	return scanJSON(src, p)
}

type Project struct {
	ID               int64          `db:"id" json:"id"`
	Title            string         `db:"title" json:"title"`
	Description      string         `db:"description" json:"description"`
	ShortDescription string         `db:"short_description" json:"shortDescription"`
	Technologies     pq.StringArray `db:"technologies" json:"technologies"`
	Category         string         `db:"category" json:"category"`
	Status           string         `db:"status" json:"status"`
	Featured         bool           `db:"featured" json:"featured"`
	Priority         int            `db:"priority" json:"priority"`
	Links            ProjectLinks   `db:"links" json:"links"`
	Images           ProjectImages  `db:"images" json:"images"`
	StartDate        *time.Time     `db:"start_date" json:"startDate"`
	EndDate          *time.Time     `db:"end_date" json:"endDate"`
	Client           string         `db:"client" json:"client"`
	TeamSize         int            `db:"team_size" json:"teamSize"`
	IsPublic         bool           `db:"is_public" json:"isPublic"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updatedAt"`
}

// scanJSON decodes a jsonb column into dst, accepting the raw representations
// lib/pq may hand back.
func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
