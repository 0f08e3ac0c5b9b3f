package models

import "time"

// Resume is an uploaded résumé file tracked in the database; the file itself
// lives in the uploads directory.
type Resume struct {
	ID           int64     `db:"id" json:"id"`
	Filename     string    `db:"filename" json:"filename"`
	OriginalName string    `db:"original_name" json:"originalName"`
	URL          string    `db:"url" json:"url"`
	Title        string    `db:"title" json:"title"`
	Designation  string    `db:"designation" json:"designation"`
	UploadedBy   *int64    `db:"uploaded_by" json:"uploadedBy"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
