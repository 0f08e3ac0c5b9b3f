package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

var (
	CertificateCategories = []string{"technical", "professional", "academic", "language", "other"}
	CertificateLevels     = []string{"beginner", "intermediate", "advanced", "expert"}
)

// CertificateImage is an optional illustration, stored as jsonb.
type CertificateImage struct {
	URL string `json:"url,omitempty"`
	Alt string `json:"alt,omitempty"`
}

func (i CertificateImage) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *CertificateImage) Scan(src interface{}) error {
	return scanJSON(src, i)
}

// CertificateFile is the metadata of an attached credential file, stored as jsonb.
type CertificateFile struct {
	URL          string `json:"url,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
	MimeType     string `json:"mimeType,omitempty"`
	Size         int64  `json:"size,omitempty"`
	Filename     string `json:"filename,omitempty"`
}

func (f CertificateFile) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *CertificateFile) Scan(src interface{}) error {
	return scanJSON(src, f)
}

type Certificate struct {
	ID            int64            `db:"id" json:"id"`
	Title         string           `db:"title" json:"title"`
	Issuer        string           `db:"issuer" json:"issuer"`
	Description   string           `db:"description" json:"description"`
	IssueDate     time.Time        `db:"issue_date" json:"issueDate"`
	ExpiryDate    *time.Time       `db:"expiry_date" json:"expiryDate"`
	CredentialID  string           `db:"credential_id" json:"credentialId"`
	CredentialURL string           `db:"credential_url" json:"credentialUrl"`
	Skills        pq.StringArray   `db:"skills" json:"skills"`
	Category      string           `db:"category" json:"category"`
	Level         string           `db:"level" json:"level"`
	Featured      bool             `db:"featured" json:"featured"`
	Priority      int              `db:"priority" json:"priority"`
	IsValid       bool             `db:"is_valid" json:"isValid"`
	Image         CertificateImage `db:"image" json:"image"`
	File          CertificateFile  `db:"file" json:"file"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updatedAt"`
}

// IsExpired reports whether the certificate is past its expiry date.
func (c *Certificate) IsExpired() bool {
	if c.ExpiryDate == nil {
		return false
	}
	return time.Now().After(*c.ExpiryDate)
}
