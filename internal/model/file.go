package model

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// downloadBaseURL is the public prefix for file hrefs, set once at startup
// from configuration before any file is persisted.
var downloadBaseURL = "/requests/download-file"

// SetDownloadBaseURL configures the prefix used when deriving File.Href.
func SetDownloadBaseURL(base string) {
	if base != "" {
		downloadBaseURL = base
	}
}

// File is binary content attached to exactly one request at creation time.
// The request exclusively owns its files: deleting the request deletes them
// in the same transaction. Content is never included in JSON output and is
// omitted from list queries.
type File struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OriginalFilename string    `gorm:"type:varchar(500);not null" json:"originalFilename"`
	StoredFilename   string    `gorm:"type:varchar(255);uniqueIndex" json:"storedFilename"`
	FileSize         int64     `gorm:"not null" json:"fileSize"`
	Content          []byte    `gorm:"type:bytea" json:"-"`
	UserEmail        string    `gorm:"type:varchar(255);not null" json:"userEmail"`
	CompanyID        int64     `gorm:"not null;index" json:"companyId"`
	RequestID        int64     `gorm:"not null;index" json:"-"`
	IsCompressed     bool      `gorm:"default:false" json:"isCompressed"`
	UploadedAt       time.Time `json:"uploadedAt"`
	Href             string    `gorm:"type:text" json:"href,omitempty"`
}

// BeforeCreate assigns the opaque stored filename and the upload timestamp.
func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.StoredFilename == "" {
		f.StoredFilename = uuid.New().String() + filepath.Ext(f.OriginalFilename)
	}
	if f.UploadedAt.IsZero() {
		f.UploadedAt = time.Now()
	}
	return nil
}

// AfterCreate derives the public download reference once the identifier is
// known and persists it alongside the row.
func (f *File) AfterCreate(tx *gorm.DB) error {
	if f.Href != "" {
		return nil
	}
	f.Href = BuildHref(f.ID)
	return tx.Model(f).UpdateColumn("href", f.Href).Error
}

// BuildHref returns the public download URL for a file id.
func BuildHref(id int64) string {
	return downloadBaseURL + "/" + strconv.FormatInt(id, 10)
}
