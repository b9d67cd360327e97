package entity

import (
	"strings"
	"time"
)

// ClinicalFileType classifies an uploaded file by its MIME family
type ClinicalFileType string

const (
	ClinicalFileTypeImage    ClinicalFileType = "image"
	ClinicalFileTypeDocument ClinicalFileType = "document"
)

// ClinicalFile is an append-only attachment on a patient record. URL is an
// opaque content reference handed back by the blob store.
type ClinicalFile struct {
	ID         int64            `gorm:"primaryKey" json:"id"`
	PatientID  int64            `gorm:"not null;index" json:"patient_id"`
	Name       string           `gorm:"type:varchar(255);not null" json:"name"`
	Type       ClinicalFileType `gorm:"type:varchar(20);not null" json:"type"`
	URL        string           `gorm:"type:text;not null" json:"url"`
	UploadDate string           `gorm:"type:date;not null" json:"upload_date"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (ClinicalFile) TableName() string {
	return "clinical_files"
}

// FileTypeFromMime derives the clinical file class from a MIME type:
// anything under image/ is an image, everything else is a document.
func FileTypeFromMime(mimeType string) ClinicalFileType {
	if strings.HasPrefix(mimeType, "image/") {
		return ClinicalFileTypeImage
	}
	return ClinicalFileTypeDocument
}
