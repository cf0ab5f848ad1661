package models

import (
	"fmt"
	"time"
)

// ClinicalNote is an append/update/delete record attached to a patient.
// There is no versioning.
type ClinicalNote struct {
	ID        int        `json:"id"`
	PatientID int        `json:"patient_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Document is per-patient uploaded-file metadata.
type Document struct {
	ID         int       `json:"id"`
	PatientID  int       `json:"patient_id"`
	Name       string    `json:"name"`
	FileType   string    `json:"file_type"`
	SizeBytes  int64     `json:"size_bytes"`
	Size       string    `json:"size"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// FormatSize renders a byte count in human units. Only the presentation
// boundary calls this; the stored value stays in bytes.
func FormatSize(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
