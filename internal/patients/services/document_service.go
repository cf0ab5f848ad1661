package services

import (
	"database/sql"
	"time"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/patients/models"
)

type DocumentService struct {
	DB *sql.DB
}

func NewDocumentService(db *sql.DB) *DocumentService {
	return &DocumentService{DB: db}
}

// ListDocuments returns a patient's uploaded-file metadata, newest first.
// Sizes are formatted to human units here, at the presentation boundary.
func (s *DocumentService) ListDocuments(patientID int) ([]models.Document, error) {
	rows, err := s.DB.Query(`
		SELECT id, patient_id, name, file_type, size_bytes, url, uploaded_at
		FROM documents
		WHERE patient_id = ?
		ORDER BY uploaded_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.PatientID, &d.Name, &d.FileType, &d.SizeBytes, &d.URL, &d.UploadedAt); err != nil {
			return nil, err
		}
		d.Size = models.FormatSize(d.SizeBytes)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *DocumentService) CreateDocument(d models.Document) (int64, error) {
	if d.Name == "" {
		return 0, httpres.NewValidationError("name", "name is required")
	}
	if d.URL == "" {
		return 0, httpres.NewValidationError("url", "url is required")
	}
	var exists int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM patients WHERE id = ? AND is_active = 1", d.PatientID).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, &httpres.NotFoundError{Entity: "patient"}
	}

	res, err := s.DB.Exec(`
		INSERT INTO documents (patient_id, name, file_type, size_bytes, url, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.PatientID, d.Name, d.FileType, d.SizeBytes, d.URL, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *DocumentService) DeleteDocument(id int) error {
	res, err := s.DB.Exec("DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &httpres.NotFoundError{Entity: "document"}
	}
	return nil
}
