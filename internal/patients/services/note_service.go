package services

import (
	"database/sql"
	"time"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/patients/models"
)

type NoteService struct {
	DB *sql.DB
}

func NewNoteService(db *sql.DB) *NoteService {
	return &NoteService{DB: db}
}

// ListNotes returns a patient's clinical notes, newest first.
func (s *NoteService) ListNotes(patientID int) ([]models.ClinicalNote, error) {
	rows, err := s.DB.Query(`
		SELECT id, patient_id, title, content, created_at, updated_at
		FROM clinical_notes
		WHERE patient_id = ?
		ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.ClinicalNote{}
	for rows.Next() {
		var n models.ClinicalNote
		var updatedAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.PatientID, &n.Title, &n.Content, &n.CreatedAt, &updatedAt); err != nil {
			return nil, err
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			n.UpdatedAt = &t
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *NoteService) CreateNote(patientID int, title, content string) (int64, error) {
	if title == "" {
		return 0, httpres.NewValidationError("title", "title is required")
	}
	var exists int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM patients WHERE id = ? AND is_active = 1", patientID).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, &httpres.NotFoundError{Entity: "patient"}
	}

	res, err := s.DB.Exec(
		"INSERT INTO clinical_notes (patient_id, title, content, created_at) VALUES (?, ?, ?, ?)",
		patientID, title, content, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *NoteService) UpdateNote(id int, title, content string) error {
	if title == "" {
		return httpres.NewValidationError("title", "title is required")
	}
	res, err := s.DB.Exec(
		"UPDATE clinical_notes SET title = ?, content = ?, updated_at = ? WHERE id = ?",
		title, content, time.Now(), id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := s.DB.QueryRow("SELECT COUNT(*) FROM clinical_notes WHERE id = ?", id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return &httpres.NotFoundError{Entity: "note"}
		}
	}
	return nil
}

func (s *NoteService) DeleteNote(id int) error {
	res, err := s.DB.Exec("DELETE FROM clinical_notes WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &httpres.NotFoundError{Entity: "note"}
	}
	return nil
}
