package services

import (
	"database/sql"

	"github.com/mgarciapsic/clinica-backend/internal/clinics/models"
	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/common/query"
)

type ClinicService struct {
	DB *sql.DB
}

func NewClinicService(db *sql.DB) *ClinicService {
	return &ClinicService{DB: db}
}

var clinicUpdateFields = []query.UpdateField{
	{Key: "name", Column: "name"},
	{Key: "color", Column: "color"},
	{Key: "percentage", Column: "percentage"},
	{Key: "price_default", Column: "price_default"},
}

// ListClinics returns every clinic with its active-patient count.
func (s *ClinicService) ListClinics() ([]models.ClinicWithStats, error) {
	rows, err := s.DB.Query(`
		SELECT c.id, c.name, c.color, c.percentage, c.price_default,
		       COUNT(p.id) AS active_patients
		FROM clinics c
		LEFT JOIN patients p ON p.clinic_id = c.id AND p.is_active = 1
		GROUP BY c.id, c.name, c.color, c.percentage, c.price_default
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.ClinicWithStats{}
	for rows.Next() {
		var c models.ClinicWithStats
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Percentage, &c.PriceDefault, &c.ActivePatients); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *ClinicService) GetClinic(id int) (*models.Clinic, error) {
	var c models.Clinic
	err := s.DB.QueryRow(
		"SELECT id, name, color, percentage, price_default FROM clinics WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Color, &c.Percentage, &c.PriceDefault)
	if err == sql.ErrNoRows {
		return nil, &httpres.NotFoundError{Entity: "clinic"}
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ClinicService) CreateClinic(c models.Clinic) (int64, error) {
	if c.Name == "" {
		return 0, httpres.NewValidationError("name", "name is required")
	}
	if c.Percentage < 0 || c.Percentage > 100 {
		return 0, httpres.NewValidationError("percentage", "percentage must be between 0 and 100")
	}
	res, err := s.DB.Exec(
		"INSERT INTO clinics (name, color, percentage, price_default) VALUES (?, ?, ?, ?)",
		c.Name, c.Color, c.Percentage, c.PriceDefault,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateClinic applies a partial update over the enumerated clinic fields.
func (s *ClinicService) UpdateClinic(id int, payload map[string]interface{}) error {
	if raw, ok := payload["percentage"]; ok {
		pct, ok := raw.(float64)
		if !ok || pct < 0 || pct > 100 {
			return httpres.NewValidationError("percentage", "percentage must be between 0 and 100")
		}
	}

	b := query.NewUpdateBuilder(clinicUpdateFields)
	if err := b.Apply(payload); err != nil {
		return err
	}
	if b.Empty() {
		return httpres.NewValidationError("", "no updatable fields supplied")
	}

	clause, args := b.Clause()
	args = append(args, id)
	res, err := s.DB.Exec("UPDATE clinics SET "+clause+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := s.GetClinic(id); err != nil {
			return err
		}
	}
	return nil
}
