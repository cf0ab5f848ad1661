package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/common/query"
	"github.com/mgarciapsic/clinica-backend/internal/patients/models"
)

type PatientService struct {
	DB *sql.DB
}

func NewPatientService(db *sql.DB) *PatientService {
	return &PatientService{DB: db}
}

// PatientFilters declares the recognized query parameters for the patients
// listing. Unknown parameters are ignored.
var PatientFilters = query.ResourceFilters{
	Fields: []query.Field{
		{Param: "status", Column: "p.treatment_status", Kind: query.Exact, Allowed: models.TreatmentStatuses},
		{Param: "dni", Column: "p.dni", Kind: query.Exact},
		{Param: "gender", Column: "p.gender", Kind: query.Exact, Allowed: models.Genders},
		{Param: "clinic_id", Column: "p.clinic_id", Kind: query.Numeric},
		{Param: "name", Column: "p.name", Kind: query.Partial},
		{Param: "email", Column: "p.email", Kind: query.Partial},
		{Param: "occupation", Column: "p.occupation", Kind: query.Partial},
	},
}

var patientUpdateFields = []query.UpdateField{
	{Key: "name", Column: "name"},
	{Key: "dni", Column: "dni"},
	{Key: "email", Column: "email"},
	{Key: "phone", Column: "phone"},
	{Key: "gender", Column: "gender"},
	{Key: "birth_date", Column: "birth_date"},
	{Key: "occupation", Column: "occupation"},
	{Key: "treatment_status", Column: "treatment_status"},
	{Key: "clinic_id", Column: "clinic_id"},
}

const patientColumns = `p.id, p.name, p.dni, p.email, p.phone, p.gender, p.birth_date,
	p.occupation, p.treatment_status, p.clinic_id, c.name, p.is_active, p.created_at`

// ListPatients returns one page of active patients matching the filters,
// joined with their clinic name.
func (s *PatientService) ListPatients(params map[string]string) ([]models.Patient, query.Pagination, error) {
	predicates, args, err := query.BuildFilters(PatientFilters, params)
	if err != nil {
		return nil, query.Pagination{}, err
	}

	where := "p.is_active = 1"
	if len(predicates) > 0 {
		where += " AND " + strings.Join(predicates, " AND ")
	}

	var total int
	countQ := "SELECT COUNT(*) FROM patients p WHERE " + where
	if err := s.DB.QueryRow(countQ, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	p := query.Paginate(params["page"], params["limit"], total)

	listQ := `
		SELECT ` + patientColumns + `
		FROM patients p
		LEFT JOIN clinics c ON p.clinic_id = c.id
		WHERE ` + where + `
		ORDER BY p.name ASC
		LIMIT ? OFFSET ?`
	listArgs := append(append([]interface{}{}, args...), p.RecordsPerPage, p.Offset())

	rows, err := s.DB.Query(listQ, listArgs...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	patients := []models.Patient{}
	for rows.Next() {
		pt, err := scanPatient(rows)
		if err != nil {
			return nil, query.Pagination{}, err
		}
		patients = append(patients, pt)
	}
	return patients, p, rows.Err()
}

func (s *PatientService) GetPatient(id int) (*models.Patient, error) {
	row := s.DB.QueryRow(`
		SELECT `+patientColumns+`
		FROM patients p
		LEFT JOIN clinics c ON p.clinic_id = c.id
		WHERE p.id = ? AND p.is_active = 1`, id)

	pt, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return nil, &httpres.NotFoundError{Entity: "patient"}
	}
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

func (s *PatientService) CreatePatient(req models.PatientRequest) (int64, error) {
	if req.Name == "" {
		return 0, httpres.NewValidationError("name", "name is required")
	}
	status := req.TreatmentStatus
	if status == "" {
		status = "en curso"
	}
	if !containsString(models.TreatmentStatuses, status) {
		return 0, httpres.NewAllowedValuesError("treatment_status", models.TreatmentStatuses)
	}

	var birthDate interface{}
	if req.BirthDate != "" {
		d, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return 0, httpres.NewValidationError("birth_date", "birth_date must be a valid date (YYYY-MM-DD)")
		}
		birthDate = d
	}

	res, err := s.DB.Exec(`
		INSERT INTO patients
			(name, dni, email, phone, gender, birth_date, occupation, treatment_status, clinic_id, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		req.Name, req.DNI, req.Email, req.Phone, req.Gender, birthDate,
		req.Occupation, status, req.ClinicID, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePatient applies a partial update over the enumerated patient fields.
func (s *PatientService) UpdatePatient(id int, payload map[string]interface{}) error {
	if raw, ok := payload["treatment_status"]; ok {
		status, _ := raw.(string)
		if !containsString(models.TreatmentStatuses, status) {
			return httpres.NewAllowedValuesError("treatment_status", models.TreatmentStatuses)
		}
	}
	if raw, ok := payload["birth_date"]; ok {
		v, err := query.NormalizeDate("birth_date", raw)
		if err != nil {
			return err
		}
		payload["birth_date"] = v
	}

	b := query.NewUpdateBuilder(patientUpdateFields)
	if err := b.Apply(payload); err != nil {
		return err
	}
	if b.Empty() {
		return httpres.NewValidationError("", "no updatable fields supplied")
	}

	clause, args := b.Clause()
	args = append(args, id)
	res, err := s.DB.Exec("UPDATE patients SET "+clause+" WHERE id = ? AND is_active = 1", args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := s.GetPatient(id); err != nil {
			return err
		}
	}
	return nil
}

// DeletePatient soft-deletes a patient; the row is kept for audit/restore.
func (s *PatientService) DeletePatient(id int) error {
	res, err := s.DB.Exec("UPDATE patients SET is_active = 0 WHERE id = ? AND is_active = 1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &httpres.NotFoundError{Entity: "patient"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(r rowScanner) (models.Patient, error) {
	var pt models.Patient
	var dni, email, phone, gender, occupation sql.NullString
	var birthDate sql.NullTime
	var clinicID sql.NullInt64
	var clinicName sql.NullString

	err := r.Scan(&pt.ID, &pt.Name, &dni, &email, &phone, &gender, &birthDate,
		&occupation, &pt.TreatmentStatus, &clinicID, &clinicName, &pt.IsActive, &pt.CreatedAt)
	if err != nil {
		return pt, err
	}

	pt.DNI = dni.String
	pt.Email = email.String
	pt.Phone = phone.String
	pt.Gender = gender.String
	pt.Occupation = occupation.String
	if birthDate.Valid {
		d := birthDate.Time
		pt.BirthDate = &d
	}
	if clinicID.Valid {
		id := int(clinicID.Int64)
		pt.ClinicID = &id
	}
	if clinicName.Valid {
		n := clinicName.String
		pt.ClinicName = &n
	}
	return pt, nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
