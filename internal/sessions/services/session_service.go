package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/common/query"
	"github.com/mgarciapsic/clinica-backend/internal/sessions/models"
)

type SessionService struct {
	DB *sql.DB
}

func NewSessionService(db *sql.DB) *SessionService {
	return &SessionService{DB: db}
}

// SessionFilters declares the recognized query parameters for the sessions
// listing. An exact session_date takes precedence over the
// fecha_desde/fecha_hasta range.
var SessionFilters = query.ResourceFilters{
	Fields: []query.Field{
		{Param: "status", Column: "s.status", Kind: query.Exact, Allowed: models.SessionStatuses},
		{Param: "mode", Column: "s.mode", Kind: query.Exact, Allowed: models.SessionModes},
		{Param: "payment_method", Column: "s.payment_method", Kind: query.Exact, Allowed: models.PaymentMethods},
		{Param: "payment_status", Column: "s.payment_status", Kind: query.Exact, Allowed: models.PaymentStatuses},
		{Param: "clinic_id", Column: "s.clinic_id", Kind: query.Numeric},
		{Param: "patient_id", Column: "s.patient_id", Kind: query.Numeric},
	},
	DateColumn: "s.session_date",
	DateParam:  "session_date",
}

var sessionUpdateFields = []query.UpdateField{
	{Key: "session_date", Column: "session_date"},
	{Key: "start_time", Column: "start_time"},
	{Key: "end_time", Column: "end_time"},
	{Key: "mode", Column: "mode"},
	{Key: "status", Column: "status"},
	{Key: "price", Column: "price"},
	{Key: "payment_method", Column: "payment_method"},
	{Key: "payment_status", Column: "payment_status"},
	{Key: "clinic_id", Column: "clinic_id"},
}

// ListSessions returns one page of active sessions matching the filters,
// joined with patient and clinic names.
func (s *SessionService) ListSessions(params map[string]string) ([]models.Session, query.Pagination, error) {
	predicates, args, err := query.BuildFilters(SessionFilters, params)
	if err != nil {
		return nil, query.Pagination{}, err
	}

	where := "s.is_active = 1"
	if len(predicates) > 0 {
		where += " AND " + strings.Join(predicates, " AND ")
	}

	var total int
	countQ := "SELECT COUNT(*) FROM sessions s WHERE " + where
	if err := s.DB.QueryRow(countQ, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	p := query.Paginate(params["page"], params["limit"], total)

	listQ := `
		SELECT s.id, s.patient_id, pt.name, s.clinic_id, c.name, s.session_date,
		       s.start_time, s.end_time, s.mode, s.status, s.price,
		       s.payment_method, s.payment_status, s.invoiced
		FROM sessions s
		JOIN patients pt ON s.patient_id = pt.id
		JOIN clinics c ON s.clinic_id = c.id
		WHERE ` + where + `
		ORDER BY s.session_date DESC, s.start_time DESC
		LIMIT ? OFFSET ?`
	listArgs := append(append([]interface{}{}, args...), p.RecordsPerPage, p.Offset())

	rows, err := s.DB.Query(listQ, listArgs...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		var sn models.Session
		if err := rows.Scan(&sn.ID, &sn.PatientID, &sn.PatientName, &sn.ClinicID, &sn.ClinicName,
			&sn.SessionDate, &sn.StartTime, &sn.EndTime, &sn.Mode, &sn.Status, &sn.Price,
			&sn.PaymentMethod, &sn.PaymentStatus, &sn.Invoiced); err != nil {
			return nil, query.Pagination{}, err
		}
		sessions = append(sessions, sn)
	}
	return sessions, p, rows.Err()
}

func (s *SessionService) GetSession(id int) (*models.Session, error) {
	var sn models.Session
	err := s.DB.QueryRow(`
		SELECT s.id, s.patient_id, pt.name, s.clinic_id, c.name, s.session_date,
		       s.start_time, s.end_time, s.mode, s.status, s.price,
		       s.payment_method, s.payment_status, s.invoiced
		FROM sessions s
		JOIN patients pt ON s.patient_id = pt.id
		JOIN clinics c ON s.clinic_id = c.id
		WHERE s.id = ? AND s.is_active = 1`, id,
	).Scan(&sn.ID, &sn.PatientID, &sn.PatientName, &sn.ClinicID, &sn.ClinicName,
		&sn.SessionDate, &sn.StartTime, &sn.EndTime, &sn.Mode, &sn.Status, &sn.Price,
		&sn.PaymentMethod, &sn.PaymentStatus, &sn.Invoiced)
	if err == sql.ErrNoRows {
		return nil, &httpres.NotFoundError{Entity: "session"}
	}
	if err != nil {
		return nil, err
	}
	return &sn, nil
}

func (s *SessionService) CreateSession(req models.SessionRequest) (int64, error) {
	if req.PatientID == 0 {
		return 0, httpres.NewValidationError("patient_id", "patient_id is required")
	}
	if req.ClinicID == 0 {
		return 0, httpres.NewValidationError("clinic_id", "clinic_id is required")
	}
	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		return 0, httpres.NewValidationError("session_date", "session_date must be a valid date (YYYY-MM-DD)")
	}

	status := req.Status
	if status == "" {
		status = "scheduled"
	}
	if !containsString(models.SessionStatuses, status) {
		return 0, httpres.NewAllowedValuesError("status", models.SessionStatuses)
	}
	mode := req.Mode
	if mode == "" {
		mode = "Presencial"
	}
	if !containsString(models.SessionModes, mode) {
		return 0, httpres.NewAllowedValuesError("mode", models.SessionModes)
	}
	if req.PaymentMethod != "" && !containsString(models.PaymentMethods, req.PaymentMethod) {
		return 0, httpres.NewAllowedValuesError("payment_method", models.PaymentMethods)
	}
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "pending"
	}
	if !containsString(models.PaymentStatuses, paymentStatus) {
		return 0, httpres.NewAllowedValuesError("payment_status", models.PaymentStatuses)
	}

	// Sessions default to the clinic's price when none is supplied.
	price := req.Price
	if price == 0 {
		if err := s.DB.QueryRow("SELECT price_default FROM clinics WHERE id = ?", req.ClinicID).Scan(&price); err != nil {
			if err == sql.ErrNoRows {
				return 0, &httpres.NotFoundError{Entity: "clinic"}
			}
			return 0, err
		}
	}

	res, err := s.DB.Exec(`
		INSERT INTO sessions
			(patient_id, clinic_id, session_date, start_time, end_time, mode, status,
			 price, payment_method, payment_status, invoiced, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 1, ?)`,
		req.PatientID, req.ClinicID, sessionDate, req.StartTime, req.EndTime,
		mode, status, price, req.PaymentMethod, paymentStatus, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateSession applies a partial update over the enumerated session fields.
func (s *SessionService) UpdateSession(id int, payload map[string]interface{}) error {
	for field, allowed := range map[string][]string{
		"status":         models.SessionStatuses,
		"mode":           models.SessionModes,
		"payment_method": models.PaymentMethods,
		"payment_status": models.PaymentStatuses,
	} {
		if raw, ok := payload[field]; ok {
			v, _ := raw.(string)
			if !containsString(allowed, v) {
				return httpres.NewAllowedValuesError(field, allowed)
			}
		}
	}

	b := query.NewUpdateBuilder(sessionUpdateFields)
	if err := b.Apply(payload); err != nil {
		return err
	}
	if b.Empty() {
		return httpres.NewValidationError("", "no updatable fields supplied")
	}

	clause, args := b.Clause()
	args = append(args, id)
	res, err := s.DB.Exec("UPDATE sessions SET "+clause+" WHERE id = ? AND is_active = 1", args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := s.GetSession(id); err != nil {
			return err
		}
	}
	return nil
}

// DeleteSession soft-deletes a session.
func (s *SessionService) DeleteSession(id int) error {
	res, err := s.DB.Exec("UPDATE sessions SET is_active = 0 WHERE id = ? AND is_active = 1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &httpres.NotFoundError{Entity: "session"}
	}
	return nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
