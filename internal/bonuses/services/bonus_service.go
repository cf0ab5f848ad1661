package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/mgarciapsic/clinica-backend/internal/bonuses/models"
	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/common/query"
)

type BonusService struct {
	DB *sql.DB
}

func NewBonusService(db *sql.DB) *BonusService {
	return &BonusService{DB: db}
}

// BonusFilters declares the recognized query parameters for the bonuses
// listing.
var BonusFilters = query.ResourceFilters{
	Fields: []query.Field{
		{Param: "status", Column: "b.status", Kind: query.Exact, Allowed: models.BonusStatuses},
		{Param: "patient_id", Column: "b.patient_id", Kind: query.Numeric},
	},
}

var bonusUpdateFields = []query.UpdateField{
	{Key: "total_sessions", Column: "total_sessions"},
	{Key: "used_sessions", Column: "used_sessions"},
	{Key: "price_per_session", Column: "price_per_session"},
	{Key: "total_price", Column: "total_price"},
	{Key: "status", Column: "status"},
	{Key: "expiry_date", Column: "expiry_date"},
}

// ListBonuses returns one page of bonuses matching the filters, joined with
// the patient name.
func (s *BonusService) ListBonuses(params map[string]string) ([]models.Bonus, query.Pagination, error) {
	predicates, args, err := query.BuildFilters(BonusFilters, params)
	if err != nil {
		return nil, query.Pagination{}, err
	}

	where := ""
	if len(predicates) > 0 {
		where = " WHERE " + strings.Join(predicates, " AND ")
	}

	var total int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM bonuses b"+where, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	p := query.Paginate(params["page"], params["limit"], total)

	listQ := `
		SELECT b.id, b.patient_id, pt.name, b.total_sessions, b.used_sessions,
		       b.price_per_session, b.total_price, b.status, b.purchase_date, b.expiry_date
		FROM bonuses b
		JOIN patients pt ON b.patient_id = pt.id` + where + `
		ORDER BY b.purchase_date DESC
		LIMIT ? OFFSET ?`
	listArgs := append(append([]interface{}{}, args...), p.RecordsPerPage, p.Offset())

	rows, err := s.DB.Query(listQ, listArgs...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	bonuses := []models.Bonus{}
	for rows.Next() {
		var b models.Bonus
		var purchase, expiry sql.NullTime
		if err := rows.Scan(&b.ID, &b.PatientID, &b.PatientName, &b.TotalSessions, &b.UsedSessions,
			&b.PricePerSession, &b.TotalPrice, &b.Status, &purchase, &expiry); err != nil {
			return nil, query.Pagination{}, err
		}
		if purchase.Valid {
			t := purchase.Time
			b.PurchaseDate = &t
		}
		if expiry.Valid {
			t := expiry.Time
			b.ExpiryDate = &t
		}
		bonuses = append(bonuses, b)
	}
	return bonuses, p, rows.Err()
}

func (s *BonusService) CreateBonus(req models.BonusRequest) (int64, error) {
	if req.PatientID == 0 {
		return 0, httpres.NewValidationError("patient_id", "patient_id is required")
	}
	if req.TotalSessions < 1 {
		return 0, httpres.NewValidationError("total_sessions", "total_sessions must be at least 1")
	}
	if req.UsedSessions > req.TotalSessions {
		return 0, httpres.NewValidationError("used_sessions", "used_sessions cannot exceed total_sessions")
	}
	status := req.Status
	if status == "" {
		status = "activo"
	}
	if !containsString(models.BonusStatuses, status) {
		return 0, httpres.NewAllowedValuesError("status", models.BonusStatuses)
	}

	purchase, err := parseOptionalDate("purchase_date", req.PurchaseDate)
	if err != nil {
		return 0, err
	}
	expiry, err := parseOptionalDate("expiry_date", req.ExpiryDate)
	if err != nil {
		return 0, err
	}

	res, err := s.DB.Exec(`
		INSERT INTO bonuses
			(patient_id, total_sessions, used_sessions, price_per_session, total_price, status, purchase_date, expiry_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.PatientID, req.TotalSessions, req.UsedSessions, req.PricePerSession,
		req.TotalPrice, status, purchase, expiry,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateBonus applies a partial update; used_sessions may never exceed
// total_sessions, checking against the stored row when only one side changes.
func (s *BonusService) UpdateBonus(id int, payload map[string]interface{}) error {
	if raw, ok := payload["expiry_date"]; ok {
		v, err := query.NormalizeDate("expiry_date", raw)
		if err != nil {
			return err
		}
		payload["expiry_date"] = v
	}

	var curTotal, curUsed int
	err := s.DB.QueryRow("SELECT total_sessions, used_sessions FROM bonuses WHERE id = ?", id).Scan(&curTotal, &curUsed)
	if err == sql.ErrNoRows {
		return &httpres.NotFoundError{Entity: "bonus"}
	}
	if err != nil {
		return err
	}

	total := numberOr(payload["total_sessions"], curTotal)
	used := numberOr(payload["used_sessions"], curUsed)
	if used > total {
		return httpres.NewValidationError("used_sessions", "used_sessions cannot exceed total_sessions")
	}
	if raw, ok := payload["status"]; ok {
		status, _ := raw.(string)
		if !containsString(models.BonusStatuses, status) {
			return httpres.NewAllowedValuesError("status", models.BonusStatuses)
		}
	}

	b := query.NewUpdateBuilder(bonusUpdateFields)
	if err := b.Apply(payload); err != nil {
		return err
	}
	if b.Empty() {
		return httpres.NewValidationError("", "no updatable fields supplied")
	}

	clause, args := b.Clause()
	args = append(args, id)
	_, err = s.DB.Exec("UPDATE bonuses SET "+clause+" WHERE id = ?", args...)
	return err
}

func parseOptionalDate(field, raw string) (interface{}, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, httpres.NewValidationError(field, field+" must be a valid date (YYYY-MM-DD)")
	}
	return d, nil
}

// numberOr reads an int out of a decoded JSON value, which arrives as
// float64, falling back when absent.
func numberOr(raw interface{}, fallback int) int {
	if f, ok := raw.(float64); ok {
		return int(f)
	}
	return fallback
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
