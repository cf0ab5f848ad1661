package services

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/mgarciapsic/clinica-backend/internal/billing/models"
	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/common/query"
)

type InvoiceService struct {
	DB *sql.DB
}

func NewInvoiceService(db *sql.DB) *InvoiceService {
	return &InvoiceService{DB: db}
}

// InvoiceFilters declares the recognized query parameters for the invoices
// listing.
var InvoiceFilters = query.ResourceFilters{
	Fields: []query.Field{
		{Param: "patient_id", Column: "i.patient_id", Kind: query.Numeric},
		{Param: "invoice_number", Column: "i.invoice_number", Kind: query.Partial},
	},
	DateColumn: "i.invoice_date",
}

var invoiceDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// GetInvoiceKPIs computes the billing card set for the target month/year,
// defaulting to the current month when either is zero. Currency figures are
// summed unrounded and rounded to 2 decimals only here, at the output
// boundary.
func (s *InvoiceService) GetInvoiceKPIs(month, year int) (models.InvoiceKPIs, error) {
	now := time.Now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	kpis := models.InvoiceKPIs{
		FiltersApplied:   models.KPIFilters{Month: month, Year: year},
		TotalNetByClinic: []models.ClinicBreakdown{},
	}

	if err := s.DB.QueryRow("SELECT COUNT(*) FROM invoices").Scan(&kpis.TotalInvoicesIssued); err != nil {
		return kpis, err
	}

	var grossHistoric float64
	err := s.DB.QueryRow(`
		SELECT COALESCE(SUM(s.price), 0)
		FROM sessions s
		JOIN clinics c ON s.clinic_id = c.id
		WHERE s.is_active = 1`).Scan(&grossHistoric)
	if err != nil {
		return kpis, err
	}
	kpis.TotalGrossHistoric = round2(grossHistoric)

	var grossFiltered, netFiltered float64
	err = s.DB.QueryRow(`
		SELECT COALESCE(SUM(s.price), 0),
		       COALESCE(SUM(s.price * (c.percentage / 100)), 0)
		FROM sessions s
		JOIN clinics c ON s.clinic_id = c.id
		WHERE s.is_active = 1
		  AND MONTH(s.session_date) = ? AND YEAR(s.session_date) = ?`,
		month, year).Scan(&grossFiltered, &netFiltered)
	if err != nil {
		return kpis, err
	}
	kpis.TotalGrossFiltered = round2(grossFiltered)
	kpis.TotalNetFiltered = round2(netFiltered)

	rows, err := s.DB.Query(`
		SELECT c.id, c.name, COUNT(s.id),
		       COALESCE(SUM(s.price), 0),
		       COALESCE(SUM(s.price * (c.percentage / 100)), 0) AS net
		FROM clinics c
		JOIN sessions s ON s.clinic_id = c.id AND s.is_active = 1
			AND MONTH(s.session_date) = ? AND YEAR(s.session_date) = ?
		GROUP BY c.id, c.name
		ORDER BY net DESC`,
		month, year)
	if err != nil {
		return kpis, err
	}
	defer rows.Close()

	for rows.Next() {
		var b models.ClinicBreakdown
		if err := rows.Scan(&b.ClinicID, &b.ClinicName, &b.SessionCount, &b.Gross, &b.Net); err != nil {
			return kpis, err
		}
		b.Gross = round2(b.Gross)
		b.Net = round2(b.Net)
		kpis.TotalNetByClinic = append(kpis.TotalNetByClinic, b)
	}
	return kpis, rows.Err()
}

// GetPendingInvoices groups the target month's active, non-invoiced sessions
// by patient. Rows come back as a flat join ordered by patient name and
// session date and are grouped in memory.
func (s *InvoiceService) GetPendingInvoices(month, year int) ([]models.PendingInvoiceGroup, error) {
	now := time.Now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	rows, err := s.DB.Query(`
		SELECT p.id, p.name, s.id, s.price
		FROM sessions s
		JOIN patients p ON s.patient_id = p.id
		WHERE s.is_active = 1 AND p.is_active = 1
		  AND s.invoiced = 0
		  AND MONTH(s.session_date) = ? AND YEAR(s.session_date) = ?
		ORDER BY p.name ASC, p.id ASC, s.session_date ASC, s.id ASC`,
		month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := []pendingSessionRow{}
	for rows.Next() {
		var r pendingSessionRow
		if err := rows.Scan(&r.PatientID, &r.PatientName, &r.SessionID, &r.Price); err != nil {
			return nil, err
		}
		pending = append(pending, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupPendingSessions(pending), nil
}

type pendingSessionRow struct {
	PatientID   int
	PatientName string
	SessionID   int
	Price       float64
}

// groupPendingSessions folds the flat join into per-patient groups. Grouping
// is keyed on patient id, not row adjacency, so two patients sharing a name
// never merge or fragment.
func groupPendingSessions(rows []pendingSessionRow) []models.PendingInvoiceGroup {
	groups := []models.PendingInvoiceGroup{}
	index := map[int]int{}
	for _, r := range rows {
		i, ok := index[r.PatientID]
		if !ok {
			i = len(groups)
			index[r.PatientID] = i
			groups = append(groups, models.PendingInvoiceGroup{
				PatientID:   r.PatientID,
				PatientName: r.PatientName,
				SessionIDs:  []int{},
			})
		}
		groups[i].SessionIDs = append(groups[i].SessionIDs, r.SessionID)
		groups[i].SessionCount++
		groups[i].TotalGross += r.Price
	}
	for i := range groups {
		groups[i].TotalGross = round2(groups[i].TotalGross)
	}
	return groups
}

// ValidateInvoiceRequest performs the eager boundary validation for invoice
// creation.
func ValidateInvoiceRequest(req models.InvoiceRequest) error {
	if req.InvoiceNumber == "" {
		return httpres.NewValidationError("invoice_number", "invoice_number is required")
	}
	if !invoiceDatePattern.MatchString(req.InvoiceDate) {
		return httpres.NewValidationError("invoice_date", "invoice_date must match YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", req.InvoiceDate); err != nil {
		return httpres.NewValidationError("invoice_date", "invoice_date must be a valid date")
	}
	if req.PatientID == 0 {
		return httpres.NewValidationError("patient_id", "patient_id is required")
	}
	if len(req.SessionIDs) == 0 {
		return httpres.NewValidationError("session_ids", "session_ids must be a non-empty array")
	}
	if req.Concept == "" {
		return httpres.NewValidationError("concept", "concept is required")
	}
	return nil
}

// CreateInvoice inserts the invoice and marks its sessions invoiced in a
// single transaction; a failure at any step rolls the whole operation back.
// A duplicate invoice_number surfaces as a ConflictError.
func (s *InvoiceService) CreateInvoice(req models.InvoiceRequest) (int64, error) {
	if err := ValidateInvoiceRequest(req); err != nil {
		return 0, err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		INSERT INTO invoices (invoice_number, invoice_date, patient_id, concept, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		req.InvoiceNumber, req.InvoiceDate, req.PatientID, req.Concept, time.Now(),
	)
	if err != nil {
		tx.Rollback()
		if IsDuplicateInvoiceNumber(err) {
			return 0, &httpres.ConflictError{Message: "duplicate invoice number"}
		}
		return 0, err
	}
	invoiceID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(req.SessionIDs)), ", ")
	args := make([]interface{}, 0, len(req.SessionIDs)+2)
	args = append(args, invoiceID, req.PatientID)
	for _, id := range req.SessionIDs {
		args = append(args, id)
	}
	upd, err := tx.Exec(`
		UPDATE sessions SET invoiced = 1, invoice_id = ?
		WHERE patient_id = ? AND invoiced = 0 AND is_active = 1 AND id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	affected, err := upd.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	// Every listed session must still be open for invoicing; anything less
	// means a stale or foreign id and the whole operation is refused.
	if affected != int64(len(req.SessionIDs)) {
		tx.Rollback()
		return 0, &httpres.ConflictError{Message: "one or more sessions are already invoiced or do not belong to the patient"}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return invoiceID, nil
}

// ListInvoices returns one page of invoices matching the filters.
func (s *InvoiceService) ListInvoices(params map[string]string) ([]models.Invoice, query.Pagination, error) {
	predicates, args, err := query.BuildFilters(InvoiceFilters, params)
	if err != nil {
		return nil, query.Pagination{}, err
	}

	where := ""
	if len(predicates) > 0 {
		where = " WHERE " + strings.Join(predicates, " AND ")
	}

	var total int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM invoices i"+where, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	p := query.Paginate(params["page"], params["limit"], total)

	listQ := `
		SELECT i.id, i.invoice_number, i.invoice_date, i.patient_id, pt.name, i.concept
		FROM invoices i
		JOIN patients pt ON i.patient_id = pt.id` + where + `
		ORDER BY i.invoice_date DESC, i.id DESC
		LIMIT ? OFFSET ?`
	listArgs := append(append([]interface{}{}, args...), p.RecordsPerPage, p.Offset())

	rows, err := s.DB.Query(listQ, listArgs...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.PatientID, &inv.PatientName, &inv.Concept); err != nil {
			return nil, query.Pagination{}, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, p, rows.Err()
}

// GetInvoice returns one invoice with its session ids and total.
func (s *InvoiceService) GetInvoice(id int) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.DB.QueryRow(`
		SELECT i.id, i.invoice_number, i.invoice_date, i.patient_id, pt.name, i.concept
		FROM invoices i
		JOIN patients pt ON i.patient_id = pt.id
		WHERE i.id = ?`, id,
	).Scan(&inv.ID, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.PatientID, &inv.PatientName, &inv.Concept)
	if err == sql.ErrNoRows {
		return nil, &httpres.NotFoundError{Entity: "invoice"}
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(`
		SELECT s.id, s.price
		FROM sessions s
		WHERE s.invoice_id = ?
		ORDER BY s.session_date ASC, s.id ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inv.SessionIDs = []int{}
	for rows.Next() {
		var sessionID int
		var price float64
		if err := rows.Scan(&sessionID, &price); err != nil {
			return nil, err
		}
		inv.SessionIDs = append(inv.SessionIDs, sessionID)
		inv.Total += price
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	inv.Total = round2(inv.Total)
	return &inv, nil
}

// IsDuplicateInvoiceNumber reports whether the datastore error is the
// unique-key violation on invoices.invoice_number.
func IsDuplicateInvoiceNumber(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062 && strings.Contains(mysqlErr.Message, "invoice_number")
	}
	return false
}

// NetAmount is a clinic's net contribution for one session price.
func NetAmount(price, percentage float64) float64 {
	return price * (percentage / 100)
}
