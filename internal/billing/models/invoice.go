package models

import "time"

type Invoice struct {
	ID            int       `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   time.Time `json:"invoice_date"`
	PatientID     int       `json:"patient_id"`
	PatientName   string    `json:"patient_name,omitempty"`
	Concept       string    `json:"concept"`
	SessionIDs    []int     `json:"session_ids"`
	Total         float64   `json:"total"`
}

// InvoiceRequest is the creation payload. SessionIDs must be non-empty; the
// listed sessions are marked invoiced together with the insert.
type InvoiceRequest struct {
	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"`
	PatientID     int    `json:"patient_id"`
	SessionIDs    []int  `json:"session_ids"`
	Concept       string `json:"concept"`
}

// InvoiceKPIs is the billing card set for GET /api/invoices/kpis.
type InvoiceKPIs struct {
	FiltersApplied          KPIFilters        `json:"filters_applied"`
	TotalInvoicesIssued     int               `json:"card1_total_invoices_issued"`
	TotalGrossHistoric      float64           `json:"card2_total_gross_historic"`
	TotalGrossFiltered      float64           `json:"card3_total_gross_filtered"`
	TotalNetFiltered        float64           `json:"card4_total_net_filtered"`
	TotalNetByClinic        []ClinicBreakdown `json:"card5_total_net_by_clinic"`
}

type KPIFilters struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// ClinicBreakdown is one clinic's session count, gross and net for the
// target month, sorted descending by net.
type ClinicBreakdown struct {
	ClinicID     int     `json:"clinic_id"`
	ClinicName   string  `json:"clinic_name"`
	SessionCount int     `json:"session_count"`
	Gross        float64 `json:"gross"`
	Net          float64 `json:"net"`
}

// PendingInvoiceGroup is a patient's accumulated non-invoiced sessions for
// the target month, candidate for bulk invoice generation.
type PendingInvoiceGroup struct {
	PatientID    int     `json:"patient_id"`
	PatientName  string  `json:"patient_name"`
	SessionIDs   []int   `json:"session_ids"`
	SessionCount int     `json:"session_count"`
	TotalGross   float64 `json:"total_gross"`
}
