package models

import "time"

// Allow-lists for session fields.
var (
	SessionStatuses = []string{"scheduled", "completed", "cancelled", "no-show"}
	SessionModes    = []string{"Presencial", "Online"}
	PaymentMethods  = []string{"cash", "card", "transfer", "bizum"}
	PaymentStatuses = []string{"paid", "pending"}
)

type Session struct {
	ID            int       `json:"id"`
	PatientID     int       `json:"patient_id"`
	PatientName   string    `json:"patient_name,omitempty"`
	ClinicID      int       `json:"clinic_id"`
	ClinicName    string    `json:"clinic_name,omitempty"`
	SessionDate   time.Time `json:"session_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Mode          string    `json:"mode"`
	Status        string    `json:"status"`
	Price         float64   `json:"price"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	Invoiced      bool      `json:"invoiced"`
}

// SessionRequest is the creation payload.
type SessionRequest struct {
	PatientID     int     `json:"patient_id"`
	ClinicID      int     `json:"clinic_id"`
	SessionDate   string  `json:"session_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Mode          string  `json:"mode"`
	Status        string  `json:"status"`
	Price         float64 `json:"price"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status"`
}
