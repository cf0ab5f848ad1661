package models

import "time"

// BonusStatuses is the allow-list for the bonus status field.
var BonusStatuses = []string{"activo", "agotado", "caducado"}

// Bonus is a prepaid session package tracked by total vs used session counts.
type Bonus struct {
	ID              int        `json:"id"`
	PatientID       int        `json:"patient_id"`
	PatientName     string     `json:"patient_name,omitempty"`
	TotalSessions   int        `json:"total_sessions"`
	UsedSessions    int        `json:"used_sessions"`
	PricePerSession float64    `json:"price_per_session"`
	TotalPrice      float64    `json:"total_price"`
	Status          string     `json:"status"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	ExpiryDate      *time.Time `json:"expiry_date"`
}

// BonusRequest is the creation payload.
type BonusRequest struct {
	PatientID       int     `json:"patient_id"`
	TotalSessions   int     `json:"total_sessions"`
	UsedSessions    int     `json:"used_sessions"`
	PricePerSession float64 `json:"price_per_session"`
	TotalPrice      float64 `json:"total_price"`
	Status          string  `json:"status"`
	PurchaseDate    string  `json:"purchase_date"`
	ExpiryDate      string  `json:"expiry_date"`
}
