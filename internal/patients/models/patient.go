package models

import "time"

// TreatmentStatuses is the allow-list for the patient treatment_status field.
var TreatmentStatuses = []string{"en curso", "fin del tratamiento", "en pausa", "abandono", "derivación"}

// Genders accepted on registration and filtering.
var Genders = []string{"masculino", "femenino", "otro"}

type Patient struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	DNI             string     `json:"dni"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Gender          string     `json:"gender"`
	BirthDate       *time.Time `json:"birth_date"`
	Occupation      string     `json:"occupation"`
	TreatmentStatus string     `json:"treatment_status"`
	ClinicID        *int       `json:"clinic_id"`
	ClinicName      *string    `json:"clinic_name,omitempty"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
}

// PatientRequest is the creation payload.
type PatientRequest struct {
	Name            string  `json:"name"`
	DNI             string  `json:"dni"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Gender          string  `json:"gender"`
	BirthDate       string  `json:"birth_date"`
	Occupation      string  `json:"occupation"`
	TreatmentStatus string  `json:"treatment_status"`
	ClinicID        *int    `json:"clinic_id"`
}
