package models

// Clinic is a practice location. Percentage is the clinic's retained revenue
// share, used for net-revenue calculations.
type Clinic struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Color        string  `json:"color"`
	Percentage   float64 `json:"percentage"`
	PriceDefault float64 `json:"price_default"`
}

// ClinicWithStats adds the active-patient count shown in the clinics listing.
type ClinicWithStats struct {
	Clinic
	ActivePatients int `json:"active_patients"`
}
