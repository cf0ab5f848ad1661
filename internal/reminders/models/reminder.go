package models

// PendingReminders is the batch of sessions due a reminder, together with
// the resolved target date and how to phrase it.
type PendingReminders struct {
	TargetDate  string            `json:"target_date"`
	Description string            `json:"description"`
	Sessions    []ReminderSession `json:"sessions"`
}

type ReminderSession struct {
	ID           int    `json:"id"`
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	ClinicName   string `json:"clinic_name"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	Mode         string `json:"mode"`
}
