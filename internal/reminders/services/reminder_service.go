package services

import (
	"database/sql"
	"time"

	"github.com/mgarciapsic/clinica-backend/internal/reminders/models"
)

type ReminderService struct {
	DB *sql.DB
}

func NewReminderService(db *sql.DB) *ReminderService {
	return &ReminderService{DB: db}
}

// NextReminderDate resolves which day reminders target: Monday through
// Thursday point at tomorrow; Friday, Saturday and Sunday all point at the
// next Monday, always strictly after now.
func NextReminderDate(now time.Time) time.Time {
	switch now.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		days := (8 - int(now.Weekday())) % 7
		if days == 0 {
			days = 7
		}
		return now.AddDate(0, 0, days)
	default:
		return now.AddDate(0, 0, 1)
	}
}

// ReminderDescription phrases the target for the client-facing message.
func ReminderDescription(now time.Time) string {
	switch now.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return "el próximo lunes"
	default:
		return "mañana"
	}
}

// GetPendingReminders returns the scheduled sessions on the resolved target
// date.
func (s *ReminderService) GetPendingReminders(now time.Time) (models.PendingReminders, error) {
	target := NextReminderDate(now).Format("2006-01-02")
	result := models.PendingReminders{
		TargetDate:  target,
		Description: ReminderDescription(now),
		Sessions:    []models.ReminderSession{},
	}

	rows, err := s.DB.Query(`
		SELECT s.id, pt.name, COALESCE(pt.phone, ''), c.name,
		       DATE_FORMAT(s.session_date, '%Y-%m-%d'), s.start_time, s.mode
		FROM sessions s
		JOIN patients pt ON s.patient_id = pt.id
		JOIN clinics c ON s.clinic_id = c.id
		WHERE s.is_active = 1 AND pt.is_active = 1
		  AND s.status = 'scheduled'
		  AND DATE(s.session_date) = ?
		ORDER BY s.start_time ASC`, target)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	for rows.Next() {
		var r models.ReminderSession
		if err := rows.Scan(&r.ID, &r.PatientName, &r.PatientPhone, &r.ClinicName, &r.Date, &r.StartTime, &r.Mode); err != nil {
			return result, err
		}
		result.Sessions = append(result.Sessions, r)
	}
	return result, rows.Err()
}
