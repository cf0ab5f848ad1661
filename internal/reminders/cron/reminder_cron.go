package cron

import (
	"database/sql"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/mgarciapsic/clinica-backend/internal/reminders/services"
	"github.com/mgarciapsic/clinica-backend/ws"
)

// ReminderJob runs the daily pending-reminder scan and pushes the batch to
// connected dashboard clients.
type ReminderJob struct {
	Service *services.ReminderService
	Hub     *ws.Hub
}

func NewReminderJob(db *sql.DB, hub *ws.Hub) *ReminderJob {
	return &ReminderJob{
		Service: services.NewReminderService(db),
		Hub:     hub,
	}
}

// Start schedules the daily scan. The scheduler runs async; callers keep the
// returned handle for shutdown.
func (rj *ReminderJob) Start() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(1).Day().At("18:00").Do(func() {
		if err := rj.Run(); err != nil {
			log.Printf("reminder scan failed: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("Reminder cron job started")
	return scheduler
}

// Run performs one scan and broadcast.
func (rj *ReminderJob) Run() error {
	pending, err := rj.Service.GetPendingReminders(time.Now())
	if err != nil {
		return err
	}
	log.Printf("reminder scan: %d sessions %s (%s)", len(pending.Sessions), pending.Description, pending.TargetDate)
	rj.Hub.Notify("reminders_pending", pending)
	return nil
}
