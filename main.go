package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mgarciapsic/clinica-backend/config"
	"github.com/mgarciapsic/clinica-backend/internal/reminders/cron"
	"github.com/mgarciapsic/clinica-backend/internal/routes"
	"github.com/mgarciapsic/clinica-backend/pkg/storage/mariadb"
	"github.com/mgarciapsic/clinica-backend/ws"
)

func main() {
	cfg := config.LoadConfig()

	db, err := mariadb.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()
	log.Println("Connected to MariaDB.")

	hub := ws.NewHub()
	go hub.Run()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	routes.Init(e, db, hub)

	reminderJob := cron.NewReminderJob(db, hub)
	scheduler := reminderJob.Start()
	defer scheduler.Stop()

	log.Printf("Server listening on port %s...", cfg.Port)
	log.Fatal(e.Start(":" + cfg.Port))
}
