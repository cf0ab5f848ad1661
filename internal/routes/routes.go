package routes

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	billingControllers "github.com/mgarciapsic/clinica-backend/internal/billing/controllers"
	billingServices "github.com/mgarciapsic/clinica-backend/internal/billing/services"
	bonusControllers "github.com/mgarciapsic/clinica-backend/internal/bonuses/controllers"
	bonusServices "github.com/mgarciapsic/clinica-backend/internal/bonuses/services"
	clinicControllers "github.com/mgarciapsic/clinica-backend/internal/clinics/controllers"
	clinicServices "github.com/mgarciapsic/clinica-backend/internal/clinics/services"
	"github.com/mgarciapsic/clinica-backend/internal/common/middlewares"
	dashboardControllers "github.com/mgarciapsic/clinica-backend/internal/dashboard/controllers"
	dashboardServices "github.com/mgarciapsic/clinica-backend/internal/dashboard/services"
	patientControllers "github.com/mgarciapsic/clinica-backend/internal/patients/controllers"
	patientServices "github.com/mgarciapsic/clinica-backend/internal/patients/services"
	reminderControllers "github.com/mgarciapsic/clinica-backend/internal/reminders/controllers"
	reminderServices "github.com/mgarciapsic/clinica-backend/internal/reminders/services"
	sessionControllers "github.com/mgarciapsic/clinica-backend/internal/sessions/controllers"
	sessionServices "github.com/mgarciapsic/clinica-backend/internal/sessions/services"
	userControllers "github.com/mgarciapsic/clinica-backend/internal/users/controllers"
	userServices "github.com/mgarciapsic/clinica-backend/internal/users/services"
	"github.com/mgarciapsic/clinica-backend/ws"
)

// Init wires every service, controller and route onto the echo instance.
func Init(e *echo.Echo, db *sql.DB, hub *ws.Hub) {
	patientService := patientServices.NewPatientService(db)
	noteService := patientServices.NewNoteService(db)
	documentService := patientServices.NewDocumentService(db)
	clinicService := clinicServices.NewClinicService(db)
	sessionService := sessionServices.NewSessionService(db)
	bonusService := bonusServices.NewBonusService(db)
	invoiceService := billingServices.NewInvoiceService(db)
	dashboardService := dashboardServices.NewDashboardService(db)
	reminderService := reminderServices.NewReminderService(db)
	userService := userServices.NewUserService(db)

	patientController := patientControllers.NewPatientController(patientService)
	noteController := patientControllers.NewNoteController(noteService)
	documentController := patientControllers.NewDocumentController(documentService)
	clinicController := clinicControllers.NewClinicController(clinicService)
	sessionController := sessionControllers.NewSessionController(sessionService, hub)
	bonusController := bonusControllers.NewBonusController(bonusService)
	invoiceController := billingControllers.NewInvoiceController(invoiceService, hub)
	dashboardController := dashboardControllers.NewDashboardController(dashboardService)
	reminderController := reminderControllers.NewReminderController(reminderService)
	userController := userControllers.NewUserController(userService)

	api := e.Group("/api")
	jwt := middlewares.JWTMiddleware()

	auth := api.Group("/auth")
	auth.POST("/login", userController.Login) // no JWT

	api.GET("/users/:id", userController.GetUser, jwt)

	patients := api.Group("/patients", jwt)
	patients.GET("", patientController.ListPatients)
	patients.GET("/:id", patientController.GetPatient)
	patients.POST("", patientController.CreatePatient)
	patients.PUT("/:id", patientController.UpdatePatient)
	patients.DELETE("/:id", patientController.DeletePatient)
	patients.GET("/:id/notes", noteController.ListNotes)
	patients.POST("/:id/notes", noteController.CreateNote)
	patients.GET("/:id/documents", documentController.ListDocuments)
	patients.POST("/:id/documents", documentController.CreateDocument)

	api.PUT("/notes/:id", noteController.UpdateNote, jwt)
	api.DELETE("/notes/:id", noteController.DeleteNote, jwt)
	api.DELETE("/documents/:id", documentController.DeleteDocument, jwt)

	clinics := api.Group("/clinics", jwt)
	clinics.GET("", clinicController.ListClinics)
	clinics.GET("/:id", clinicController.GetClinic)
	clinics.POST("", clinicController.CreateClinic)
	clinics.PUT("/:id", clinicController.UpdateClinic)

	sessions := api.Group("/sessions", jwt)
	sessions.GET("", sessionController.ListSessions)
	sessions.GET("/:id", sessionController.GetSession)
	sessions.POST("", sessionController.CreateSession)
	sessions.PUT("/:id", sessionController.UpdateSession)
	sessions.DELETE("/:id", sessionController.DeleteSession)

	bonuses := api.Group("/bonuses", jwt)
	bonuses.GET("", bonusController.ListBonuses)
	bonuses.POST("", bonusController.CreateBonus)
	bonuses.PUT("/:id", bonusController.UpdateBonus)

	invoices := api.Group("/invoices", jwt)
	invoices.GET("/kpis", invoiceController.GetKPIs)
	invoices.GET("/pending", invoiceController.GetPending)
	invoices.GET("", invoiceController.ListInvoices)
	invoices.GET("/:id", invoiceController.GetInvoice)
	invoices.POST("", invoiceController.CreateInvoice)

	api.GET("/dashboard/kpis", dashboardController.GetKPIs, jwt)
	api.GET("/reminders/pending", reminderController.GetPending, jwt)

	api.GET("/ws", ws.ServeWS(hub))
}
