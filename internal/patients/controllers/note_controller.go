package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/patients/models"
	"github.com/mgarciapsic/clinica-backend/internal/patients/services"
)

type NoteController struct {
	Service *services.NoteService
}

func NewNoteController(svc *services.NoteService) *NoteController {
	return &NoteController{Service: svc}
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListNotes handles GET /api/patients/:id/notes
func (nc *NoteController) ListNotes(c echo.Context) error {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	notes, err := nc.Service.ListNotes(patientID)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, notes)
}

// CreateNote handles POST /api/patients/:id/notes
func (nc *NoteController) CreateNote(c echo.Context) error {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	id, err := nc.Service.CreateNote(patientID, req.Title, req.Content)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.Created(c, echo.Map{"id": id})
}

// UpdateNote handles PUT /api/notes/:id
func (nc *NoteController) UpdateNote(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	if err := nc.Service.UpdateNote(id, req.Title, req.Content); err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, echo.Map{"updated": true})
}

// DeleteNote handles DELETE /api/notes/:id
func (nc *NoteController) DeleteNote(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	if err := nc.Service.DeleteNote(id); err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, echo.Map{"deleted": true})
}

type DocumentController struct {
	Service *services.DocumentService
}

func NewDocumentController(svc *services.DocumentService) *DocumentController {
	return &DocumentController{Service: svc}
}

// ListDocuments handles GET /api/patients/:id/documents
func (dc *DocumentController) ListDocuments(c echo.Context) error {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	docs, err := dc.Service.ListDocuments(patientID)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, docs)
}

// CreateDocument handles POST /api/patients/:id/documents
func (dc *DocumentController) CreateDocument(c echo.Context) error {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	var req models.Document
	if err := c.Bind(&req); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	req.PatientID = patientID
	id, err := dc.Service.CreateDocument(req)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.Created(c, echo.Map{"id": id})
}

// DeleteDocument handles DELETE /api/documents/:id
func (dc *DocumentController) DeleteDocument(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	if err := dc.Service.DeleteDocument(id); err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, echo.Map{"deleted": true})
}
