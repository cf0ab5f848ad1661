package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mgarciapsic/clinica-backend/internal/billing/models"
	"github.com/mgarciapsic/clinica-backend/internal/billing/services"
	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/ws"
)

type InvoiceController struct {
	Service *services.InvoiceService
	Hub     *ws.Hub
}

func NewInvoiceController(svc *services.InvoiceService, hub *ws.Hub) *InvoiceController {
	return &InvoiceController{Service: svc, Hub: hub}
}

// monthYear reads the optional month/year query parameters; zero means
// "default to current".
func monthYear(c echo.Context) (int, int, error) {
	var month, year int
	if s := c.QueryParam("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, httpres.NewValidationError("month", "month must be a number")
		}
		month = v
	}
	if s := c.QueryParam("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, httpres.NewValidationError("year", "year must be a number")
		}
		year = v
	}
	return month, year, nil
}

// GetKPIs handles GET /api/invoices/kpis
func (ic *InvoiceController) GetKPIs(c echo.Context) error {
	month, year, err := monthYear(c)
	if err != nil {
		return httpres.Error(c, err)
	}
	kpis, err := ic.Service.GetInvoiceKPIs(month, year)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, kpis)
}

// GetPending handles GET /api/invoices/pending
func (ic *InvoiceController) GetPending(c echo.Context) error {
	month, year, err := monthYear(c)
	if err != nil {
		return httpres.Error(c, err)
	}
	groups, err := ic.Service.GetPendingInvoices(month, year)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, groups)
}

// ListInvoices handles GET /api/invoices
func (ic *InvoiceController) ListInvoices(c echo.Context) error {
	params := map[string]string{}
	for k, vs := range c.QueryParams() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	invoices, pagination, err := ic.Service.ListInvoices(params)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, echo.Map{
		"invoices":   invoices,
		"pagination": pagination,
	})
}

// GetInvoice handles GET /api/invoices/:id
func (ic *InvoiceController) GetInvoice(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	invoice, err := ic.Service.GetInvoice(id)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, invoice)
}

// CreateInvoice handles POST /api/invoices
func (ic *InvoiceController) CreateInvoice(c echo.Context) error {
	var req models.InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	id, err := ic.Service.CreateInvoice(req)
	if err != nil {
		return httpres.Error(c, err)
	}
	invoice, err := ic.Service.GetInvoice(int(id))
	if err != nil {
		return httpres.Error(c, err)
	}
	ic.Hub.Notify("invoice_created", echo.Map{"id": id})
	return httpres.Created(c, invoice)
}
