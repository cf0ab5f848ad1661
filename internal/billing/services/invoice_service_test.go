package services

import (
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarciapsic/clinica-backend/internal/billing/models"
	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
)

func validRequest() models.InvoiceRequest {
	return models.InvoiceRequest{
		InvoiceNumber: "2025-001",
		InvoiceDate:   "2025-03-15",
		PatientID:     7,
		SessionIDs:    []int{1, 2},
		Concept:       "Sesiones de marzo",
	}
}

func TestValidateInvoiceRequestAccepted(t *testing.T) {
	assert.NoError(t, ValidateInvoiceRequest(validRequest()))
}

func TestValidateInvoiceRequestFieldFailures(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*models.InvoiceRequest)
		field   string
	}{
		{"missing number", func(r *models.InvoiceRequest) { r.InvoiceNumber = "" }, "invoice_number"},
		{"empty sessions", func(r *models.InvoiceRequest) { r.SessionIDs = nil }, "session_ids"},
		{"missing patient", func(r *models.InvoiceRequest) { r.PatientID = 0 }, "patient_id"},
		{"missing concept", func(r *models.InvoiceRequest) { r.Concept = "" }, "concept"},
		{"slash date", func(r *models.InvoiceRequest) { r.InvoiceDate = "15/03/2025" }, "invoice_date"},
		{"short date", func(r *models.InvoiceRequest) { r.InvoiceDate = "2025-3-15" }, "invoice_date"},
		{"impossible date", func(r *models.InvoiceRequest) { r.InvoiceDate = "2025-13-40" }, "invoice_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := ValidateInvoiceRequest(req)
			require.Error(t, err)
			ve, ok := httpres.IsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestIsDuplicateInvoiceNumber(t *testing.T) {
	dup := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry '2025-001' for key 'invoices.invoice_number'",
	}
	assert.True(t, IsDuplicateInvoiceNumber(dup))

	otherKey := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'patients.dni'"}
	assert.False(t, IsDuplicateInvoiceNumber(otherKey))

	otherErr := &mysql.MySQLError{Number: 1366, Message: "Incorrect value"}
	assert.False(t, IsDuplicateInvoiceNumber(otherErr))

	assert.False(t, IsDuplicateInvoiceNumber(fmt.Errorf("connection reset")))
}

// Two different patients sharing a display name must stay in separate groups,
// and a patient's rows must land in one group even when another patient's rows
// sit between them in the scan order.
func TestGroupPendingSessionsSharedName(t *testing.T) {
	rows := []pendingSessionRow{
		{PatientID: 1, PatientName: "Ana García", SessionID: 10, Price: 50},
		{PatientID: 2, PatientName: "Ana García", SessionID: 11, Price: 60},
		{PatientID: 1, PatientName: "Ana García", SessionID: 12, Price: 50},
	}
	groups := groupPendingSessions(rows)
	require.Len(t, groups, 2)

	assert.Equal(t, 1, groups[0].PatientID)
	assert.Equal(t, []int{10, 12}, groups[0].SessionIDs)
	assert.Equal(t, 2, groups[0].SessionCount)
	assert.InDelta(t, 100.0, groups[0].TotalGross, 1e-9)

	assert.Equal(t, 2, groups[1].PatientID)
	assert.Equal(t, []int{11}, groups[1].SessionIDs)
	assert.Equal(t, 1, groups[1].SessionCount)
	assert.InDelta(t, 60.0, groups[1].TotalGross, 1e-9)
}

func TestGroupPendingSessionsEmpty(t *testing.T) {
	assert.Equal(t, []models.PendingInvoiceGroup{}, groupPendingSessions(nil))
}

func TestGroupPendingSessionsRoundsGross(t *testing.T) {
	groups := groupPendingSessions([]pendingSessionRow{
		{PatientID: 3, PatientName: "Luis Pérez", SessionID: 20, Price: 33.335},
		{PatientID: 3, PatientName: "Luis Pérez", SessionID: 21, Price: 33.335},
	})
	require.Len(t, groups, 1)
	assert.InDelta(t, 66.67, groups[0].TotalGross, 1e-9)
}

// Net contribution is price * percentage/100; summing per-session nets must
// agree with the aggregate within floating-point tolerance.
func TestNetAmountInvariant(t *testing.T) {
	assert.InDelta(t, 180.0, NetAmount(100, 60)+NetAmount(200, 60), 1e-6)
	assert.InDelta(t, 0.0, NetAmount(100, 0), 1e-6)
	assert.InDelta(t, 100.0, NetAmount(100, 100), 1e-6)

	prices := []float64{35.5, 60, 80.25, 45}
	pct := 70.0
	sum := 0.0
	gross := 0.0
	for _, p := range prices {
		sum += NetAmount(p, pct)
		gross += p
	}
	assert.InDelta(t, gross*pct/100, sum, 1e-6)
}
