package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/common/query"
)

func TestSessionFiltersStatusAndClinic(t *testing.T) {
	preds, args, err := query.BuildFilters(SessionFilters, map[string]string{
		"status":    "completed",
		"clinic_id": "5",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"s.status = ?", "s.clinic_id = ?"}, preds)
	assert.Equal(t, []interface{}{"completed", 5}, args)
}

func TestSessionFiltersRejectBogusStatus(t *testing.T) {
	_, _, err := query.BuildFilters(SessionFilters, map[string]string{"status": "bogus"})
	require.Error(t, err)
	ve, ok := httpres.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Field)
	assert.Equal(t, []string{"scheduled", "completed", "cancelled", "no-show"}, ve.AllowedValues)
}

func TestSessionFiltersDatePrecedence(t *testing.T) {
	preds, args, err := query.BuildFilters(SessionFilters, map[string]string{
		"session_date": "2025-04-02",
		"fecha_desde":  "2025-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DATE(s.session_date) = ?"}, preds)
	assert.Equal(t, []interface{}{"2025-04-02"}, args)
}

func TestSessionFiltersPaymentFields(t *testing.T) {
	preds, args, err := query.BuildFilters(SessionFilters, map[string]string{
		"payment_method": "bizum",
		"payment_status": "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"s.payment_method = ?", "s.payment_status = ?"}, preds)
	assert.Equal(t, []interface{}{"bizum", "paid"}, args)
}
