package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
)

var sessionDef = ResourceFilters{
	Fields: []Field{
		{Param: "status", Column: "s.status", Kind: Exact, Allowed: []string{"scheduled", "completed", "cancelled", "no-show"}},
		{Param: "clinic_id", Column: "s.clinic_id", Kind: Numeric},
		{Param: "name", Column: "p.name", Kind: Partial},
	},
	DateColumn: "s.session_date",
	DateParam:  "session_date",
}

func TestBuildFiltersOrderAndParams(t *testing.T) {
	preds, args, err := BuildFilters(sessionDef, map[string]string{
		"status":    "completed",
		"clinic_id": "5",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"s.status = ?", "s.clinic_id = ?"}, preds)
	assert.Equal(t, []interface{}{"completed", 5}, args)
}

func TestBuildFiltersRejectsValueOutsideAllowList(t *testing.T) {
	_, _, err := BuildFilters(sessionDef, map[string]string{"status": "bogus"})
	require.Error(t, err)
	ve, ok := httpres.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Field)
	assert.Equal(t, []string{"scheduled", "completed", "cancelled", "no-show"}, ve.AllowedValues)
}

func TestBuildFiltersRejectsNonNumericID(t *testing.T) {
	_, _, err := BuildFilters(sessionDef, map[string]string{"clinic_id": "five"})
	require.Error(t, err)
	ve, ok := httpres.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "clinic_id", ve.Field)
}

func TestBuildFiltersPartialMatchWrapsValue(t *testing.T) {
	preds, args, err := BuildFilters(sessionDef, map[string]string{"name": "gar"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p.name LIKE ?"}, preds)
	assert.Equal(t, []interface{}{"%gar%"}, args)
}

func TestBuildFiltersIgnoresUnknownKeys(t *testing.T) {
	preds, args, err := BuildFilters(sessionDef, map[string]string{
		"sort_by": "whatever",
		"status":  "scheduled",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"s.status = ?"}, preds)
	assert.Equal(t, []interface{}{"scheduled"}, args)
}

func TestBuildFiltersExactDateWinsOverRange(t *testing.T) {
	preds, args, err := BuildFilters(sessionDef, map[string]string{
		"session_date": "2025-03-10",
		"fecha_desde":  "2025-03-01",
		"fecha_hasta":  "2025-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DATE(s.session_date) = ?"}, preds)
	assert.Equal(t, []interface{}{"2025-03-10"}, args)
}

func TestBuildFiltersDateRange(t *testing.T) {
	preds, args, err := BuildFilters(sessionDef, map[string]string{
		"fecha_desde": "2025-03-01",
		"fecha_hasta": "2025-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DATE(s.session_date) >= ?", "DATE(s.session_date) <= ?"}, preds)
	assert.Equal(t, []interface{}{"2025-03-01", "2025-03-31"}, args)
}

func TestBuildFiltersRejectsMalformedDate(t *testing.T) {
	_, _, err := BuildFilters(sessionDef, map[string]string{"fecha_desde": "01/03/2025"})
	require.Error(t, err)
	ve, ok := httpres.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "fecha_desde", ve.Field)
}
