package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
)

var patientUpdateFields = []UpdateField{
	{Key: "name", Column: "name"},
	{Key: "email", Column: "email"},
	{Key: "treatment_status", Column: "treatment_status"},
}

func TestUpdateBuilderDeterministicOrder(t *testing.T) {
	b := NewUpdateBuilder(patientUpdateFields)
	err := b.Apply(map[string]interface{}{
		"treatment_status": "en pausa",
		"name":             "Ana",
	})
	require.NoError(t, err)

	clause, args := b.Clause()
	assert.Equal(t, "name = ?, treatment_status = ?", clause)
	assert.Equal(t, []interface{}{"Ana", "en pausa"}, args)
}

func TestUpdateBuilderRejectsUnknownKey(t *testing.T) {
	b := NewUpdateBuilder(patientUpdateFields)
	err := b.Apply(map[string]interface{}{"is_admin": true})
	require.Error(t, err)
	ve, ok := httpres.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "is_admin", ve.Field)
}

func TestUpdateBuilderEmpty(t *testing.T) {
	b := NewUpdateBuilder(patientUpdateFields)
	require.NoError(t, b.Apply(map[string]interface{}{}))
	assert.True(t, b.Empty())
}

func TestNormalizeDate(t *testing.T) {
	v, err := NormalizeDate("birth_date", "1990-05-20")
	require.NoError(t, err)
	d, ok := v.(time.Time)
	require.True(t, ok)
	assert.Equal(t, "1990-05-20", d.Format("2006-01-02"))

	v, err = NormalizeDate("birth_date", nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = NormalizeDate("birth_date", "")
	require.NoError(t, err)
	assert.Nil(t, v)
}

// Malformed date values must fail validation here rather than surface as
// datastore errors from the update statement.
func TestNormalizeDateRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  interface{}
	}{
		{"slash format", "20/05/1990"},
		{"impossible date", "2025-13-40"},
		{"short format", "2025-3-5"},
		{"non-string", 19900520.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeDate("expiry_date", tc.raw)
			require.Error(t, err)
			ve, ok := httpres.IsValidation(err)
			require.True(t, ok)
			assert.Equal(t, "expiry_date", ve.Field)
		})
	}
}
