package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/patients/models"
)

// A malformed birth_date must fail validation before the update statement
// runs; the nil DB handle proves the datastore is never reached.
func TestUpdatePatientRejectsMalformedBirthDate(t *testing.T) {
	svc := NewPatientService(nil)
	err := svc.UpdatePatient(1, map[string]interface{}{"birth_date": "20/05/1990"})
	require.Error(t, err)
	ve, ok := httpres.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "birth_date", ve.Field)
}

func TestUpdatePatientRejectsUnknownStatus(t *testing.T) {
	svc := NewPatientService(nil)
	err := svc.UpdatePatient(1, map[string]interface{}{"treatment_status": "archivado"})
	require.Error(t, err)
	ve, ok := httpres.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "treatment_status", ve.Field)
	assert.Equal(t, models.TreatmentStatuses, ve.AllowedValues)
}
