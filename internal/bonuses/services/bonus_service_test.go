package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarciapsic/clinica-backend/internal/bonuses/models"
	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
)

// A malformed expiry_date must fail validation before any datastore access;
// the nil DB handle proves the update path returns first.
func TestUpdateBonusRejectsMalformedExpiryDate(t *testing.T) {
	svc := NewBonusService(nil)
	err := svc.UpdateBonus(1, map[string]interface{}{"expiry_date": "31/12/2025"})
	require.Error(t, err)
	ve, ok := httpres.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "expiry_date", ve.Field)
}

func TestCreateBonusRejectsUsedOverTotal(t *testing.T) {
	svc := NewBonusService(nil)
	_, err := svc.CreateBonus(models.BonusRequest{
		PatientID:     4,
		TotalSessions: 10,
		UsedSessions:  11,
	})
	require.Error(t, err)
	ve, ok := httpres.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "used_sessions", ve.Field)
}
