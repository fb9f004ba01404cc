package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obe/config"
	"obe/database"
	"obe/models"
)

func TestSeedGlobalConfigKeepsZeroWeights(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)

	defaults := config.BuiltinAttainmentDefaults()
	require.NoError(t, seedGlobalConfig(db, defaults.ToGlobalConfig(), false))

	defaults.DirectWeightage = 1
	defaults.IndirectWeightage = 0
	defaults.IA1Weightage = 0
	defaults.IA2Weightage = 0.4

	// without overwrite the existing row stays
	require.NoError(t, seedGlobalConfig(db, defaults.ToGlobalConfig(), false))
	var stored models.GlobalConfig
	require.NoError(t, db.First(&stored, models.GlobalConfigID).Error)
	assert.Equal(t, 0.2, stored.IndirectWeightage)

	require.NoError(t, seedGlobalConfig(db, defaults.ToGlobalConfig(), true))
	require.NoError(t, db.First(&stored, models.GlobalConfigID).Error)
	assert.Equal(t, 0.0, stored.IndirectWeightage)
	assert.Equal(t, 0.0, stored.IA1Weightage)
	assert.Equal(t, 1.0, stored.DirectWeightage)
}
