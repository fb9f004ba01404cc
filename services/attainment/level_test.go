package attainment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obe/models"
)

func TestResolveLevelFromPercent(t *testing.T) {
	tests := []struct {
		percent float64
		want    Level
	}{
		{100, Level3},
		{60, Level3},
		{59.99, Level2},
		{50, Level2},
		{49.99, Level1},
		{40, Level1},
		{39.99, Level0},
		{0, Level0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveLevelFromPercent(tt.percent, DefaultThresholds), "percent %v", tt.percent)
	}
}

func TestResolveLevelFromPercentMonotonic(t *testing.T) {
	custom := Thresholds{Level3: 75, Level2: 65, Level1: 30}
	for _, th := range []Thresholds{DefaultThresholds, custom} {
		prev := ResolveLevelFromPercent(0, th)
		for p := 0.0; p <= 100; p += 0.25 {
			got := ResolveLevelFromPercent(p, th)
			assert.GreaterOrEqual(t, int(got), int(prev), "percent %v", p)
			prev = got
		}
	}
}

func TestResolveLevelFromFinalScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{3, Level3},
		{2.5, Level3},
		{2.49, Level2},
		{2.0, Level2},
		{1.99, Level1},
		{1.0, Level1},
		{0.99, Level0},
		{0, Level0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveLevelFromFinalScore(tt.score, DefaultPoTargetLevel), "score %v", tt.score)
	}

	// bands move with the target
	assert.Equal(t, Level3, ResolveLevelFromFinalScore(2.0, 2.0))
	assert.Equal(t, Level2, ResolveLevelFromFinalScore(1.5, 2.0))
	assert.Equal(t, Level1, ResolveLevelFromFinalScore(0.5, 2.0))
	assert.Equal(t, Level0, ResolveLevelFromFinalScore(0.49, 2.0))
}

func TestLevelRepresentation(t *testing.T) {
	assert.Equal(t, "LEVEL_2", Level2.String())
	assert.Equal(t, models.Level3, Level3.Model())

	raw, err := json.Marshal(struct {
		Level Level `json:"level"`
	}{Level1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"LEVEL_1"}`, string(raw))
}

func TestLevelNumber(t *testing.T) {
	p := 55.0
	assert.Equal(t, 0, levelNumber(nil, DefaultThresholds))
	assert.Equal(t, 2, levelNumber(&p, DefaultThresholds))
}

func TestConfigFromModelDefaults(t *testing.T) {
	cfg := ConfigFromModel(models.GlobalConfig{CoTargetMarksPercent: 50, DirectWeightage: 0.8, IndirectWeightage: 0.2})
	assert.Equal(t, DefaultThresholds, cfg.Thresholds)
	assert.Equal(t, DefaultPoTargetLevel, cfg.PoTargetLevel)

	target, l3 := 2.0, 70.0
	cfg = ConfigFromModel(models.GlobalConfig{PoTargetLevel: &target, Level3Threshold: &l3})
	assert.Equal(t, 2.0, cfg.PoTargetLevel)
	assert.Equal(t, Thresholds{Level3: 70, Level2: 50, Level1: 40}, cfg.Thresholds)
}
