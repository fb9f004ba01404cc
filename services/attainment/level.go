package attainment

import (
	"fmt"

	"obe/models"
)

// Level is a discrete attainment bucket, LEVEL_0..LEVEL_3
type Level int

const (
	Level0 Level = iota
	Level1
	Level2
	Level3
)

func (l Level) String() string {
	return fmt.Sprintf("LEVEL_%d", int(l))
}

// MarshalText renders the level as its enum name in JSON
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Model returns the persisted enum value
func (l Level) Model() models.AttainmentLevel {
	return models.AttainmentLevel(l.String())
}

// Thresholds are the percent cut points for LEVEL_3, LEVEL_2 and LEVEL_1
type Thresholds struct {
	Level3 float64 `json:"level3"`
	Level2 float64 `json:"level2"`
	Level1 float64 `json:"level1"`
}

// DefaultThresholds apply when the config leaves them unset
var DefaultThresholds = Thresholds{Level3: 60, Level2: 50, Level1: 40}

// DefaultPoTargetLevel applies when the config leaves poTargetLevel unset
const DefaultPoTargetLevel = 2.5

// ResolveLevelFromPercent buckets a success percentage. Boundaries are inclusive.
func ResolveLevelFromPercent(percent float64, t Thresholds) Level {
	switch {
	case percent >= t.Level3:
		return Level3
	case percent >= t.Level2:
		return Level2
	case percent >= t.Level1:
		return Level1
	default:
		return Level0
	}
}

// ResolveLevelFromFinalScore buckets a composite 0..3 score using fixed offsets
// below the target: target, target-0.5, target-1.5.
func ResolveLevelFromFinalScore(score, target float64) Level {
	switch {
	case score >= target:
		return Level3
	case score >= target-0.5:
		return Level2
	case score >= target-1.5:
		return Level1
	default:
		return Level0
	}
}

// levelNumber converts an optional percent into a numeric level; nil counts as 0
func levelNumber(percent *float64, t Thresholds) int {
	if percent == nil {
		return 0
	}
	return int(ResolveLevelFromPercent(*percent, t))
}
