package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"obe/models"
)

// AttainmentDefaults is the on-disk form of the initial GlobalConfig row
type AttainmentDefaults struct {
	CoTargetMarksPercent float64  `yaml:"co_target_marks_percent"`
	IA1Weightage         float64  `yaml:"ia1_weightage"`
	IA2Weightage         float64  `yaml:"ia2_weightage"`
	EndSemWeightage      float64  `yaml:"end_sem_weightage"`
	DirectWeightage      float64  `yaml:"direct_weightage"`
	IndirectWeightage    float64  `yaml:"indirect_weightage"`
	PoTargetLevel        *float64 `yaml:"po_target_level"`
	Level3Threshold      *float64 `yaml:"level3_threshold"`
	Level2Threshold      *float64 `yaml:"level2_threshold"`
	Level1Threshold      *float64 `yaml:"level1_threshold"`
}

// BuiltinAttainmentDefaults is used when no defaults file exists
func BuiltinAttainmentDefaults() AttainmentDefaults {
	return AttainmentDefaults{
		CoTargetMarksPercent: 60,
		IA1Weightage:         0.2,
		IA2Weightage:         0.2,
		EndSemWeightage:      0.6,
		DirectWeightage:      0.8,
		IndirectWeightage:    0.2,
	}
}

// LoadAttainmentDefaults reads the YAML defaults file. A missing file yields the builtin defaults.
func LoadAttainmentDefaults(path string) (AttainmentDefaults, error) {
	defaults := BuiltinAttainmentDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("read attainment defaults %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return defaults, fmt.Errorf("parse attainment defaults %s: %w", path, err)
	}
	return defaults, nil
}

// ToGlobalConfig converts the defaults into the singleton config row
func (d AttainmentDefaults) ToGlobalConfig() models.GlobalConfig {
	return models.GlobalConfig{
		ID:                   models.GlobalConfigID,
		CoTargetMarksPercent: d.CoTargetMarksPercent,
		IA1Weightage:         d.IA1Weightage,
		IA2Weightage:         d.IA2Weightage,
		EndSemWeightage:      d.EndSemWeightage,
		DirectWeightage:      d.DirectWeightage,
		IndirectWeightage:    d.IndirectWeightage,
		PoTargetLevel:        d.PoTargetLevel,
		Level3Threshold:      d.Level3Threshold,
		Level2Threshold:      d.Level2Threshold,
		Level1Threshold:      d.Level1Threshold,
		UpdatedBy:            models.ActorSystem,
	}
}
