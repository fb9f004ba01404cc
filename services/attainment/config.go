package attainment

import (
	"obe/models"
)

// Config is the immutable snapshot of GlobalConfig used for one calculation run
type Config struct {
	CoTargetMarksPercent float64    `json:"co_target_marks_percent"`
	IA1Weightage         float64    `json:"ia1_weightage"`
	IA2Weightage         float64    `json:"ia2_weightage"`
	EndSemWeightage      float64    `json:"end_sem_weightage"`
	DirectWeightage      float64    `json:"direct_weightage"`
	IndirectWeightage    float64    `json:"indirect_weightage"`
	PoTargetLevel        float64    `json:"po_target_level"`
	Thresholds           Thresholds `json:"thresholds"`
}

// ConfigFromModel snapshots a GlobalConfig row, filling unset thresholds with defaults
func ConfigFromModel(gc models.GlobalConfig) Config {
	cfg := Config{
		CoTargetMarksPercent: gc.CoTargetMarksPercent,
		IA1Weightage:         gc.IA1Weightage,
		IA2Weightage:         gc.IA2Weightage,
		EndSemWeightage:      gc.EndSemWeightage,
		DirectWeightage:      gc.DirectWeightage,
		IndirectWeightage:    gc.IndirectWeightage,
		PoTargetLevel:        DefaultPoTargetLevel,
		Thresholds:           DefaultThresholds,
	}
	if gc.PoTargetLevel != nil {
		cfg.PoTargetLevel = *gc.PoTargetLevel
	}
	if gc.Level3Threshold != nil {
		cfg.Thresholds.Level3 = *gc.Level3Threshold
	}
	if gc.Level2Threshold != nil {
		cfg.Thresholds.Level2 = *gc.Level2Threshold
	}
	if gc.Level1Threshold != nil {
		cfg.Thresholds.Level1 = *gc.Level1Threshold
	}
	return cfg
}
