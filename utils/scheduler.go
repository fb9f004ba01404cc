package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"obe/config"
	"obe/models"
	"obe/services/attainment"
)

func logScheduler(message string) {
	log.Printf("[SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// RecalculateSemester recomputes every course of the semester, then every program with a course in it.
// A failing course or program is logged and does not stop the rest.
func RecalculateSemester(ctx context.Context, store *attainment.GormStore, semesterID uint) (int, error) {
	calc := attainment.NewCalculator(store)

	courses, err := store.CoursesBySemester(ctx, semesterID)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, course := range courses {
		if _, err := calc.CalcCOAttainment(ctx, course.ID, semesterID); err != nil {
			failed++
			logScheduler(fmt.Sprintf("course %s (%d) failed: %v", course.Code, course.ID, err))
		}
	}

	programIDs, err := store.ProgramIDsBySemester(ctx, semesterID)
	if err != nil {
		return failed, err
	}
	for _, programID := range programIDs {
		if _, err := calc.RecalcProgramPO(ctx, programID, semesterID, models.ActorSystem); err != nil {
			failed++
			logScheduler(fmt.Sprintf("program %d failed: %v", programID, err))
		}
	}

	logScheduler(fmt.Sprintf("semester %d: %d course(s), %d program(s), %d failure(s)", semesterID, len(courses), len(programIDs), failed))
	return failed, nil
}

// StartRecalcScheduler registers the semester recalculation job
func StartRecalcScheduler(c *cron.Cron, db *gorm.DB, spec string, semesterID uint) error {
	if spec == "" || semesterID == 0 {
		logScheduler("Recalculation scheduler disabled")
		return nil
	}

	_, err := c.AddFunc(spec, func() {
		if _, err := RecalculateSemester(context.Background(), attainment.NewGormStore(db), semesterID); err != nil {
			logScheduler("Recalculation failed: " + err.Error())
		}
	})
	if err != nil {
		return fmt.Errorf("invalid RECALC_CRON %q: %v", spec, err)
	}
	logScheduler(fmt.Sprintf("Recalculation scheduler started (%s) for semester %d", spec, semesterID))
	return nil
}

// StartSurveySyncScheduler registers the survey aggregate sync job
func StartSurveySyncScheduler(c *cron.Cron, db *gorm.DB, spec, url, apiKey string) error {
	if spec == "" || url == "" {
		logScheduler("Survey sync scheduler disabled")
		return nil
	}

	client := NewSurveyClient(url, apiKey)
	_, err := c.AddFunc(spec, func() {
		if _, err := SyncSurveyAggregates(context.Background(), client, attainment.NewGormStore(db)); err != nil {
			logScheduler("Survey sync failed: " + err.Error())
		}
	})
	if err != nil {
		return fmt.Errorf("invalid SURVEY_SYNC_CRON %q: %v", spec, err)
	}
	logScheduler(fmt.Sprintf("Survey sync scheduler started (%s)", spec))
	return nil
}

// InitializeSchedulers starts the configured background jobs
func InitializeSchedulers(db *gorm.DB, cfg *config.Config) (*cron.Cron, error) {
	logScheduler("Initializing schedulers...")

	c := cron.New()

	if err := StartRecalcScheduler(c, db, cfg.RecalcCron, cfg.RecalcSemesterID); err != nil {
		return nil, err
	}
	if err := StartSurveySyncScheduler(c, db, cfg.SurveySyncCron, cfg.SurveyApiURL, cfg.SurveyApiKey); err != nil {
		return nil, err
	}

	c.Start()

	logScheduler(fmt.Sprintf("%d scheduled job(s) running", len(c.Entries())))
	return c, nil
}
