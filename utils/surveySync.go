package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"obe/models"
	"obe/services/attainment"
)

// SurveyRecord is one aggregate as served by the survey API
type SurveyRecord struct {
	TargetType    string  `json:"target_type"`
	TargetID      uint    `json:"target_id"`
	AverageScore  float64 `json:"average_score"`
	ResponseCount int     `json:"response_count"`
}

type surveyResponse struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    []SurveyRecord `json:"data"`
}

// SurveyClient pulls precomputed survey aggregates from the external survey service
type SurveyClient struct {
	client *resty.Client
	url    string
}

func NewSurveyClient(url, apiKey string) *SurveyClient {
	client := resty.New().
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("X-API-Key", apiKey)
	}
	return &SurveyClient{client: client, url: url}
}

func (s *SurveyClient) FetchAggregates(ctx context.Context) ([]SurveyRecord, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch survey aggregates: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("survey API error (%d): %s", resp.StatusCode(), resp.String())
	}

	var body surveyResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse survey response: %v", err)
	}
	return body.Data, nil
}

func logSurveySync(message string) {
	log.Printf("[SURVEY-SYNC %s] %s", time.Now().Format(time.RFC3339), message)
}

// SyncSurveyAggregates upserts every well-formed record; malformed records are skipped and logged
func SyncSurveyAggregates(ctx context.Context, client *SurveyClient, store *attainment.GormStore) (int, error) {
	records, err := client.FetchAggregates(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	syncedAt := time.Now()
	for _, rec := range records {
		if rec.TargetType != models.SurveyTargetCO && rec.TargetType != models.SurveyTargetPO {
			logSurveySync(fmt.Sprintf("skipping record with unknown target type %q", rec.TargetType))
			continue
		}
		if rec.TargetID == 0 || rec.AverageScore < 0 || rec.AverageScore > 3 {
			logSurveySync(fmt.Sprintf("skipping invalid record for %s %d", rec.TargetType, rec.TargetID))
			continue
		}

		agg := models.SurveyAggregate{
			TargetType:    rec.TargetType,
			TargetID:      rec.TargetID,
			AverageScore:  rec.AverageScore,
			ResponseCount: rec.ResponseCount,
			Source:        "SYNC",
			SyncedAt:      syncedAt,
		}
		if err := store.UpsertSurveyAggregate(ctx, &agg); err != nil {
			return synced, fmt.Errorf("failed to save survey aggregate for %s %d: %v", rec.TargetType, rec.TargetID, err)
		}
		synced++
	}

	logSurveySync(fmt.Sprintf("%d of %d survey aggregate(s) synced", synced, len(records)))
	return synced, nil
}
