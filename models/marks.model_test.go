package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadLogCurrent(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Nil(t, UploadLog{}.Current())

	log := UploadLog{
		{AssessmentID: 1, UploadedAt: base.Add(2 * time.Hour)},
		{AssessmentID: 1, UploadedAt: base},
		{AssessmentID: 1, UploadedAt: base.Add(time.Hour)},
	}
	log[0].ID, log[1].ID, log[2].ID = 7, 8, 9

	cur := log.Current()
	require.NotNil(t, cur)
	assert.EqualValues(t, 7, cur.ID, "latest timestamp wins regardless of id order")
}

func TestUploadLogCurrentTieBreaksOnID(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	log := UploadLog{{UploadedAt: at}, {UploadedAt: at}}
	log[0].ID, log[1].ID = 4, 3

	assert.EqualValues(t, 4, log.Current().ID)
}
