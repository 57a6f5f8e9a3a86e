package report

import (
	"bytes"
	"testing"
	"time"

	"wtms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteSubmissions(t *testing.T) {
	items := []models.SubmissionItem{
		{
			SubmissionID: 7, WorkID: 3, TaskTitle: "Paint wall", TaskDescription: "Block B",
			SubmissionText: "Done", SubmittedAt: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
			DueDate: models.NewDate(2024, 5, 12), TaskStatus: models.StatusCompleted,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSubmissions(&buf, items, time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Submission ID", rows[0][0])
	assert.Equal(t, []string{"7", "3", "Paint wall", "Block B", "Done", "2024-05-10 09:00:00", "2024-05-12", "completed"}, rows[1])
}

func TestWriteSubmissions_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSubmissions(&buf, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
