package main

import (
	"testing"

	"wtms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkFromFlags(t *testing.T) {
	assignOpts.workerID, assignOpts.title, assignOpts.description, assignOpts.due = 3, "Inspect site", "Block A", "2024-07-01"
	t.Cleanup(func() {
		assignOpts.workerID, assignOpts.title, assignOpts.description, assignOpts.due = 0, "", "", ""
	})

	w, err := newWorkFromFlags()
	require.NoError(t, err)
	assert.Equal(t, int64(3), w.AssignedTo)
	assert.Equal(t, models.StatusPending, w.Status)
	assert.Equal(t, "2024-07-01", w.DueDate.String())

	assignOpts.due = "01/07/2024"
	_, err = newWorkFromFlags()
	assert.Error(t, err)

	assignOpts.due, assignOpts.workerID = "2024-07-01", 0
	_, err = newWorkFromFlags()
	assert.Error(t, err)
}
