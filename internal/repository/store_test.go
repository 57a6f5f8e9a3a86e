package repository

import (
	"database/sql"
	"errors"
	"testing"

	"wtms/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError("op", nil))

	err := mapError("get worker", sql.ErrNoRows)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NotErrorIs(t, err, models.ErrPersistence)

	err = mapError("insert submission", &pq.Error{Code: "23505", Constraint: "uq_submissions_work_worker"})
	assert.ErrorIs(t, err, models.ErrConflict)

	driverErr := errors.New("connection reset")
	err = mapError("list works", driverErr)
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.ErrorIs(t, err, driverErr)
	assert.Contains(t, err.Error(), "list works")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
}
