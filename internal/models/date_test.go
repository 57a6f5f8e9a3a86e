package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtms/internal/models"
)

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	// 23:30 on the 9th in UTC is already the 10th in UTC+8.
	instant := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.UTC).In(loc)

	assert.Equal(t, "2024-03-10", models.DateOf(instant).String())
}

func TestDate_JSON(t *testing.T) {
	d := models.NewDate(2024, time.June, 1)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-01"`, string(b))

	var back models.Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d))

	assert.Error(t, json.Unmarshal([]byte(`"01/06/2024"`), &back))
}

func TestDate_Scan(t *testing.T) {
	var d models.Date

	require.NoError(t, d.Scan(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-06-01", d.String())

	require.NoError(t, d.Scan([]byte("2024-07-02")))
	assert.Equal(t, "2024-07-02", d.String())

	require.NoError(t, d.Scan("2024-08-03T00:00:00Z"))
	assert.Equal(t, "2024-08-03", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := models.NewDate(2024, time.December, 31).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", v)
}

func TestDate_UnmarshalEmpty(t *testing.T) {
	var d models.Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
}
