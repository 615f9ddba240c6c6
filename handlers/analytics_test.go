package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateParam(t *testing.T) {
	got, err := parseDateParam("", false)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDateParam("2025-06-01T10:30:00Z", false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), *got)

	got, err = parseDateParam("2025-06-01", false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *got)

	// A date-only upper bound covers the whole day.
	got, err = parseDateParam("2025-06-01", true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.After(time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC)))
	assert.True(t, got.Before(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))

	_, err = parseDateParam("June 1st", false)
	assert.Error(t, err)
}
