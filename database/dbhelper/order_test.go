package dbhelper

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quikbite/quikbite/models"
)

func TestFulfilmentStatus(t *testing.T) {
	status, err := fulfilmentStatus(models.StatusPreparing, nil)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, status)

	// No non-Paid history rows reads as Created.
	status, err = fulfilmentStatus("", sql.ErrNoRows)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCreated, status)

	// Real query failures must not masquerade as a valid state.
	dbErr := errors.New("connection reset")
	_, err = fulfilmentStatus("", dbErr)
	assert.ErrorIs(t, err, dbErr)
}
