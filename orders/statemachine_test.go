package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/quikbite/quikbite/models"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		models.StatusCreated, models.StatusPreparing, models.StatusShipping,
		models.StatusCompleted, models.StatusCancelled,
	} {
		assert.True(t, ValidStatus(status), status)
	}

	assert.False(t, ValidStatus("Delivered"))
	assert.False(t, ValidStatus("created")) // labels are case-sensitive
	assert.False(t, ValidStatus(models.StatusPaid), "Paid is settlement-only, not a fulfilment label")
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.StatusCreated, models.StatusPreparing, true},
		{models.StatusCreated, models.StatusCancelled, true},
		{models.StatusCreated, models.StatusShipping, false},
		{models.StatusCreated, models.StatusCompleted, false},
		{models.StatusPreparing, models.StatusShipping, true},
		{models.StatusPreparing, models.StatusCancelled, true},
		{models.StatusPreparing, models.StatusCreated, false},
		{models.StatusShipping, models.StatusCompleted, true},
		{models.StatusShipping, models.StatusCancelled, true},
		{models.StatusShipping, models.StatusPreparing, false},
		{models.StatusCompleted, models.StatusCreated, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPreparing, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCheckTransition(t *testing.T) {
	assert.NoError(t, CheckTransition(models.StatusCreated, models.StatusPreparing))

	err := CheckTransition(models.StatusCreated, "Delivered")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	err = CheckTransition(models.StatusCompleted, models.StatusCreated)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(models.StatusCreated))

	for _, status := range []string{
		models.StatusPreparing, models.StatusShipping, models.StatusCompleted,
		models.StatusCancelled, models.StatusPaid,
	} {
		assert.ErrorIs(t, CanCancel(status), ErrInvalidTransition, status)
	}
}

func TestCheckOwner(t *testing.T) {
	owner := uuid.New()

	assert.NoError(t, CheckOwner(owner, owner))
	assert.ErrorIs(t, CheckOwner(owner, uuid.New()), ErrNotOrderOwner)
	assert.NoError(t, CheckOwner(owner, uuid.Nil)) // admin sentinel
}

func TestDefaultStatusNote(t *testing.T) {
	assert.Equal(t, "Order status updated to Preparing", DefaultStatusNote(models.StatusPreparing))
}
