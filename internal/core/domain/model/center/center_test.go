package center_test

import (
	"testing"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCenter(t *testing.T, maxCapacity, load int) *center.CollectionCenter {
	t.Helper()
	c, err := center.Restore(center.Snapshot{
		ID:            kernel.NewUUID(),
		Name:          "North depot",
		Location:      "Harbour Rd 4",
		MaxCapacity:   maxCapacity,
		CurrentLoad:   load,
		StaffUsername: "maria",
	})
	require.NoError(t, err)
	return c
}

func TestNewCollectionCenter(t *testing.T) {
	t.Run("should create an empty center", func(t *testing.T) {
		c, err := center.NewCollectionCenter(kernel.NewUUID(), " North depot ", "Harbour Rd 4", 100, "maria")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "North depot", c.Name())
		assert.Equal(t, 100, c.MaxCapacity())
		assert.Equal(t, 0, c.CurrentLoad())
		assert.True(t, c.HasStaff("maria"))
		assert.False(t, c.HasStaff(""))
	})

	t.Run("should reject missing name and non-positive capacity", func(t *testing.T) {
		_, err := center.NewCollectionCenter(kernel.NewUUID(), "", "", 0, "")

		require.ErrorIs(t, err, center.ErrNameIsRequired)
		assert.Contains(t, err.Error(), "maxCapacity is invalid")
	})

	t.Run("should reject negative restored load", func(t *testing.T) {
		_, err := center.Restore(center.Snapshot{ID: kernel.NewUUID(), Name: "x", MaxCapacity: 1, CurrentLoad: -1})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCollectionCenter_Reserve(t *testing.T) {
	t.Run("should add quantity within capacity", func(t *testing.T) {
		c := newCenter(t, 10, 5)

		require.NoError(t, c.Reserve(5, true))

		assert.Equal(t, 10, c.CurrentLoad())
		assert.Equal(t, 0, c.AvailableCapacity())
	})

	t.Run("should refuse over capacity and keep the load", func(t *testing.T) {
		c := newCenter(t, 10, 5)

		err := c.Reserve(10, true)

		var capErr *errs.CapacityExceededError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, 5, capErr.CurrentLoad)
		assert.Equal(t, 10, capErr.Requested)
		assert.Equal(t, 10, capErr.MaxCapacity)
		assert.Equal(t, 5, c.CurrentLoad())
	})

	t.Run("should allow overflow when not enforced", func(t *testing.T) {
		c := newCenter(t, 10, 5)

		require.NoError(t, c.Reserve(10, false))

		assert.Equal(t, 15, c.CurrentLoad())
		assert.Equal(t, 0, c.AvailableCapacity())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		c := newCenter(t, 10, 0)

		require.ErrorIs(t, c.Reserve(0, true), errs.ErrValueIsInvalid)
	})
}

func TestCollectionCenter_Free(t *testing.T) {
	c := newCenter(t, 10, 3)

	c.Free(2)
	assert.Equal(t, 1, c.CurrentLoad())

	c.Free(5)
	assert.Equal(t, 0, c.CurrentLoad())
}

func TestCollectionCenter_UpdateDetails(t *testing.T) {
	t.Run("should not shrink below the current load", func(t *testing.T) {
		c := newCenter(t, 10, 8)

		err := c.UpdateDetails("North depot", "Harbour Rd 4", 5)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 10, c.MaxCapacity())
	})

	t.Run("should update name location and capacity", func(t *testing.T) {
		c := newCenter(t, 10, 8)

		require.NoError(t, c.UpdateDetails("South depot", "Quay 1", 20))

		assert.Equal(t, "South depot", c.Name())
		assert.Equal(t, "Quay 1", c.Location())
		assert.Equal(t, 20, c.MaxCapacity())
	})
}

func TestCollectionCenter_Reconcile(t *testing.T) {
	c := newCenter(t, 10, 8)

	require.NoError(t, c.Reconcile(3))
	assert.Equal(t, 3, c.CurrentLoad())

	require.ErrorIs(t, c.Reconcile(-1), errs.ErrValueIsOutOfRange)
}
