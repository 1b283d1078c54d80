package services_test

import (
	"testing"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDonationLifecycle(enforce bool) services.DonationLifecycle {
	return services.NewDonationLifecycle(services.NewAccessPolicy(), services.NewCapacityTracker(enforce))
}

func TestDonationLifecycle_Accept(t *testing.T) {
	lifecycle := newDonationLifecycle(true)

	t.Run("staff of the center accepts once", func(t *testing.T) {
		// Given
		c := newCenter(t, 100, 0)
		d := newDonation(t, 10)
		require.NoError(t, services.NewCapacityTracker(true).TryAssign(c, d))

		// When
		err := lifecycle.Accept(staff(t), c, d)

		// Then
		require.NoError(t, err)
		assert.Equal(t, donation.Collected, d.Status())

		err = lifecycle.Accept(staff(t), c, d)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, donation.Collected, d.Status())
	})

	t.Run("staff of another center is forbidden", func(t *testing.T) {
		c := newCenter(t, 100, 0)
		d := newDonation(t, 10)
		require.NoError(t, d.LinkToCenter(c.ID()))

		err := lifecycle.Accept(principal(t, "bob", kernel.RoleStaff), c, d)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, donation.Pending, d.Status())
	})

	t.Run("unlinked donation cannot be accepted", func(t *testing.T) {
		c := newCenter(t, 100, 0)
		d := newDonation(t, 10)

		err := lifecycle.Accept(admin(t), c, d)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestDonationLifecycle_Reject(t *testing.T) {
	lifecycle := newDonationLifecycle(true)
	c := newCenter(t, 100, 0)
	d := newDonation(t, 30)
	require.NoError(t, services.NewCapacityTracker(true).TryAssign(c, d))
	require.Equal(t, 30, c.CurrentLoad())

	require.NoError(t, lifecycle.Reject(staff(t), c, d))

	assert.Equal(t, donation.Rejected, d.Status())
	assert.Equal(t, 0, c.CurrentLoad())
	assert.Nil(t, d.CenterID())
}

func TestDonationLifecycle_AssignToCenter(t *testing.T) {
	t.Run("owner moves a donation between centers", func(t *testing.T) {
		lifecycle := newDonationLifecycle(true)
		owner := newDonor(t, "luna")
		from := newCenter(t, 100, 0)
		target := newCenter(t, 100, 0)
		d := newDonation(t, 25)
		require.NoError(t, lifecycle.AssignToCenter(admin(t), owner, d, nil, from))

		err := lifecycle.AssignToCenter(principal(t, "luna", kernel.RoleDonor), owner, d, from, target)

		require.NoError(t, err)
		assert.Equal(t, 0, from.CurrentLoad())
		assert.Equal(t, 25, target.CurrentLoad())
		assert.True(t, d.IsLinkedTo(target.ID()))
	})

	t.Run("capacity failure reports the requested quantity", func(t *testing.T) {
		lifecycle := newDonationLifecycle(true)
		target := newCenter(t, 10, 5)
		d := newDonation(t, 10)

		err := lifecycle.AssignToCenter(admin(t), nil, d, nil, target)

		var capErr *errs.CapacityExceededError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, 10, capErr.Requested)
		assert.Equal(t, 5, target.CurrentLoad())
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		lifecycle := newDonationLifecycle(true)

		err := lifecycle.AssignToCenter(principal(t, "eve", kernel.RoleDonor), newDonor(t, "luna"),
			newDonation(t, 1), nil, newCenter(t, 10, 0))

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("donation held by a delivery cannot move", func(t *testing.T) {
		lifecycle := newDonationLifecycle(true)
		from := newCenter(t, 100, 0)
		d := collectedAt(t, from, 5)
		require.NoError(t, d.AssignDelivery())

		err := lifecycle.AssignToCenter(admin(t), nil, d, from, newCenter(t, 100, 0))

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.True(t, d.IsLinkedTo(from.ID()))
	})
}

func TestDonationLifecycle_Process(t *testing.T) {
	lifecycle := newDonationLifecycle(true)
	c := newCenter(t, 100, 0)
	d := collectedAt(t, c, 5)

	require.ErrorIs(t, lifecycle.Process(staff(t), c, d), errs.ErrInvalidState)

	require.NoError(t, d.AssignDelivery())
	require.NoError(t, d.PickUp())
	require.NoError(t, d.Deliver())
	require.NoError(t, lifecycle.Process(staff(t), c, d))
	assert.Equal(t, donation.Processed, d.Status())
}
