package services_test

import (
	"testing"
	"time"

	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deliveryFixture struct {
	lifecycle services.DeliveryLifecycle
	params    services.CreateDeliveryParams
	driver    kernel.Principal
}

func newDeliveryFixture(t *testing.T) *deliveryFixture {
	t.Helper()
	c := newCenter(t, 100, 0)
	return &deliveryFixture{
		lifecycle: services.NewDeliveryLifecycle(services.NewAccessPolicy()),
		driver:    principal(t, "sam", kernel.RoleDriver),
		params: services.CreateDeliveryParams{
			ID:        kernel.NewUUID(),
			Donation:  collectedAt(t, c, 10),
			Center:    c,
			Driver:    newDriver(t, "sam"),
			Recipient: newRecipient(t),
			Notes:     "back door",
			Now:       time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func (f *deliveryFixture) create(t *testing.T) services.Participants {
	t.Helper()
	d, err := f.lifecycle.Create(staff(t), f.params)
	require.NoError(t, err)
	return services.Participants{Delivery: d, Donation: f.params.Donation, Center: f.params.Center, Driver: f.params.Driver}
}

func TestDeliveryLifecycle_Create(t *testing.T) {
	t.Run("should assign donation and reserve driver", func(t *testing.T) {
		f := newDeliveryFixture(t)

		in := f.create(t)

		assert.Equal(t, delivery.Assigned, in.Delivery.Status())
		assert.True(t, in.Delivery.FromCenterID().IsEqual(f.params.Center.ID()))
		assert.Equal(t, f.params.Now, in.Delivery.CreatedAt())
		assert.Equal(t, donation.Assigned, in.Donation.Status())
		assert.False(t, in.Driver.IsAvailable())
	})

	t.Run("should refuse an unavailable driver without side effects", func(t *testing.T) {
		f := newDeliveryFixture(t)
		require.NoError(t, f.params.Driver.Reserve())

		_, err := f.lifecycle.Create(staff(t), f.params)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, donation.Collected, f.params.Donation.Status())
	})

	t.Run("should refuse an inactive recipient", func(t *testing.T) {
		f := newDeliveryFixture(t)
		f.params.Recipient.Deactivate()

		_, err := f.lifecycle.Create(staff(t), f.params)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.True(t, f.params.Driver.IsAvailable())
	})

	t.Run("should refuse a second active delivery", func(t *testing.T) {
		f := newDeliveryFixture(t)
		first := f.create(t)
		f.params.Latest = first.Delivery
		f.params.Driver = newDriver(t, "kim")

		_, err := f.lifecycle.Create(staff(t), f.params)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.True(t, f.params.Driver.IsAvailable())
	})

	t.Run("should refuse a pending donation", func(t *testing.T) {
		f := newDeliveryFixture(t)
		pending := newDonation(t, 3)
		require.NoError(t, pending.LinkToCenter(f.params.Center.ID()))
		f.params.Donation = pending

		_, err := f.lifecycle.Create(staff(t), f.params)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should be forbidden for a driver", func(t *testing.T) {
		f := newDeliveryFixture(t)

		_, err := f.lifecycle.Create(f.driver, f.params)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestDeliveryLifecycle_HappyPath(t *testing.T) {
	// Given
	f := newDeliveryFixture(t)
	in := f.create(t)
	pickedUpAt := f.params.Now.Add(time.Hour)
	deliveredAt := pickedUpAt.Add(time.Hour)

	// When / Then
	require.NoError(t, f.lifecycle.Pickup(f.driver, in, pickedUpAt))
	assert.Equal(t, delivery.PickedUp, in.Delivery.Status())
	assert.Equal(t, pickedUpAt, *in.Delivery.ActualPickupTime())
	assert.Equal(t, donation.InTransit, in.Donation.Status())

	require.NoError(t, f.lifecycle.MarkInTransit(f.driver, in))
	assert.Equal(t, delivery.InTransit, in.Delivery.Status())
	assert.Equal(t, donation.InTransit, in.Donation.Status())

	require.NoError(t, f.lifecycle.Complete(f.driver, in, deliveredAt))
	assert.Equal(t, delivery.Delivered, in.Delivery.Status())
	assert.Equal(t, deliveredAt, *in.Delivery.DeliveredTime())
	assert.Equal(t, donation.Delivered, in.Donation.Status())
	assert.True(t, in.Driver.IsAvailable())
}

func TestDeliveryLifecycle_Pickup(t *testing.T) {
	t.Run("another driver is forbidden", func(t *testing.T) {
		f := newDeliveryFixture(t)
		in := f.create(t)

		err := f.lifecycle.Pickup(principal(t, "kim", kernel.RoleDriver), in, time.Now())

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, delivery.Assigned, in.Delivery.Status())
	})

	t.Run("second pickup is refused", func(t *testing.T) {
		f := newDeliveryFixture(t)
		in := f.create(t)
		require.NoError(t, f.lifecycle.Pickup(f.driver, in, time.Now()))

		err := f.lifecycle.Pickup(f.driver, in, time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, donation.InTransit, in.Donation.Status())
	})
}

func TestDeliveryLifecycle_Complete(t *testing.T) {
	t.Run("cannot complete before pickup and driver stays reserved", func(t *testing.T) {
		f := newDeliveryFixture(t)
		in := f.create(t)

		err := f.lifecycle.Complete(f.driver, in, time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, delivery.Assigned, in.Delivery.Status())
		assert.Equal(t, donation.Assigned, in.Donation.Status())
		assert.False(t, in.Driver.IsAvailable())
	})
}

func TestDeliveryLifecycle_Cancel(t *testing.T) {
	t.Run("cancel reverts donation and releases driver once", func(t *testing.T) {
		// Given
		f := newDeliveryFixture(t)
		in := f.create(t)

		// When
		err := f.lifecycle.Cancel(staff(t), in)

		// Then
		require.NoError(t, err)
		assert.Equal(t, delivery.Cancelled, in.Delivery.Status())
		assert.Equal(t, donation.Collected, in.Donation.Status())
		assert.True(t, in.Driver.IsAvailable())

		err = f.lifecycle.Cancel(staff(t), in)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.True(t, in.Driver.IsAvailable())
	})

	t.Run("cancel after pickup", func(t *testing.T) {
		f := newDeliveryFixture(t)
		in := f.create(t)
		require.NoError(t, f.lifecycle.Pickup(f.driver, in, time.Now()))

		require.NoError(t, f.lifecycle.Cancel(staff(t), in))

		assert.Equal(t, donation.Collected, in.Donation.Status())
		assert.True(t, in.Driver.IsAvailable())
	})

	t.Run("driver cannot cancel", func(t *testing.T) {
		f := newDeliveryFixture(t)
		in := f.create(t)

		require.ErrorIs(t, f.lifecycle.Cancel(f.driver, in), errs.ErrForbidden)
	})
}

func TestDeliveryLifecycle_Remove(t *testing.T) {
	t.Run("removing the latest delivery resets donation and releases driver", func(t *testing.T) {
		f := newDeliveryFixture(t)
		in := f.create(t)
		require.NoError(t, f.lifecycle.Pickup(f.driver, in, time.Now()))

		require.NoError(t, f.lifecycle.Remove(admin(t), in, in.Delivery))

		assert.Equal(t, donation.Collected, in.Donation.Status())
		assert.True(t, in.Driver.IsAvailable())
	})

	t.Run("removing an old cancelled delivery leaves the donation alone", func(t *testing.T) {
		f := newDeliveryFixture(t)
		old := f.create(t)
		require.NoError(t, f.lifecycle.Cancel(staff(t), old))
		f.params.ID = kernel.NewUUID()
		f.params.Latest = old.Delivery
		current := f.create(t)

		require.NoError(t, f.lifecycle.Remove(admin(t), old, current.Delivery))

		assert.Equal(t, donation.Assigned, current.Donation.Status())
		assert.False(t, current.Driver.IsAvailable())
	})

	t.Run("only admins remove deliveries", func(t *testing.T) {
		f := newDeliveryFixture(t)
		in := f.create(t)

		require.ErrorIs(t, f.lifecycle.Remove(staff(t), in, in.Delivery), errs.ErrForbidden)
	})
}
