package services_test

import (
	"testing"
	"time"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"

	"github.com/stretchr/testify/require"
)

const staffName = "maria"

func principal(t *testing.T, username string, roles ...kernel.Role) kernel.Principal {
	t.Helper()
	p, err := kernel.NewPrincipal(username, roles...)
	require.NoError(t, err)
	return p
}

func staff(t *testing.T) kernel.Principal {
	return principal(t, staffName, kernel.RoleStaff)
}

func admin(t *testing.T) kernel.Principal {
	return principal(t, "root", kernel.RoleAdmin)
}

func newCenter(t *testing.T, maxCapacity, load int) *center.CollectionCenter {
	t.Helper()
	c, err := center.Restore(center.Snapshot{
		ID:            kernel.NewUUID(),
		Name:          "North depot",
		MaxCapacity:   maxCapacity,
		CurrentLoad:   load,
		StaffUsername: staffName,
	})
	require.NoError(t, err)
	return c
}

func newDonation(t *testing.T, quantity int) *donation.Donation {
	t.Helper()
	d, err := donation.NewDonation(kernel.NewUUID(), kernel.NewUUID(), "Rice", quantity, kernel.UnitKilogram, time.Now())
	require.NoError(t, err)
	return d
}

func newDonor(t *testing.T, username string) *donor.Donor {
	t.Helper()
	d, err := donor.NewDonor(kernel.NewUUID(), "Cafe Luna", "", "", donor.TypeRestaurant, username)
	require.NoError(t, err)
	return d
}

func newDriver(t *testing.T, username string) *driver.DeliveryPartner {
	t.Helper()
	d, err := driver.NewDeliveryPartner(kernel.NewUUID(), "Sam", "", "", "VAN", username, nil)
	require.NoError(t, err)
	return d
}

func newRecipient(t *testing.T) *recipient.Recipient {
	t.Helper()
	r, err := recipient.NewRecipient(kernel.NewUUID(), "Hope Shelter", recipient.TypeShelter, "Elm St 7", recipient.Contact{})
	require.NoError(t, err)
	return r
}

// collectedAt returns a donation linked to c (load included) and accepted.
func collectedAt(t *testing.T, c *center.CollectionCenter, quantity int) *donation.Donation {
	t.Helper()
	d := newDonation(t, quantity)
	require.NoError(t, d.LinkToCenter(c.ID()))
	require.NoError(t, d.Accept())
	return d
}
