package commands_test

import (
	"context"
	"testing"
	"time"

	"donations/internal/adapters/out/memory"
	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"

	"github.com/stretchr/testify/require"
)

const (
	staffName  = "maria"
	driverName = "sam"
	donorName  = "luna"
)

var (
	testDay          = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	recipientContact = recipient.Contact{Person: "Ann", Phone: "555-0199", Email: "ann@hope.example"}
)

type memoryFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f memoryFactory) Create() commands.UoW {
	return f.factory.Create()
}

// env wires every handler against one in-memory store.
type env struct {
	t       *testing.T
	ctx     context.Context
	uows    memoryFactory
	access  services.AccessPolicy
	tracker services.CapacityTracker
	donLife services.DonationLifecycle
	delLife services.DeliveryLifecycle
}

func newEnv(t *testing.T, enforce bool) *env {
	t.Helper()
	access := services.NewAccessPolicy()
	tracker := services.NewCapacityTracker(enforce)
	return &env{
		t:       t,
		ctx:     t.Context(),
		uows:    memoryFactory{factory: memory.NewUnitOfWorkFactory(memory.NewStore(), nil)},
		access:  access,
		tracker: tracker,
		donLife: services.NewDonationLifecycle(access, tracker),
		delLife: services.NewDeliveryLifecycle(access),
	}
}

func principal(t *testing.T, username string, roles ...kernel.Role) kernel.Principal {
	t.Helper()
	p, err := kernel.NewPrincipal(username, roles...)
	require.NoError(t, err)
	return p
}

func (e *env) admin() kernel.Principal  { return principal(e.t, "root", kernel.RoleAdmin) }
func (e *env) staff() kernel.Principal  { return principal(e.t, staffName, kernel.RoleStaff) }
func (e *env) driver() kernel.Principal { return principal(e.t, driverName, kernel.RoleDriver) }
func (e *env) donor() kernel.Principal  { return principal(e.t, donorName, kernel.RoleDonor) }

func (e *env) reader() ports.UnitOfWork {
	return e.uows.factory.Create()
}

func (e *env) createCenter(maxCapacity int, staffUsername string) kernel.UUID {
	e.t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateCollectionCenterCommand(e.admin(), id, "North depot", "Harbour Rd 1", maxCapacity, staffUsername)
	require.NoError(e.t, err)
	require.NoError(e.t, commands.NewCreateCollectionCenterCommandHandler(e.uows, e.access).Handle(e.ctx, cmd))
	return id
}

func (e *env) createDonor() kernel.UUID {
	e.t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDonorCommand(e.staff(), id, "Cafe Luna", "555-0100", "Old Town", donor.TypeRestaurant, donorName)
	require.NoError(e.t, err)
	require.NoError(e.t, commands.NewCreateDonorCommandHandler(e.uows, e.access).Handle(e.ctx, cmd))
	return id
}

func (e *env) createDriver() kernel.UUID {
	e.t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryPartnerCommand(e.staff(), id, "Sam", "555-0101", "AB-123", "VAN", driverName, nil)
	require.NoError(e.t, err)
	require.NoError(e.t, commands.NewCreateDeliveryPartnerCommandHandler(e.uows, e.access).Handle(e.ctx, cmd))
	return id
}

func (e *env) createRecipient() kernel.UUID {
	e.t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateRecipientCommand(e.staff(), id, "Hope Shelter", "SHELTER", "Elm St 7", recipientContact)
	require.NoError(e.t, err)
	require.NoError(e.t, commands.NewCreateRecipientCommandHandler(e.uows, e.access).Handle(e.ctx, cmd))
	return id
}

func (e *env) createDonation(p kernel.Principal, donorID kernel.UUID, quantity int, centerID *kernel.UUID) (kernel.UUID, error) {
	e.t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDonationCommand(p, id, donorID, "Rice", quantity, kernel.UnitKilogram, testDay, centerID)
	require.NoError(e.t, err)
	return id, commands.NewCreateDonationCommandHandler(e.uows, e.access, e.tracker).Handle(e.ctx, cmd)
}

func (e *env) accept(p kernel.Principal, donationID kernel.UUID) error {
	e.t.Helper()
	cmd, err := commands.NewDonationActionCommand(p, donationID)
	require.NoError(e.t, err)
	return commands.NewAcceptDonationCommandHandler(e.uows, e.donLife).Handle(e.ctx, cmd)
}

// collected creates a donation at centerID and accepts it.
func (e *env) collected(donorID, centerID kernel.UUID, quantity int) kernel.UUID {
	e.t.Helper()
	id, err := e.createDonation(e.staff(), donorID, quantity, &centerID)
	require.NoError(e.t, err)
	require.NoError(e.t, e.accept(e.staff(), id))
	return id
}

func (e *env) createDelivery(p kernel.Principal, donationID, driverID, recipientID kernel.UUID) (kernel.UUID, error) {
	e.t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(p, id, donationID, driverID, recipientID, nil, "back door")
	require.NoError(e.t, err)
	return id, commands.NewCreateDeliveryCommandHandler(e.uows, e.delLife).Handle(e.ctx, cmd)
}

func (e *env) deliveryAction(p kernel.Principal, deliveryID kernel.UUID) commands.DeliveryActionCommand {
	e.t.Helper()
	cmd, err := commands.NewDeliveryActionCommand(p, deliveryID)
	require.NoError(e.t, err)
	return cmd
}

func (e *env) getCenter(id kernel.UUID) *center.CollectionCenter {
	e.t.Helper()
	c, err := e.reader().CollectionCenterRepository().Get(e.ctx, id)
	require.NoError(e.t, err)
	return c
}

func (e *env) getDonation(id kernel.UUID) *donation.Donation {
	e.t.Helper()
	d, err := e.reader().DonationRepository().Get(e.ctx, id)
	require.NoError(e.t, err)
	return d
}

func (e *env) getDriver(id kernel.UUID) *driver.DeliveryPartner {
	e.t.Helper()
	d, err := e.reader().DeliveryPartnerRepository().Get(e.ctx, id)
	require.NoError(e.t, err)
	return d
}
