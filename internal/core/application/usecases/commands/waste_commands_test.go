package commands_test

import (
	"testing"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/waste"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndProcessWaste(t *testing.T) {
	e := newEnv(t, true)
	centerID := e.createCenter(10, staffName)
	donationID := e.collected(e.createDonor(), centerID, 5)
	wasteID := kernel.NewUUID()

	record, err := commands.NewRecordWasteCommand(e.staff(), wasteID, donationID, "", 2, "", testDay)
	require.NoError(t, err)
	require.NoError(t, commands.NewRecordWasteCommandHandler(e.uows, e.access).Handle(e.ctx, record))

	w, err := e.reader().WasteRepository().Get(e.ctx, wasteID)
	require.NoError(t, err)
	assert.Equal(t, "Rice", w.ItemName(), "item name defaults to the donation's")
	assert.Equal(t, kernel.UnitKilogram, w.Unit())
	assert.Equal(t, centerID, w.CenterID())
	assert.Equal(t, waste.Pending, w.Status())

	process := commands.NewProcessWasteCommandHandler(e.uows, e.access)
	other, err := commands.NewWasteActionCommand(principal(t, "olga", kernel.RoleStaff), wasteID)
	require.NoError(t, err)
	require.ErrorIs(t, process.Handle(e.ctx, other), errs.ErrForbidden)

	cmd, err := commands.NewWasteActionCommand(e.staff(), wasteID)
	require.NoError(t, err)
	require.NoError(t, process.Handle(e.ctx, cmd))
	require.ErrorIs(t, process.Handle(e.ctx, cmd), errs.ErrInvalidState)

	w, err = e.reader().WasteRepository().Get(e.ctx, wasteID)
	require.NoError(t, err)
	assert.Equal(t, waste.Processed, w.Status())
}

func TestRecordWaste_UnlinkedDonation(t *testing.T) {
	e := newEnv(t, true)
	donationID, err := e.createDonation(e.donor(), e.createDonor(), 5, nil)
	require.NoError(t, err)

	cmd, err := commands.NewRecordWasteCommand(e.admin(), kernel.NewUUID(), donationID, "", 1, "", testDay)
	require.NoError(t, err)

	require.ErrorIs(t, commands.NewRecordWasteCommandHandler(e.uows, e.access).Handle(e.ctx, cmd), errs.ErrInvalidState)
}

func TestDeleteWaste_AdminOnly(t *testing.T) {
	e := newEnv(t, true)
	centerID := e.createCenter(10, staffName)
	donationID := e.collected(e.createDonor(), centerID, 5)
	wasteID := kernel.NewUUID()
	record, err := commands.NewRecordWasteCommand(e.staff(), wasteID, donationID, "Rice", 1, kernel.UnitKilogram, testDay)
	require.NoError(t, err)
	require.NoError(t, commands.NewRecordWasteCommandHandler(e.uows, e.access).Handle(e.ctx, record))
	handler := commands.NewDeleteWasteCommandHandler(e.uows, e.access)

	byStaff, err := commands.NewWasteActionCommand(e.staff(), wasteID)
	require.NoError(t, err)
	require.ErrorIs(t, handler.Handle(e.ctx, byStaff), errs.ErrForbidden)

	byAdmin, err := commands.NewWasteActionCommand(e.admin(), wasteID)
	require.NoError(t, err)
	require.NoError(t, handler.Handle(e.ctx, byAdmin))

	_, err = e.reader().WasteRepository().Get(e.ctx, wasteID)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
