package guard_test

import (
	"errors"
	"testing"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotBuilt := errors.New("record not built")

	tests := []struct {
		name     string
		guard    guard.ConstructorGuard
		given    error
		expected error
	}{
		{"constructed with custom error", guard.NewConstructorGuard(), errNotBuilt, nil},
		{"constructed with nil error", guard.NewConstructorGuard(), nil, nil},
		{"zero value returns the given error", guard.ConstructorGuard{}, errNotBuilt, errNotBuilt},
		{"zero value falls back to the default", guard.ConstructorGuard{}, nil, guard.ErrDefaultConstructorGuard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard.Validate(tt.given)

			if tt.expected == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.expected, err)
		})
	}
}

func TestConstructorGuard_InDonor(t *testing.T) {
	t.Run("zero value donor is refused", func(t *testing.T) {
		var d donor.Donor
		require.ErrorIs(t, d.Validate(), donor.ErrDonorIsNotConstructed)
	})

	t.Run("constructor and restore both arm the guard", func(t *testing.T) {
		d, err := donor.NewDonor(kernel.NewUUID(), "Cafe Luna", "555-0100", "Old Town", donor.TypeRestaurant, "luna")
		require.NoError(t, err)
		require.NoError(t, d.Validate())

		restored, err := donor.Restore(d.Snapshot())
		require.NoError(t, err)
		require.NoError(t, restored.Validate())
	})

	t.Run("guard survives copying the value", func(t *testing.T) {
		d, err := donor.NewDonor(kernel.NewUUID(), "Corner Market", "555-0102", "Harbour Rd", donor.TypeGrocery, "sol")
		require.NoError(t, err)

		copied := *d
		require.NoError(t, copied.Validate())
	})
}

func TestConstructorGuard_InCommand(t *testing.T) {
	var zero commands.DonationActionCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrDonationActionCommandIsNotConstructed)

	p, err := kernel.NewPrincipal("maria", kernel.RoleStaff)
	require.NoError(t, err)
	cmd, err := commands.NewDonationActionCommand(p, kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
}
