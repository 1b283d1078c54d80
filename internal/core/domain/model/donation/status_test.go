package donation_test

import (
	"fmt"
	"testing"

	"donations/internal/core/domain/model/donation"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []donation.Status{
	donation.Pending,
	donation.Rejected,
	donation.Collected,
	donation.Assigned,
	donation.InTransit,
	donation.Delivered,
	donation.Processed,
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate every named status", func(t *testing.T) {
		for _, s := range allStatuses {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject Unknown and out of range values", func(t *testing.T) {
		for _, s := range []donation.Status{donation.Unknown, donation.Status(-1), donation.Status(42)} {
			err := s.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should round trip names", func(t *testing.T) {
		for _, s := range allStatuses {
			parsed, err := donation.ParseStatus(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := donation.ParseStatus("LOST")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

// Every transition method is checked against every status: it must succeed
// exactly on the listed edges and fail with InvalidStateError elsewhere.
func TestStatus_TransitionsFollowEdges(t *testing.T) {
	type transition struct {
		name  string
		apply func(donation.Status) (donation.Status, error)
		edges map[donation.Status]donation.Status
	}

	transitions := []transition{
		{"Accept", donation.Status.Accept, map[donation.Status]donation.Status{
			donation.Pending: donation.Collected,
		}},
		{"Reject", donation.Status.Reject, map[donation.Status]donation.Status{
			donation.Pending: donation.Rejected,
		}},
		{"AssignDelivery", donation.Status.AssignDelivery, map[donation.Status]donation.Status{
			donation.Collected: donation.Assigned,
		}},
		{"PickUp", donation.Status.PickUp, map[donation.Status]donation.Status{
			donation.Assigned: donation.InTransit,
		}},
		{"Deliver", donation.Status.Deliver, map[donation.Status]donation.Status{
			donation.InTransit: donation.Delivered,
		}},
		{"RevertToCollected", donation.Status.RevertToCollected, map[donation.Status]donation.Status{
			donation.Assigned:  donation.Collected,
			donation.InTransit: donation.Collected,
		}},
		{"ResetToCollected", donation.Status.ResetToCollected, map[donation.Status]donation.Status{
			donation.Collected: donation.Collected,
			donation.Assigned:  donation.Collected,
			donation.InTransit: donation.Collected,
			donation.Delivered: donation.Collected,
			donation.Processed: donation.Collected,
		}},
		{"Process", donation.Status.Process, map[donation.Status]donation.Status{
			donation.Delivered: donation.Processed,
		}},
	}

	for _, tr := range transitions {
		for _, from := range append([]donation.Status{donation.Unknown}, allStatuses...) {
			t.Run(fmt.Sprintf("%s from %s", tr.name, from), func(t *testing.T) {
				got, err := tr.apply(from)

				want, allowed := tr.edges[from]
				if allowed {
					require.NoError(t, err)
					assert.Equal(t, want, got)
					return
				}
				require.ErrorIs(t, err, errs.ErrInvalidState)
				assert.Equal(t, donation.Unknown, got)
			})
		}
	}
}

func TestStatus_CanChangeCenter(t *testing.T) {
	for _, s := range allStatuses {
		want := s == donation.Pending || s == donation.Collected
		assert.Equal(t, want, s.CanChangeCenter(), s.String())
	}
}

func TestStatus_CountsTowardLoad(t *testing.T) {
	assert.False(t, donation.Rejected.CountsTowardLoad())
	assert.False(t, donation.Unknown.CountsTowardLoad())
	assert.True(t, donation.Pending.CountsTowardLoad())
	assert.True(t, donation.Delivered.CountsTowardLoad())
}
