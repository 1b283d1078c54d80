package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLoadReconciler struct{ mock.Mock }

func (m *MockLoadReconciler) Handle(ctx context.Context, cmd commands.ReconcileCenterLoadsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func asAdmin() any {
	return mock.MatchedBy(func(cmd commands.ReconcileCenterLoadsCommand) bool {
		return cmd.Principal().IsAdmin()
	})
}

func TestCapacityReconciliationJob_Run(t *testing.T) {
	t.Run("logs corrected centers", func(t *testing.T) {
		var out bytes.Buffer
		handler := &MockLoadReconciler{}
		handler.On("Handle", mock.Anything, asAdmin()).Return(2, nil).Once()

		job := jobs.NewCapacityReconciliationJob(handler, "", slog.New(slog.NewTextHandler(&out, nil)))
		job.Run(t.Context())

		handler.AssertExpectations(t)
		assert.Contains(t, out.String(), "centers=2")
	})

	t.Run("stays quiet when nothing drifted", func(t *testing.T) {
		var out bytes.Buffer
		handler := &MockLoadReconciler{}
		handler.On("Handle", mock.Anything, asAdmin()).Return(0, nil).Once()

		job := jobs.NewCapacityReconciliationJob(handler, "", slog.New(slog.NewTextHandler(&out, nil)))
		job.Run(t.Context())

		assert.Empty(t, out.String())
	})

	t.Run("logs handler failures", func(t *testing.T) {
		var out bytes.Buffer
		handler := &MockLoadReconciler{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("database is down")).Once()

		job := jobs.NewCapacityReconciliationJob(handler, "", slog.New(slog.NewTextHandler(&out, nil)))
		job.Run(t.Context())

		assert.Contains(t, out.String(), "database is down")
		assert.Contains(t, out.String(), "level=ERROR")
	})
}

func TestCapacityReconciliationJob_Start(t *testing.T) {
	t.Run("rejects an invalid schedule", func(t *testing.T) {
		job := jobs.NewCapacityReconciliationJob(&MockLoadReconciler{}, "every tuesday", slog.Default())

		require.Error(t, job.Start())
	})

	t.Run("starts and stops", func(t *testing.T) {
		manager := jobs.NewJobManager(&MockLoadReconciler{}, "0 0 3 * * *", slog.Default())

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})
}
