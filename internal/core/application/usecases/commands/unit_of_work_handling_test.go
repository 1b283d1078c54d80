package commands_test

import (
	"context"
	"errors"
	"testing"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func commandsAccess() services.AccessPolicy {
	return services.NewAccessPolicy()
}

type MockRecipientRepository struct{ mock.Mock }

func (m *MockRecipientRepository) Add(ctx context.Context, r *recipient.Recipient) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipientRepository) Update(ctx context.Context, r *recipient.Recipient) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipientRepository) Get(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipient.Recipient), args.Error(1)
}

func (m *MockRecipientRepository) List(ctx context.Context, activeOnly bool) ([]*recipient.Recipient, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipient.Recipient), args.Error(1)
}

// MockUoW only serves the recipient repository; the other accessors are not
// reached by the handler under test.
type MockUoW struct {
	mock.Mock
	commands.UoW
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RecipientRepository() ports.RecipientRepository {
	args := m.Called()
	return args.Get(0).(ports.RecipientRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func newRecipientCommand(t *testing.T) commands.CreateRecipientCommand {
	t.Helper()
	cmd, err := commands.NewCreateRecipientCommand(
		principal(t, staffName, kernel.RoleStaff), kernel.NewUUID(), "Hope Shelter", recipient.TypeShelter, "Elm St 7", recipient.Contact{},
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateRecipientCommandHandler_Success(t *testing.T) {
	ctx := t.Context()
	repo := &MockRecipientRepository{}
	uow := &MockUoW{}
	factory := &MockUoWFactory{}
	cmd := newRecipientCommand(t)

	factory.On("Create").Return(uow)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("RecipientRepository").Return(repo),
		repo.On("Add", ctx, mock.MatchedBy(func(r *recipient.Recipient) bool {
			return r.ID() == cmd.RecipientID() && r.IsActive()
		})).Return(nil),
		uow.On("Commit", ctx).Return(nil),
		uow.On("Rollback", ctx).Return(errors.New("no transaction")),
	)

	err := commands.NewCreateRecipientCommandHandler(factory, commandsAccess()).Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateRecipientCommandHandler_AddFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	repo := &MockRecipientRepository{}
	uow := &MockUoW{}
	factory := &MockUoWFactory{}
	addErr := errors.New("disk full")

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("RecipientRepository").Return(repo)
	repo.On("Add", ctx, mock.Anything).Return(addErr)
	uow.On("Rollback", ctx).Return(nil)

	err := commands.NewCreateRecipientCommandHandler(factory, commandsAccess()).Handle(ctx, newRecipientCommand(t))

	require.ErrorIs(t, err, addErr)
	uow.AssertCalled(t, "Rollback", ctx)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateRecipientCommandHandler_BeginAndCommitErrors(t *testing.T) {
	t.Run("begin", func(t *testing.T) {
		ctx := t.Context()
		uow := &MockUoW{}
		factory := &MockUoWFactory{}
		beginErr := errors.New("connection refused")
		factory.On("Create").Return(uow)
		uow.On("Begin", ctx).Return(beginErr)

		err := commands.NewCreateRecipientCommandHandler(factory, commandsAccess()).Handle(ctx, newRecipientCommand(t))

		require.ErrorIs(t, err, beginErr)
		uow.AssertNotCalled(t, "RecipientRepository")
	})

	t.Run("commit", func(t *testing.T) {
		ctx := t.Context()
		repo := &MockRecipientRepository{}
		uow := &MockUoW{}
		factory := &MockUoWFactory{}
		commitErr := errors.New("serialization failure")
		factory.On("Create").Return(uow)
		uow.On("Begin", ctx).Return(nil)
		uow.On("RecipientRepository").Return(repo)
		repo.On("Add", ctx, mock.Anything).Return(nil)
		uow.On("Commit", ctx).Return(commitErr)
		uow.On("Rollback", ctx).Return(nil)

		err := commands.NewCreateRecipientCommandHandler(factory, commandsAccess()).Handle(ctx, newRecipientCommand(t))

		assert.ErrorIs(t, err, commitErr)
	})
}

func TestCreateRecipientCommandHandler_NotConstructedCommand(t *testing.T) {
	factory := &MockUoWFactory{}

	err := commands.NewCreateRecipientCommandHandler(factory, commandsAccess()).Handle(t.Context(), commands.CreateRecipientCommand{})

	require.ErrorIs(t, err, commands.ErrCreateRecipientCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
