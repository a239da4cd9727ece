package commands_test

import (
	"testing"

	"cvneat/internal/core/application/usecases/commands"
	"cvneat/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "Marie")
	require.NoError(t, err)

	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateCourierCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewCreateCourierCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "")
	require.ErrorIs(t, err, commands.ErrCourierNameIsRequired)

	var invalidID kernel.UUID
	_, err = commands.NewCreateCourierCommand(invalidID, "Marie")
	require.Error(t, err)
}

func TestSetCourierAvailabilityCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	aggregate := buildAvailableCourier(t, courierID)
	aggregate.SetAvailability(false)

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, true)
	require.NoError(t, err)

	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, courierID).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetCourierAvailabilityCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, aggregate.IsAvailable())
	uow.AssertExpectations(t)
}
