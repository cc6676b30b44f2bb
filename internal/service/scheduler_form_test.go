package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Behyna/sms-services/scheduler/internal/constants"
	"github.com/Behyna/sms-services/scheduler/internal/mocks"
	"github.com/Behyna/sms-services/scheduler/internal/model"
	"github.com/Behyna/sms-services/scheduler/internal/service"
	"github.com/Behyna/sms-services/scheduler/internal/validation"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSchedulerForm_Submit(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	input := validation.Input{
		PhoneNumber: "+911234512345",
		Content:     "Hello!!!!!",
		ScheduledAt: "2026-10-14T16:00",
	}
	// 16:00 IST
	expectedAt := time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)

	t.Run("creates the message and clears the form", func(t *testing.T) {
		mockClient := &mocks.SchedulerClient{}
		mockNotifier := &mocks.Notifier{}

		scheduled := 0
		form := service.NewSchedulerForm(mockClient, createValidator(), mockNotifier, logger,
			func(context.Context) { scheduled++ })
		form.SetFields(input)

		created := model.Message{ID: 42, PhoneNumber: input.PhoneNumber, Status: model.MessageStatusPending}
		mockClient.On("Create", ctx, input.PhoneNumber, input.Content, sameInstant(expectedAt)).
			Return(created, nil).Once()
		mockNotifier.On("Success", constants.MsgMessageScheduled).Once()

		msg, err := form.Submit(ctx)

		require.NoError(t, err)
		assert.Equal(t, created, msg)
		assert.Equal(t, 1, scheduled)
		assert.Equal(t, service.FormState{Fields: validation.Input{}, Errors: validation.Errors{}}, form.State())
		mockClient.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("validation errors block the request", func(t *testing.T) {
		mockClient := &mocks.SchedulerClient{}
		mockNotifier := &mocks.Notifier{}

		form := service.NewSchedulerForm(mockClient, createValidator(), mockNotifier, logger, nil)
		form.SetFields(validation.Input{PhoneNumber: "01234", Content: "Hello!!!!!!", ScheduledAt: "2026-10-14T15:04"})

		_, err := form.Submit(ctx)

		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Len(t, errs, 3)

		state := form.State()
		assert.Equal(t, "Message cannot exceed 10 characters", state.Errors[validation.FieldContent])
		assert.Equal(t, "01234", state.Fields.PhoneNumber)
		assert.False(t, state.Submitting)

		mockClient.AssertNumberOfCalls(t, "Create", 0)
		mockNotifier.AssertNumberOfCalls(t, "Error", 0)
	})

	t.Run("a later valid submit clears old field errors", func(t *testing.T) {
		mockClient := &mocks.SchedulerClient{}
		mockNotifier := &mocks.Notifier{}

		form := service.NewSchedulerForm(mockClient, createValidator(), mockNotifier, logger, nil)
		form.SetFields(validation.Input{PhoneNumber: "abc", Content: input.Content, ScheduledAt: input.ScheduledAt})
		_, err := form.Submit(ctx)
		require.Error(t, err)

		mockClient.On("Create", ctx, input.PhoneNumber, input.Content, sameInstant(expectedAt)).
			Return(model.Message{}, errors.New("boom")).Once()
		mockNotifier.On("Error", "boom").Once()

		form.SetPhoneNumber(input.PhoneNumber)
		_, err = form.Submit(ctx)

		require.EqualError(t, err, "boom")
		assert.Empty(t, form.State().Errors)
	})

	t.Run("request failure keeps the fields", func(t *testing.T) {
		mockClient := &mocks.SchedulerClient{}
		mockNotifier := &mocks.Notifier{}

		scheduled := 0
		form := service.NewSchedulerForm(mockClient, createValidator(), mockNotifier, logger,
			func(context.Context) { scheduled++ })
		form.SetFields(input)

		reqErr := &schedulerapi.RequestError{Message: "rate limit exceeded", StatusCode: 429}
		mockClient.On("Create", ctx, input.PhoneNumber, input.Content, sameInstant(expectedAt)).
			Return(model.Message{}, reqErr).Once()
		mockNotifier.On("Error", "rate limit exceeded").Once()

		_, err := form.Submit(ctx)

		assert.Equal(t, reqErr, err)
		assert.Equal(t, 0, scheduled)
		assert.Equal(t, input, form.State().Fields)
		assert.False(t, form.IsSubmitting())
		mockNotifier.AssertExpectations(t)
	})

	t.Run("duplicate submit is a no-op while in flight", func(t *testing.T) {
		mockClient := &mocks.SchedulerClient{}
		mockNotifier := &mocks.Notifier{}

		form := service.NewSchedulerForm(mockClient, createValidator(), mockNotifier, logger, nil)
		form.SetFields(input)

		release := make(chan struct{})
		mockClient.On("Create", ctx, input.PhoneNumber, input.Content, sameInstant(expectedAt)).
			Run(func(mock.Arguments) { <-release }).
			Return(model.Message{ID: 1}, nil).Once()
		mockNotifier.On("Success", constants.MsgMessageScheduled).Once()

		done := make(chan error, 1)
		go func() {
			_, err := form.Submit(ctx)
			done <- err
		}()

		require.Eventually(t, form.IsSubmitting, time.Second, time.Millisecond)

		_, err := form.Submit(ctx)
		assert.ErrorIs(t, err, service.ErrSubmissionInProgress)

		close(release)
		require.NoError(t, <-done)

		mockClient.AssertNumberOfCalls(t, "Create", 1)
		assert.False(t, form.IsSubmitting())
	})
}

func TestSchedulerForm_MinScheduledInput(t *testing.T) {
	form := service.NewSchedulerForm(&mocks.SchedulerClient{}, createValidator(), &mocks.Notifier{}, zap.NewNop(), nil)

	assert.Equal(t, "2026-10-14T15:04", form.MinScheduledInput())
}
