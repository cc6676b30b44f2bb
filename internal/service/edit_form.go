package service

import (
	"context"
	"sync"

	"github.com/Behyna/sms-services/scheduler/internal/constants"
	"github.com/Behyna/sms-services/scheduler/internal/datetime"
	"github.com/Behyna/sms-services/scheduler/internal/model"
	"github.com/Behyna/sms-services/scheduler/internal/validation"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"go.uber.org/zap"
)

// EditForm edits one existing message. It is pre-filled from the record with
// the scheduled time shown as local wall-clock input.
type EditForm struct {
	form
	message   model.Message
	client    schedulerapi.Client
	notifier  Notifier
	logger    *zap.Logger
	onUpdated func(ctx context.Context)
	onClose   func()

	closeOnce sync.Once
	closed    bool
}

func NewEditForm(message model.Message, client schedulerapi.Client, validator validation.IValidator,
	notifier Notifier, logger *zap.Logger, onUpdated func(ctx context.Context), onClose func()) *EditForm {
	e := &EditForm{
		form:      form{validator: validator},
		message:   message,
		client:    client,
		notifier:  notifier,
		logger:    logger,
		onUpdated: onUpdated,
		onClose:   onClose,
	}

	e.fields = validation.Input{
		PhoneNumber: message.PhoneNumber,
		Content:     message.Content,
		ScheduledAt: datetime.ToInput(message.ScheduledAt, validator.Location()),
	}

	return e
}

func (e *EditForm) MessageID() int64 {
	return e.message.ID
}

func (e *EditForm) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Cancel discards the edits without calling the backend.
func (e *EditForm) Cancel() {
	e.logger.Debug("Edit cancelled", zap.Int64("messageID", e.message.ID))
	e.close()
}

// Submit validates and replaces the three editable fields of the message.
// Status is left to the backend.
func (e *EditForm) Submit(ctx context.Context) (model.Message, error) {
	if e.IsClosed() {
		return model.Message{}, ErrFormClosed
	}

	submission, err := e.begin()
	if err != nil {
		e.logger.Debug("Edit submission rejected",
			zap.Int64("messageID", e.message.ID),
			zap.Error(err))
		return model.Message{}, err
	}

	msg, err := e.client.Update(ctx, e.message.ID, submission.PhoneNumber, submission.Content, submission.ScheduledAt)
	if err != nil {
		e.end(false)
		e.logger.Error("Failed to update message",
			zap.Error(err),
			zap.Int64("messageID", e.message.ID))
		e.notifier.Error(failureMessage(err, constants.MsgUpdateFailed))
		return model.Message{}, err
	}

	e.end(false)
	e.logger.Info("Message updated", zap.Int64("messageID", e.message.ID))
	e.notifier.Success(constants.MsgMessageUpdated)

	if e.onUpdated != nil {
		e.onUpdated(ctx)
	}
	e.close()

	return msg, nil
}

func (e *EditForm) close() {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()

		if e.onClose != nil {
			e.onClose()
		}
	})
}
