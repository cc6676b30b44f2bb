package service

import (
	"context"

	"github.com/Behyna/sms-services/scheduler/internal/constants"
	"github.com/Behyna/sms-services/scheduler/internal/model"
	"github.com/Behyna/sms-services/scheduler/internal/validation"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"go.uber.org/zap"
)

// SchedulerForm is the create-message form.
type SchedulerForm struct {
	form
	client      schedulerapi.Client
	notifier    Notifier
	logger      *zap.Logger
	onScheduled func(ctx context.Context)
}

func NewSchedulerForm(client schedulerapi.Client, validator validation.IValidator, notifier Notifier,
	logger *zap.Logger, onScheduled func(ctx context.Context)) *SchedulerForm {
	return &SchedulerForm{
		form:        form{validator: validator},
		client:      client,
		notifier:    notifier,
		logger:      logger,
		onScheduled: onScheduled,
	}
}

// Submit validates and creates the message. Fields are cleared only on
// success so a failed attempt can be retried as typed.
func (s *SchedulerForm) Submit(ctx context.Context) (model.Message, error) {
	submission, err := s.begin()
	if err != nil {
		s.logger.Debug("Schedule submission rejected", zap.Error(err))
		return model.Message{}, err
	}

	msg, err := s.client.Create(ctx, submission.PhoneNumber, submission.Content, submission.ScheduledAt)
	if err != nil {
		s.end(false)
		s.logger.Error("Failed to schedule message",
			zap.Error(err),
			zap.String("to", submission.PhoneNumber))
		s.notifier.Error(failureMessage(err, constants.MsgScheduleFailed))
		return model.Message{}, err
	}

	s.end(true)
	s.logger.Info("Message scheduled",
		zap.Int64("messageID", msg.ID),
		zap.String("to", submission.PhoneNumber),
		zap.Time("scheduledAt", submission.ScheduledAt))
	s.notifier.Success(constants.MsgMessageScheduled)

	if s.onScheduled != nil {
		s.onScheduled(ctx)
	}

	return msg, nil
}
