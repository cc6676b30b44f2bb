package service_test

import (
	"time"

	"github.com/Behyna/sms-services/scheduler/internal/model"
	"github.com/Behyna/sms-services/scheduler/internal/validation"
	"github.com/stretchr/testify/mock"
)

var (
	loc = time.FixedZone("IST", 5*3600+1800)
	// 15:04 in loc
	now = time.Date(2026, 10, 14, 9, 34, 0, 0, time.UTC)
)

func fixedClock() time.Time { return now }

func createValidator() *validation.Validator {
	return validation.NewValidator(validation.CreateRules, loc, validation.WithClock(fixedClock))
}

func editValidator() *validation.Validator {
	return validation.NewValidator(validation.EditRules, loc, validation.WithClock(fixedClock))
}

func sameInstant(expected time.Time) interface{} {
	return mock.MatchedBy(func(t time.Time) bool { return t.Equal(expected) })
}

func sampleMessages() []model.Message {
	return []model.Message{
		{
			ID:          7,
			PhoneNumber: "+911234512345",
			Content:     "Happy Coding",
			ScheduledAt: time.Date(2026, 10, 15, 4, 30, 0, 0, time.UTC),
			Status:      model.MessageStatusPending,
		},
		{
			ID:          8,
			PhoneNumber: "+15551234567",
			Content:     "Standup at ten",
			ScheduledAt: time.Date(2026, 10, 13, 4, 30, 0, 0, time.UTC),
			Status:      model.MessageStatusSent,
		},
		{
			ID:          9,
			PhoneNumber: "+447700900123",
			Content:     "Invoice overdue",
			ScheduledAt: time.Date(2026, 10, 12, 4, 30, 0, 0, time.UTC),
			Status:      model.MessageStatusFailed,
		},
	}
}

func without(messages []model.Message, id int64) []model.Message {
	out := make([]model.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.ID != id {
			out = append(out, msg)
		}
	}
	return out
}
