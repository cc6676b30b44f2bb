package mocks

import (
	"context"
	"time"

	"github.com/Behyna/sms-services/scheduler/internal/model"
	"github.com/stretchr/testify/mock"
)

type SchedulerClient struct {
	mock.Mock
}

func (m *SchedulerClient) Create(ctx context.Context, phoneNumber, content string, scheduledAt time.Time) (model.Message, error) {
	args := m.Called(ctx, phoneNumber, content, scheduledAt)
	return args.Get(0).(model.Message), args.Error(1)
}

func (m *SchedulerClient) List(ctx context.Context) ([]model.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *SchedulerClient) Update(ctx context.Context, id int64, phoneNumber, content string, scheduledAt time.Time) (model.Message, error) {
	args := m.Called(ctx, id, phoneNumber, content, scheduledAt)
	return args.Get(0).(model.Message), args.Error(1)
}

func (m *SchedulerClient) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
