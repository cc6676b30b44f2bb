package service

import (
	"context"
	"time"

	"github.com/Behyna/sms-services/scheduler/internal/metrics"
	"github.com/Behyna/sms-services/scheduler/internal/model"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"go.uber.org/zap"
)

type instrumentedClient struct {
	next    schedulerapi.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewInstrumentedClient wraps a scheduler API client with request logging and
// metrics. It never retries.
func NewInstrumentedClient(next schedulerapi.Client, m *metrics.Metrics, logger *zap.Logger) schedulerapi.Client {
	return &instrumentedClient{next: next, metrics: m, logger: logger}
}

func (c *instrumentedClient) Create(ctx context.Context, phoneNumber, content string,
	scheduledAt time.Time) (model.Message, error) {
	start := time.Now()
	msg, err := c.next.Create(ctx, phoneNumber, content, scheduledAt)
	c.observe("create", start, err, zap.String("to", phoneNumber), zap.Int64("messageID", msg.ID))
	return msg, err
}

func (c *instrumentedClient) List(ctx context.Context) ([]model.Message, error) {
	start := time.Now()
	messages, err := c.next.List(ctx)
	c.observe("list", start, err, zap.Int("count", len(messages)))
	if err == nil && c.metrics != nil {
		c.metrics.SetMessagesListed(len(messages))
	}
	return messages, err
}

func (c *instrumentedClient) Update(ctx context.Context, id int64, phoneNumber, content string,
	scheduledAt time.Time) (model.Message, error) {
	start := time.Now()
	msg, err := c.next.Update(ctx, id, phoneNumber, content, scheduledAt)
	c.observe("update", start, err, zap.Int64("messageID", id))
	return msg, err
}

func (c *instrumentedClient) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := c.next.Delete(ctx, id)
	c.observe("delete", start, err, zap.Int64("messageID", id))
	return err
}

func (c *instrumentedClient) observe(operation string, start time.Time, err error, fields ...zap.Field) {
	duration := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordBackendRequest(operation, err, duration)
	}

	fields = append(fields, zap.String("operation", operation), zap.Duration("duration", duration))
	if err != nil {
		c.logger.Warn("Scheduler API call failed", append(fields, zap.Error(err))...)
		return
	}
	c.logger.Debug("Scheduler API call succeeded", fields...)
}
