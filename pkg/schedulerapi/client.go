package schedulerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Behyna/sms-services/scheduler/internal/model"
	"github.com/Behyna/sms-services/scheduler/pkg/httpclient"
	"github.com/google/uuid"
)

const (
	ScheduleEndpoint = "/schedule"
	MessagesEndpoint = "/messages"

	TrackIDHeader = "X-Track-ID"

	// TimestampLayout is the UTC ISO-8601 form exchanged with the backend.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

type Client interface {
	Create(ctx context.Context, phoneNumber, content string, scheduledAt time.Time) (model.Message, error)
	List(ctx context.Context) ([]model.Message, error)
	Update(ctx context.Context, id int64, phoneNumber, content string, scheduledAt time.Time) (model.Message, error)
	Delete(ctx context.Context, id int64) error
}

type client struct {
	http   httpclient.HTTPClient
	config Config
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &client{http: httpClient, config: cfg}
}

// FormatTimestamp renders t the way the backend expects scheduled_at.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func (c *client) Create(ctx context.Context, phoneNumber, content string, scheduledAt time.Time) (model.Message, error) {
	body, err := encode(ScheduleMessageRequest{
		PhoneNumber: phoneNumber,
		Content:     content,
		ScheduledAt: FormatTimestamp(scheduledAt),
	})
	if err != nil {
		return model.Message{}, err
	}

	resp, err := c.http.Post(ctx, c.config.BaseURL+ScheduleEndpoint, body, c.headers())
	if err != nil {
		return model.Message{}, transportError(err)
	}
	defer resp.Body.Close()

	return decodeMessage(resp)
}

func (c *client) List(ctx context.Context) ([]model.Message, error) {
	resp, err := c.http.Get(ctx, c.config.BaseURL+MessagesEndpoint, c.headers())
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, statusError(resp.StatusCode, resp.Body)
	}

	var response ListMessagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, decodeError(resp.StatusCode, err)
	}

	if response.Messages == nil {
		return []model.Message{}, nil
	}

	return response.Messages, nil
}

func (c *client) Update(ctx context.Context, id int64, phoneNumber, content string,
	scheduledAt time.Time) (model.Message, error) {
	body, err := encode(ScheduleMessageRequest{
		PhoneNumber: phoneNumber,
		Content:     content,
		ScheduledAt: FormatTimestamp(scheduledAt),
	})
	if err != nil {
		return model.Message{}, err
	}

	resp, err := c.http.Put(ctx, c.messageURL(id), body, c.headers())
	if err != nil {
		return model.Message{}, transportError(err)
	}
	defer resp.Body.Close()

	return decodeMessage(resp)
}

func (c *client) Delete(ctx context.Context, id int64) error {
	resp, err := c.http.Delete(ctx, c.messageURL(id), c.headers())
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return statusError(resp.StatusCode, resp.Body)
	}

	return nil
}

func (c *client) messageURL(id int64) string {
	return fmt.Sprintf("%s%s/%d", c.config.BaseURL, MessagesEndpoint, id)
}

func (c *client) headers() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		TrackIDHeader:  uuid.NewString(),
	}
}

func encode(request ScheduleMessageRequest) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return nil, newRequestError(fmt.Sprintf("encoding error: %v", err), 0, err)
	}

	return &buf, nil
}

func decodeMessage(resp *http.Response) (model.Message, error) {
	if !isSuccess(resp.StatusCode) {
		return model.Message{}, statusError(resp.StatusCode, resp.Body)
	}

	var response MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return model.Message{}, decodeError(resp.StatusCode, err)
	}

	return response.Data, nil
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
