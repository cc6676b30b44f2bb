package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Behyna/sms-services/scheduler/internal/api"
	v1 "github.com/Behyna/sms-services/scheduler/internal/api/v1"
	"github.com/Behyna/sms-services/scheduler/internal/config"
	"github.com/Behyna/sms-services/scheduler/internal/constants"
	"github.com/Behyna/sms-services/scheduler/internal/metrics"
	"github.com/Behyna/sms-services/scheduler/internal/mocks"
	"github.com/Behyna/sms-services/scheduler/internal/model"
	"github.com/Behyna/sms-services/scheduler/internal/service"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var loc = time.FixedZone("IST", 5*3600+1800)

type envelope struct {
	Successful bool              `json:"successful"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields"`
	TrackID    string            `json:"x_track_id"`
	Result     json.RawMessage   `json:"result"`
}

type testServer struct {
	app    *fiber.App
	client *mocks.SchedulerClient
	page   *service.Page
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zap.NewNop()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	client := &mocks.SchedulerClient{}
	queue := service.NewNotificationQueue(10, logger, m)
	page := service.NewPage(client, queue, logger, m, service.PageConfig{
		Location: loc,
		Now:      func() time.Time { return time.Date(2026, 10, 14, 9, 34, 0, 0, time.UTC) },
	})

	app := api.NewApp(&config.Config{Web: config.Web{ServiceName: "sms-scheduler-test"}}, m, logger)
	api.SetupRoutes(app, v1.NewHandler(logger, page, queue), reg)

	return &testServer{app: app, client: client, page: page}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &env))
	}

	return resp, env
}

func messages() []model.Message {
	return []model.Message{
		{ID: 7, PhoneNumber: "+911234512345", Content: "Happy Coding", Status: model.MessageStatusPending,
			ScheduledAt: time.Date(2026, 10, 15, 4, 30, 0, 0, time.UTC)},
		{ID: 8, PhoneNumber: "+15551234567", Content: "Standup", Status: model.MessageStatusSent,
			ScheduledAt: time.Date(2026, 10, 13, 4, 30, 0, 0, time.UTC)},
	}
}

func TestPingAndHealth(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "pong", string(body))

	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)

	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "sms-scheduler-test", health["service"])
}

func TestSchedule(t *testing.T) {
	t.Run("validation errors per field", func(t *testing.T) {
		s := newTestServer(t)

		resp, env := s.do(t, http.MethodPost, "/ui/schedule",
			`{"phone_number":"12ab","content":"","scheduled_at":"2026-10-14T15:00"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeValidationFailed, env.Code)
		assert.Equal(t, map[string]string{
			"phone_number": constants.MsgPhoneInvalidWithCode,
			"content":      constants.MsgContentRequired,
			"scheduled_at": constants.MsgScheduledAtNotInFuture,
		}, env.Fields)
		assert.NotEmpty(t, env.TrackID)
		s.client.AssertNumberOfCalls(t, "Create", 0)
	})

	t.Run("success switches to the history tab", func(t *testing.T) {
		s := newTestServer(t)

		created := model.Message{ID: 11, PhoneNumber: "+911234512345", Content: "Hi", Status: model.MessageStatusPending}
		s.client.On("Create", mock.Anything, "+911234512345", "Hi", mock.AnythingOfType("time.Time")).
			Return(created, nil).Once()
		s.client.On("List", mock.Anything).Return(append(messages(), created), nil).Once()

		resp, env := s.do(t, http.MethodPost, "/ui/schedule",
			`{"phone_number":"+911234512345","content":"Hi","scheduled_at":"2026-10-14T18:00"}`)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.True(t, env.Successful)
		assert.Equal(t, constants.MsgMessageScheduled, env.Message)

		var msg model.Message
		require.NoError(t, json.Unmarshal(env.Result, &msg))
		assert.Equal(t, int64(11), msg.ID)

		_, env = s.do(t, http.MethodGet, "/ui/state", "")
		var state service.PageState
		require.NoError(t, json.Unmarshal(env.Result, &state))
		assert.Equal(t, service.TabMessages, state.ActiveTab)
		assert.Equal(t, 3, state.MessageCount)

		_, env = s.do(t, http.MethodGet, "/ui/notifications", "")
		var notifications []service.Notification
		require.NoError(t, json.Unmarshal(env.Result, &notifications))
		require.Len(t, notifications, 1)
		assert.Equal(t, constants.MsgMessageScheduled, notifications[0].Message)
	})

	t.Run("backend error is surfaced", func(t *testing.T) {
		s := newTestServer(t)

		s.client.On("Create", mock.Anything, "+911234512345", "Hi", mock.AnythingOfType("time.Time")).
			Return(model.Message{}, &schedulerapi.RequestError{Message: "Invalid phone number", StatusCode: 400}).Once()

		resp, env := s.do(t, http.MethodPost, "/ui/schedule",
			`{"phone_number":"+911234512345","content":"Hi","scheduled_at":"2026-10-14T18:00"}`)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeBackendRequestFailed, env.Code)
		assert.Equal(t, "Invalid phone number", env.Message)

		_, env = s.do(t, http.MethodGet, "/ui/schedule", "")
		var form service.FormState
		require.NoError(t, json.Unmarshal(env.Result, &form))
		assert.Equal(t, "+911234512345", form.Fields.PhoneNumber)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t)

		resp, env := s.do(t, http.MethodPost, "/ui/schedule", `{"phone_number":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, constants.ErrCodeInvalidRequestBody, env.Code)
	})
}

func TestMessages(t *testing.T) {
	s := newTestServer(t)
	s.client.On("List", mock.Anything).Return(messages(), nil).Once()

	resp, env := s.do(t, http.MethodPost, "/ui/messages/refresh", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, env = s.do(t, http.MethodGet, "/ui/messages?search=SENT", "")

	var list v1.MessagesResponse
	require.NoError(t, json.Unmarshal(env.Result, &list))
	assert.Equal(t, "SENT", list.Search)
	require.Len(t, list.Rows, 1)
	assert.Equal(t, int64(8), list.Rows[0].Message.ID)
	assert.Equal(t, "Sent", list.Rows[0].StatusLabel)

	_, env = s.do(t, http.MethodGet, "/ui/messages", "")
	require.NoError(t, json.Unmarshal(env.Result, &list))
	assert.Equal(t, "SENT", list.Search)

	_, env = s.do(t, http.MethodGet, "/ui/messages?search=", "")
	require.NoError(t, json.Unmarshal(env.Result, &list))
	assert.Len(t, list.Rows, 2)
}

func TestRefreshFailure(t *testing.T) {
	s := newTestServer(t)
	s.client.On("List", mock.Anything).
		Return([]model.Message(nil), &schedulerapi.RequestError{Message: schedulerapi.ErrMsgTimeout, Err: errors.New("deadline")}).Once()

	resp, env := s.do(t, http.MethodPost, "/ui/messages/refresh", "")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, schedulerapi.ErrMsgTimeout, env.Message)
}

func TestEditMessage(t *testing.T) {
	s := newTestServer(t)
	s.client.On("List", mock.Anything).Return(messages(), nil)
	require.NoError(t, s.page.Load(t.Context()))

	_, env := s.do(t, http.MethodGet, "/ui/messages/7/edit", "")
	var form v1.EditFormResponse
	require.NoError(t, json.Unmarshal(env.Result, &form))
	assert.Equal(t, int64(7), form.MessageID)
	assert.Equal(t, "2026-10-15T10:00", form.Fields.ScheduledAt)

	updated := messages()[0]
	updated.Content = "Happy Coding, again"
	s.client.On("Update", mock.Anything, int64(7), "+911234512345", "Happy Coding, again",
		mock.MatchedBy(func(at time.Time) bool { return at.Equal(messages()[0].ScheduledAt) })).
		Return(updated, nil).Once()

	resp, env := s.do(t, http.MethodPut, "/ui/messages/7", `{"content":"Happy Coding, again"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, constants.MsgMessageUpdated, env.Message)
	assert.Nil(t, s.page.List().Editing())

	resp, _ = s.do(t, http.MethodDelete, "/ui/messages/8/edit", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, env = s.do(t, http.MethodGet, "/ui/messages/99/edit", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, constants.ErrCodeMessageNotFound, env.Code)
}

func TestDeleteMessage(t *testing.T) {
	s := newTestServer(t)
	s.client.On("List", mock.Anything).Return(messages(), nil).Once()
	require.NoError(t, s.page.Load(t.Context()))

	resp, env := s.do(t, http.MethodDelete, "/ui/messages/7", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deleted":false}`, string(env.Result))
	s.client.AssertNumberOfCalls(t, "Delete", 0)

	s.client.On("Delete", mock.Anything, int64(7)).Return(nil).Once()
	s.client.On("List", mock.Anything).Return(messages()[1:], nil).Once()

	resp, env = s.do(t, http.MethodDelete, "/ui/messages/7?confirm=true", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deleted":true}`, string(env.Result))
	assert.Equal(t, constants.MsgMessageDeleted, env.Message)
	assert.Len(t, s.page.List().Messages(), 1)

	resp, env = s.do(t, http.MethodDelete, "/ui/messages/7?confirm=true", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, constants.ErrCodeMessageNotFound, env.Code)

	resp, env = s.do(t, http.MethodDelete, "/ui/messages/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.ErrCodeInvalidRequestBody, env.Code)
	s.client.AssertExpectations(t)
}

func TestSetTab(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodPut, "/ui/state/tab", `{"tab":"messages"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, service.TabMessages, s.page.ActiveTab())

	resp, env = s.do(t, http.MethodPut, "/ui/state/tab", `{"tab":"settings"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.ErrCodeUnknownTab, env.Code)
}

func TestUnknownRouteAndMetrics(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, constants.ErrCodeRouteNotFound, env.Code)
	assert.NotEmpty(t, resp.Header.Get(schedulerapi.TrackIDHeader))

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "smsscheduler_http_requests_total")
	assert.Contains(t, string(body), `status_code="404"`)
}
