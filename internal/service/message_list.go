package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Behyna/sms-services/scheduler/internal/constants"
	"github.com/Behyna/sms-services/scheduler/internal/datetime"
	"github.com/Behyna/sms-services/scheduler/internal/model"
	"github.com/Behyna/sms-services/scheduler/internal/validation"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"go.uber.org/zap"
)

// RowState is the delete affordance of one row:
// idle -> confirming -> (idle | deleting) -> idle. A deleted row disappears
// only when the next refresh no longer returns it.
type RowState string

const (
	RowIdle       RowState = "idle"
	RowConfirming RowState = "confirming"
	RowDeleting   RowState = "deleting"
)

type DeleteOutcome string

const (
	DeleteAborted   DeleteOutcome = "aborted"
	DeleteSucceeded DeleteOutcome = "deleted"
)

type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

type Row struct {
	Message     model.Message `json:"message"`
	StatusLabel string        `json:"status_label"`
	ScheduledAt string        `json:"scheduled_at"`
	State       RowState      `json:"state"`
	Deleting    bool          `json:"deleting"`
}

// FilterMessages keeps messages whose phone number, content or status contains
// term, ignoring case. An empty term keeps everything.
func FilterMessages(messages []model.Message, term string) []model.Message {
	term = strings.ToLower(term)

	filtered := make([]model.Message, 0, len(messages))
	for _, msg := range messages {
		if strings.Contains(strings.ToLower(msg.PhoneNumber), term) ||
			strings.Contains(strings.ToLower(msg.Content), term) ||
			strings.Contains(strings.ToLower(string(msg.Status)), term) {
			filtered = append(filtered, msg)
		}
	}

	return filtered
}

// MessageList renders the list handed to it by the page. It never fetches by
// itself.
type MessageList struct {
	mu       sync.Mutex
	messages []model.Message
	filter   string
	states   map[int64]RowState
	editing  *EditForm

	client        schedulerapi.Client
	editValidator validation.IValidator
	notifier      Notifier
	logger        *zap.Logger
	location      *time.Location
	onUpdated     func(ctx context.Context)
	onDeleted     func(ctx context.Context)
}

func NewMessageList(client schedulerapi.Client, editValidator validation.IValidator, notifier Notifier,
	logger *zap.Logger, onUpdated, onDeleted func(ctx context.Context)) *MessageList {
	return &MessageList{
		messages:      []model.Message{},
		states:        map[int64]RowState{},
		client:        client,
		editValidator: editValidator,
		notifier:      notifier,
		logger:        logger,
		location:      editValidator.Location(),
		onUpdated:     onUpdated,
		onDeleted:     onDeleted,
	}
}

// SetMessages replaces the list. Row states of messages that are gone are
// dropped unless a delete is still in flight for them.
func (l *MessageList) SetMessages(messages []model.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append([]model.Message(nil), messages...)

	present := make(map[int64]struct{}, len(messages))
	for _, msg := range messages {
		present[msg.ID] = struct{}{}
	}
	for id, state := range l.states {
		if _, ok := present[id]; !ok && state == RowIdle {
			delete(l.states, id)
		}
	}
}

func (l *MessageList) Messages() []model.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Message{}, l.messages...)
}

func (l *MessageList) SetFilter(term string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = term
}

func (l *MessageList) Filter() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

func (l *MessageList) Filtered() []model.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return FilterMessages(l.messages, l.filter)
}

func (l *MessageList) Rows() []Row {
	l.mu.Lock()
	defer l.mu.Unlock()

	filtered := FilterMessages(l.messages, l.filter)
	rows := make([]Row, 0, len(filtered))
	for _, msg := range filtered {
		state := l.stateLocked(msg.ID)
		rows = append(rows, Row{
			Message:     msg,
			StatusLabel: msg.Status.StatusLabel(),
			ScheduledAt: datetime.Display(msg.ScheduledAt, l.location),
			State:       state,
			Deleting:    state == RowDeleting,
		})
	}

	return rows
}

func (l *MessageList) RowState(id int64) RowState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stateLocked(id)
}

// Delete asks for confirmation and deletes one message. Only this row is marked
// busy while the request is in flight; the row stays listed until the refresh
// triggered on success no longer returns it.
func (l *MessageList) Delete(ctx context.Context, id int64, confirmer Confirmer) (DeleteOutcome, error) {
	l.mu.Lock()
	if _, ok := l.findLocked(id); !ok {
		l.mu.Unlock()
		return "", ErrMessageNotFound
	}
	if l.stateLocked(id) != RowIdle {
		l.mu.Unlock()
		return "", ErrDeleteInProgress
	}
	l.states[id] = RowConfirming
	l.mu.Unlock()

	if !confirmer.Confirm(constants.MsgConfirmDelete) {
		l.setState(id, RowIdle)
		l.logger.Debug("Delete not confirmed", zap.Int64("messageID", id))
		return DeleteAborted, nil
	}

	l.setState(id, RowDeleting)
	err := l.client.Delete(ctx, id)
	l.setState(id, RowIdle)

	if err != nil {
		l.logger.Error("Failed to delete message", zap.Error(err), zap.Int64("messageID", id))
		l.notifier.Error(failureMessage(err, constants.MsgDeleteFailed))
		return "", err
	}

	l.logger.Info("Message deleted", zap.Int64("messageID", id))
	l.notifier.Success(constants.MsgMessageDeleted)

	if l.onDeleted != nil {
		l.onDeleted(ctx)
	}

	return DeleteSucceeded, nil
}

// Edit opens the edit form of a listed message. There is one edit surface at a
// time: opening another message closes the current one.
func (l *MessageList) Edit(id int64) (*EditForm, error) {
	l.mu.Lock()
	if l.editing != nil && l.editing.MessageID() == id && !l.editing.IsClosed() {
		current := l.editing
		l.mu.Unlock()
		return current, nil
	}

	msg, ok := l.findLocked(id)
	if !ok {
		l.mu.Unlock()
		return nil, ErrMessageNotFound
	}
	previous := l.editing
	l.mu.Unlock()

	if previous != nil {
		previous.Cancel()
	}

	var opened *EditForm
	opened = NewEditForm(msg, l.client, l.editValidator, l.notifier, l.logger, l.onUpdated, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.editing == opened {
			l.editing = nil
		}
	})

	l.mu.Lock()
	l.editing = opened
	l.mu.Unlock()

	return opened, nil
}

// Editing returns the open edit form, or nil.
func (l *MessageList) Editing() *EditForm {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.editing
}

func (l *MessageList) setState(id int64, state RowState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states[id] = state
}

func (l *MessageList) stateLocked(id int64) RowState {
	if state, ok := l.states[id]; ok {
		return state
	}
	return RowIdle
}

func (l *MessageList) findLocked(id int64) (model.Message, bool) {
	for _, msg := range l.messages {
		if msg.ID == id {
			return msg, true
		}
	}
	return model.Message{}, false
}
