package service

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Behyna/sms-services/scheduler/internal/metrics"
	"go.uber.org/zap"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
	At      time.Time        `json:"at"`
}

// Notifier shows transient feedback to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NotificationQueue keeps the latest notifications until a front-end drains
// them. The oldest entry is dropped once capacity is reached.
type NotificationQueue struct {
	mu       sync.Mutex
	items    []Notification
	capacity int
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewNotificationQueue(capacity int, logger *zap.Logger, m *metrics.Metrics) *NotificationQueue {
	if capacity <= 0 {
		capacity = 1
	}
	return &NotificationQueue{capacity: capacity, logger: logger, metrics: m}
}

func (q *NotificationQueue) Success(message string) {
	q.push(NotificationSuccess, message)
}

func (q *NotificationQueue) Error(message string) {
	q.push(NotificationError, message)
}

// Drain returns the queued notifications oldest first and empties the queue.
func (q *NotificationQueue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	if items == nil {
		return []Notification{}
	}
	return items
}

func (q *NotificationQueue) push(kind NotificationKind, message string) {
	q.logger.Info("Notification", zap.String("kind", string(kind)), zap.String("message", message))
	if q.metrics != nil {
		q.metrics.RecordNotification(string(kind))
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == q.capacity {
		q.items = q.items[1:]
	}
	q.items = append(q.items, Notification{Kind: kind, Message: message, At: time.Now()})
}

// WriterNotifier prints notifications, successes to out and errors to errOut.
type WriterNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

func NewWriterNotifier(out, errOut io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out, errOut: errOut}
}

func (w *WriterNotifier) Success(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprintln(w.out, message)
}

func (w *WriterNotifier) Error(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprintln(w.errOut, "error: "+message)
}
