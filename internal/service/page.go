package service

import (
	"context"
	"sync"
	"time"

	"github.com/Behyna/sms-services/scheduler/internal/metrics"
	"github.com/Behyna/sms-services/scheduler/internal/validation"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"go.uber.org/zap"
)

type Tab string

const (
	TabSchedule Tab = "schedule"
	TabMessages Tab = "messages"
)

type PageConfig struct {
	Location *time.Location
	Now      func() time.Time
}

type PageState struct {
	ActiveTab      Tab    `json:"active_tab"`
	Loading        bool   `json:"loading"`
	MinScheduledAt string `json:"min_scheduled_at"`
	MessageCount   int    `json:"message_count"`
}

// Page ties the forms and the list together. Every mutation is followed by a
// full reload of the list; nothing is patched locally.
type Page struct {
	mu      sync.Mutex
	tab     Tab
	loading bool

	client    schedulerapi.Client
	logger    *zap.Logger
	list      *MessageList
	scheduler *SchedulerForm
}

func NewPage(client schedulerapi.Client, notifier Notifier, logger *zap.Logger, m *metrics.Metrics,
	cfg PageConfig) *Page {
	opts := []validation.Option{validation.WithMetrics(m)}
	if cfg.Now != nil {
		opts = append(opts, validation.WithClock(cfg.Now))
	}

	createValidator := validation.NewValidator(validation.CreateRules, cfg.Location, opts...)
	editValidator := validation.NewValidator(validation.EditRules, cfg.Location, opts...)

	p := &Page{tab: TabSchedule, client: client, logger: logger}
	p.scheduler = NewSchedulerForm(client, createValidator, notifier, logger, p.onScheduled)
	p.list = NewMessageList(client, editValidator, notifier, logger, p.refresh, p.refresh)

	return p
}

func (p *Page) List() *MessageList {
	return p.list
}

func (p *Page) Scheduler() *SchedulerForm {
	return p.scheduler
}

func (p *Page) ActiveTab() Tab {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tab
}

func (p *Page) SetTab(tab Tab) error {
	if tab != TabSchedule && tab != TabMessages {
		return ErrUnknownTab
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.tab = tab
	return nil
}

func (p *Page) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *Page) State() PageState {
	p.mu.Lock()
	tab, loading := p.tab, p.loading
	p.mu.Unlock()

	return PageState{
		ActiveTab:      tab,
		Loading:        loading,
		MinScheduledAt: p.scheduler.MinScheduledInput(),
		MessageCount:   len(p.list.Messages()),
	}
}

// Load fetches the full list. A failure is logged and the previous list is
// kept, so a backend outage degrades to an empty page instead of blocking it.
// The error is still returned for callers that want to report it.
func (p *Page) Load(ctx context.Context) error {
	p.setLoading(true)
	defer p.setLoading(false)

	messages, err := p.client.List(ctx)
	if err != nil {
		p.logger.Error("Failed to fetch messages", zap.Error(err))
		return err
	}

	p.list.SetMessages(messages)
	return nil
}

func (p *Page) onScheduled(ctx context.Context) {
	p.refresh(ctx)
	_ = p.SetTab(TabMessages)
}

func (p *Page) refresh(ctx context.Context) {
	_ = p.Load(ctx)
}

func (p *Page) setLoading(loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = loading
}
