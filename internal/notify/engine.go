package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/metrics"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
)

const (
	defaultMaxVisible = 5
	defaultDuration   = 5 * time.Second
	historyCap        = 200
	admitRetryDelay   = 500 * time.Millisecond
)

// Store is the durable side of the notification history. A nil Store keeps
// the engine memory-only.
type Store interface {
	Create(ctx context.Context, in repository.CreateNotificationInput) (*domain.Notification, error)
	TrimToNewest(ctx context.Context, keep int) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	MarkAllRead(ctx context.Context) error
}

// Request is one notification submission.
type Request struct {
	Title     string
	Message   string
	Severity  domain.Severity
	Icon      string
	Duration  time.Duration // 0 means the engine default
	ActionRef string
	OnAction  func(ref string)
}

// Toast is a notification tracked by the engine. Read is independent of
// dismissal: a toast can leave the screen and stay unread in history.
type Toast struct {
	ID        int64
	Title     string
	Message   string
	Severity  domain.Severity
	Icon      string
	CreatedAt time.Time
	Read      bool
	ActionRef string

	onAction func(string)
	duration time.Duration
	timer    *time.Timer
}

// Engine queues, displays and records notifications. All methods are safe
// for concurrent use.
type Engine struct {
	mu           sync.Mutex
	visible      []*Toast
	queue        []*Toast
	history      []*Toast // most-recent-first, capped at historyCap
	cfg          Config
	cfgPath      string
	maxVisible   int
	nextID       int64
	retryPending bool

	store  Store
	logger *slog.Logger

	// OnShow and OnLayout let a delivery surface react to visibility
	// changes; both may be nil.
	OnShow   func(t Toast, pos Position)
	OnLayout func(positions []Position)

	ScreenWidth  int
	ScreenHeight int
}

func NewEngine(cfgPath string, store Store, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:          LoadConfig(cfgPath),
		cfgPath:      cfgPath,
		maxVisible:   defaultMaxVisible,
		store:        store,
		logger:       logger,
		ScreenWidth:  1920,
		ScreenHeight: 1080,
	}
}

// Config returns a copy of the current preferences.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// UpdateConfig replaces the preferences and persists them wholesale.
// Save failures are logged and otherwise ignored.
func (e *Engine) UpdateConfig(cfg Config) {
	e.mu.Lock()
	e.cfg = cfg
	path := e.cfgPath
	e.mu.Unlock()

	if err := cfg.Save(path); err != nil {
		e.logger.Warn("could not save notification config", "path", path, "err", err)
	}
}

// Publish records the notification in history, enqueues it for display and
// attempts admission.
func (e *Engine) Publish(req Request) *Toast {
	if req.Severity == "" {
		req.Severity = domain.SeverityInfo
	}
	if req.Duration == 0 {
		req.Duration = defaultDuration
	}
	if req.Icon == "" {
		req.Icon = "🔔"
	}

	e.mu.Lock()
	e.nextID++
	t := &Toast{
		ID:        e.nextID,
		Title:     req.Title,
		Message:   req.Message,
		Severity:  req.Severity,
		Icon:      req.Icon,
		CreatedAt: time.Now(),
		ActionRef: req.ActionRef,
		onAction:  req.OnAction,
		duration:  req.Duration,
	}

	e.history = append([]*Toast{t}, e.history...)
	if len(e.history) > historyCap {
		e.history = e.history[:historyCap]
	}
	e.queue = append(e.queue, t)
	e.admitLocked()
	e.mu.Unlock()

	metrics.NotificationsEmitted.WithLabelValues(string(t.Severity)).Inc()
	e.persist(t)
	return t
}

// persist mirrors the toast into the durable store, best-effort.
func (e *Engine) persist(t *Toast) {
	if e.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := e.store.Create(ctx, repository.CreateNotificationInput{
		Title:     t.Title,
		Message:   t.Message,
		Severity:  t.Severity,
		Icon:      t.Icon,
		ActionRef: t.ActionRef,
		Created:   t.CreatedAt,
	})
	if err != nil {
		e.logger.Warn("could not persist notification", "err", err)
		return
	}
	if err := e.store.TrimToNewest(ctx, historyCap); err != nil {
		e.logger.Warn("could not trim notification history", "err", err)
	}
}

// admitLocked pops queued toasts into the visible set while below capacity.
// At capacity it arms a single retry; admission is polled, not event-driven.
func (e *Engine) admitLocked() {
	for len(e.queue) > 0 {
		if len(e.visible) >= e.maxVisible {
			if !e.retryPending {
				e.retryPending = true
				time.AfterFunc(admitRetryDelay, func() {
					e.mu.Lock()
					e.retryPending = false
					e.admitLocked()
					e.mu.Unlock()
				})
			}
			return
		}

		t := e.queue[0]
		e.queue = e.queue[1:]
		e.visible = append(e.visible, t)
		if t.duration > 0 {
			id := t.ID
			t.timer = time.AfterFunc(t.duration, func() { e.Dismiss(id) })
		}
		if e.OnShow != nil {
			positions := e.layoutLocked()
			e.OnShow(*t, positions[len(positions)-1])
		}
	}
}

func (e *Engine) layoutLocked() []Position {
	return Layout(e.cfg.Position, e.ScreenWidth, e.ScreenHeight, len(e.visible))
}

// Dismiss removes a toast from the visible set (close, expiry or
// click-to-act), repositions the remainder and admits the next queued one.
// Dismissal does not mark the toast read.
func (e *Engine) Dismiss(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, t := range e.visible {
		if t.ID != id {
			continue
		}
		if t.timer != nil {
			t.timer.Stop()
		}
		e.visible = append(e.visible[:i], e.visible[i+1:]...)
		if e.OnLayout != nil {
			e.OnLayout(e.layoutLocked())
		}
		e.admitLocked()
		return
	}
}

// Click marks a displayed toast read, fires its action and dismisses it.
// Only the visible set responds: a queued toast has not been shown yet, so
// clicking its id must not consume its action or its unread state.
func (e *Engine) Click(id int64) {
	e.mu.Lock()
	var target *Toast
	for _, t := range e.visible {
		if t.ID == id {
			t.Read = true
			target = t
			break
		}
	}
	e.mu.Unlock()

	if target == nil {
		return
	}
	e.Dismiss(id)
	if target.onAction != nil {
		target.onAction(target.ActionRef)
	}
}

// Visible returns a snapshot of the currently displayed toasts.
func (e *Engine) Visible() []Toast {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Toast, len(e.visible))
	for i, t := range e.visible {
		out[i] = *t
	}
	return out
}

// QueuedCount reports how many toasts await admission.
func (e *Engine) QueuedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// History returns up to limit entries, most recent first. limit <= 0 means
// the whole history.
func (e *Engine) History(limit int) []Toast {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Toast, n)
	for i := 0; i < n; i++ {
		out[i] = *e.history[i]
	}
	return out
}

func (e *Engine) UnreadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, t := range e.history {
		if !t.Read {
			n++
		}
	}
	return n
}

// MarkAllRead flags the whole history read, in memory and durably.
func (e *Engine) MarkAllRead(ctx context.Context) {
	e.mu.Lock()
	for _, t := range e.history {
		t.Read = true
	}
	e.mu.Unlock()

	if e.store != nil {
		if err := e.store.MarkAllRead(ctx); err != nil {
			e.logger.Warn("could not mark notifications read", "err", err)
		}
	}
}

// cleanHistoryBefore drops history entries older than cutoff.
func (e *Engine) cleanHistoryBefore(ctx context.Context, cutoff time.Time) {
	e.mu.Lock()
	kept := e.history[:0]
	for _, t := range e.history {
		if t.CreatedAt.After(cutoff) {
			kept = append(kept, t)
		}
	}
	e.history = kept
	e.mu.Unlock()

	if e.store != nil {
		if _, err := e.store.DeleteOlderThan(ctx, cutoff); err != nil {
			e.logger.Warn("could not clean notification history", "err", err)
		}
	}
}

// AutoClean applies the configured retention window.
func (e *Engine) AutoClean(ctx context.Context) {
	e.mu.Lock()
	days := e.cfg.AutoClearDays
	e.mu.Unlock()
	if days <= 0 {
		days = DefaultConfig().AutoClearDays
	}
	e.cleanHistoryBefore(ctx, time.Now().AddDate(0, 0, -days))
}
