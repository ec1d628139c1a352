package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(t.TempDir()+"/notify.json", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishAdmitsUpToCapacity(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 7; i++ {
		e.Publish(Request{Title: "n", Message: "m", Duration: time.Hour})
	}

	assert.Len(t, e.Visible(), 5)
	assert.Equal(t, 2, e.QueuedCount())
}

func TestDismissAdmitsNextQueued(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 6; i++ {
		e.Publish(Request{Title: "n", Message: "m", Duration: time.Hour})
	}
	visible := e.Visible()
	require.Len(t, visible, 5)
	require.Equal(t, 1, e.QueuedCount())

	e.Dismiss(visible[0].ID)

	assert.Len(t, e.Visible(), 5)
	assert.Equal(t, 0, e.QueuedCount())
}

func TestHistoryIsMostRecentFirstAndCapped(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < historyCap+20; i++ {
		e.Publish(Request{Title: "n", Message: "m", Duration: time.Hour})
	}

	history := e.History(0)
	require.Len(t, history, historyCap)
	// Newest entries first; the oldest 20 were evicted.
	assert.Greater(t, history[0].ID, history[len(history)-1].ID)
	assert.Equal(t, int64(historyCap+20), history[0].ID)
	assert.Equal(t, int64(21), history[len(history)-1].ID)
}

func TestHistoryLimit(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 10; i++ {
		e.Publish(Request{Title: "n", Duration: time.Hour})
	}
	assert.Len(t, e.History(3), 3)
	assert.Len(t, e.History(0), 10)
}

func TestDismissalDoesNotMarkRead(t *testing.T) {
	e := newTestEngine(t)

	toast := e.Publish(Request{Title: "n", Message: "m", Duration: time.Hour})
	e.Dismiss(toast.ID)

	assert.Equal(t, 1, e.UnreadCount())
}

func TestClickMarksReadAndFiresAction(t *testing.T) {
	e := newTestEngine(t)

	var gotRef string
	toast := e.Publish(Request{
		Title:     "n",
		ActionRef: "Producto X",
		Duration:  time.Hour,
		OnAction:  func(ref string) { gotRef = ref },
	})
	e.Click(toast.ID)

	assert.Equal(t, "Producto X", gotRef)
	assert.Equal(t, 0, e.UnreadCount())
	assert.Empty(t, e.Visible())
}

func TestClickIgnoresQueuedToast(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 5; i++ {
		e.Publish(Request{Title: "n", Duration: time.Hour})
	}
	var fired bool
	queued := e.Publish(Request{
		Title:    "q",
		Duration: time.Hour,
		OnAction: func(string) { fired = true },
	})
	require.Equal(t, 1, e.QueuedCount())

	e.Click(queued.ID)

	// Still waiting for a slot, action intact, nothing marked read.
	assert.False(t, fired)
	assert.Equal(t, 1, e.QueuedCount())
	assert.Equal(t, 6, e.UnreadCount())
}

func TestRetryPollAdmitsWhenCapacityFrees(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 6; i++ {
		e.Publish(Request{Title: "n", Duration: time.Hour})
	}
	require.Equal(t, 1, e.QueuedCount())

	// Free a slot without going through Dismiss, so only the armed retry
	// timer can admit the queued toast.
	e.mu.Lock()
	evicted := e.visible[0]
	evicted.timer.Stop()
	e.visible = e.visible[1:]
	e.mu.Unlock()

	require.Eventually(t, func() bool {
		return e.QueuedCount() == 0 && len(e.Visible()) == 5
	}, 2*time.Second, 25*time.Millisecond)
}

func TestMarkAllRead(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 4; i++ {
		e.Publish(Request{Title: "n", Duration: time.Hour})
	}
	require.Equal(t, 4, e.UnreadCount())

	e.MarkAllRead(context.Background())

	assert.Equal(t, 0, e.UnreadCount())
}

func TestPublishDefaultsSeverity(t *testing.T) {
	e := newTestEngine(t)
	toast := e.Publish(Request{Title: "n", Duration: time.Hour})
	assert.Equal(t, domain.SeverityInfo, toast.Severity)
}

func TestAutoCleanDropsOldEntries(t *testing.T) {
	e := newTestEngine(t)

	old := e.Publish(Request{Title: "old", Duration: time.Hour})
	e.mu.Lock()
	old.CreatedAt = time.Now().AddDate(0, 0, -40)
	e.mu.Unlock()
	e.Publish(Request{Title: "fresh", Duration: time.Hour})

	e.AutoClean(context.Background())

	history := e.History(0)
	require.Len(t, history, 1)
	assert.Equal(t, "fresh", history[0].Title)
}
