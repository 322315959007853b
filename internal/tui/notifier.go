package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

// EventMsg carries a session event into the program.
type EventMsg struct {
	Event entity.Event
}

// eventBatchMsg carries every event queued since the last wait.
type eventBatchMsg struct {
	events []entity.Event
}

// Notifier queues session events for the program. Notify never blocks; it is also
// called from Update, on the event loop itself.
type Notifier struct {
	mu     sync.Mutex
	queue  []entity.Event
	ready  chan struct{}
	closed bool
}

func NewNotifier() *Notifier {
	return &Notifier{
		ready: make(chan struct{}, 1),
	}
}

func (that *Notifier) Notify(event entity.Event) {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return
	}

	that.queue = append(that.queue, event)
	that.mu.Unlock()

	select {
	case that.ready <- struct{}{}:
	default:
	}
}

// Close - drops further events and releases a pending wait.
func (that *Notifier) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	that.closed = true
	close(that.ready)
}

func (that *Notifier) drain() []entity.Event {
	that.mu.Lock()
	defer that.mu.Unlock()

	events := that.queue
	that.queue = nil

	return events
}

// waitForEvents returns a command that blocks until events are queued.
// It returns nil once the notifier is closed.
func waitForEvents(notifier *Notifier) tea.Cmd {
	if notifier == nil {
		return nil
	}

	return func() tea.Msg {
		for range notifier.ready {
			// a signal can outlive the events an earlier drain already took
			if events := notifier.drain(); len(events) > 0 {
				return eventBatchMsg{events: events}
			}
		}

		return nil
	}
}
