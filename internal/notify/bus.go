// Package notify carries short-lived notifications from the engine to
// whatever front end is attached.
package notify

import (
	"sync"
	"time"
)

// Kind names what happened.
type Kind string

const (
	XPAwarded       Kind = "xp_awarded"
	QuestCompleted  Kind = "quest_completed"
	QuestSkipped    Kind = "quest_skipped"
	PlanCreated     Kind = "plan_created"
	PlanSwitched    Kind = "plan_switched"
	PlanDeleted     Kind = "plan_deleted"
	MonthLogged     Kind = "month_logged"
	SnapshotUpdated Kind = "snapshot_updated"
	StateReset      Kind = "state_reset"
)

// Event is one notification. ID is assigned by the bus.
type Event struct {
	ID      int64     `json:"id"`
	Kind    Kind      `json:"kind"`
	At      time.Time `json:"at"`
	Message string    `json:"message"`
	XP      int       `json:"xp,omitempty"`
}

// Publisher accepts events.
type Publisher interface {
	Publish(Event)
}

// Discard drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}

// Bus fans events out to subscribers and keeps the most recent ones.
type Bus struct {
	mu     sync.RWMutex
	buffer int
	nextID int64
	recent []Event

	nextSubID int
	subs      map[int]chan Event
}

// NewBus returns a bus that retains up to buffer recent events.
func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 50
	}
	return &Bus{
		buffer: buffer,
		subs:   make(map[int]chan Event),
	}
}

// Publish records ev and delivers it to every subscriber that has room.
// It never blocks.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	ev.ID = b.nextID
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	b.recent = append(b.recent, ev)
	if len(b.recent) > b.buffer {
		b.recent = b.recent[len(b.recent)-b.buffer:]
	}

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe returns a channel of future events and a function that
// unsubscribes and closes it.
func (b *Bus) Subscribe(size int) (<-chan Event, func()) {
	if size < 1 {
		size = 16
	}
	ch := make(chan Event, size)

	b.mu.Lock()
	b.nextSubID++
	id := b.nextSubID
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Recent returns a copy of the retained events, oldest first.
func (b *Bus) Recent() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Event, len(b.recent))
	copy(out, b.recent)
	return out
}

// Subscribers reports how many subscribers are attached.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
