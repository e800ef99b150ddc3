package events

import (
	"context"
	"sync"

	evbus "github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const allTopic = "*"

// Publisher accepts committed events.
type Publisher interface {
	Publish(events ...Event)
}

// Handler receives delivered events. Handlers run on the feed goroutine, one at a time,
// and must not subscribe or unsubscribe from inside the callback.
type Handler func(Envelope)

// Feed queues published events and delivers them from a single goroutine in publication order.
// Publish never blocks on subscribers, so it is safe to call from inside a critical section.
type Feed struct {
	logger *zap.Logger
	bus    evbus.Bus

	mu     sync.Mutex
	queue  []Envelope
	seq    uint64
	wakeup chan struct{}
}

func NewFeed(logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		logger: logger,
		bus:    evbus.New(),
		wakeup: make(chan struct{}, 1),
	}
}

func (f *Feed) Publish(events ...Event) {
	if len(events) == 0 {
		return
	}
	f.mu.Lock()
	for _, e := range events {
		f.seq++
		f.queue = append(f.queue, Envelope{Seq: f.seq, Event: e})
	}
	f.mu.Unlock()
	select {
	case f.wakeup <- struct{}{}:
	default:
	}
}

// Subscribe registers the handler for one kind of events.
func (f *Feed) Subscribe(kind Kind, h Handler) error {
	if h == nil {
		return errors.New("nil event handler")
	}
	return f.bus.Subscribe(string(kind), h)
}

// SubscribeAll registers the handler for every event.
func (f *Feed) SubscribeAll(h Handler) error {
	if h == nil {
		return errors.New("nil event handler")
	}
	return f.bus.Subscribe(allTopic, h)
}

// Pending returns the number of events not yet delivered.
func (f *Feed) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Run delivers events until the context is done. Events queued before cancellation are
// delivered before Run returns.
func (f *Feed) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			f.drain()
			return nil
		case <-f.wakeup:
			f.drain()
		}
	}
}

func (f *Feed) drain() {
	for {
		f.mu.Lock()
		batch := f.queue
		f.queue = nil
		f.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, env := range batch {
			f.deliver(env)
		}
	}
}

func (f *Feed) deliver(env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("Event handler panicked",
				zap.Uint64("seq", env.Seq), zap.String("kind", string(env.Event.Kind())), zap.Any("panic", r))
		}
	}()
	kind := string(env.Event.Kind())
	if f.bus.HasCallback(kind) {
		f.bus.Publish(kind, env)
	}
	if f.bus.HasCallback(allTopic) {
		f.bus.Publish(allTopic, env)
	}
}
