package watch

import (
	"context"
	"sync"
	"time"
)

// eventDebouncer batches file events until no event has arrived for the
// debounce period. The latest event per path wins.
type eventDebouncer struct {
	events   map[string]FileEventType
	mutex    sync.Mutex
	debounce time.Duration
	timer    *time.Timer
	stopped  bool

	// ready is signalled by the timer; run performs the flush so that no
	// handler work happens on timer goroutines.
	ready chan struct{}
}

func newEventDebouncer(debounce time.Duration) *eventDebouncer {
	return &eventDebouncer{
		events:   make(map[string]FileEventType),
		debounce: debounce,
		ready:    make(chan struct{}, 1),
	}
}

// addEvent records an event and restarts the quiet period.
func (d *eventDebouncer) addEvent(path string, eventType FileEventType) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}
	d.events[path] = eventType

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.debounce, d.signal)
}

func (d *eventDebouncer) signal() {
	select {
	case d.ready <- struct{}{}:
	default:
	}
}

// take swaps out the accumulated events.
func (d *eventDebouncer) take() map[string]FileEventType {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	events := d.events
	d.events = make(map[string]FileEventType)
	return events
}

// pending returns the number of buffered events.
func (d *eventDebouncer) pending() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.events)
}

// stop discards pending events and refuses new ones.
func (d *eventDebouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.events = make(map[string]FileEventType)
}

// run flushes each settled batch until ctx is done. Events pending at
// shutdown are dropped.
func (d *eventDebouncer) run(ctx context.Context, wg *sync.WaitGroup, flush func(map[string]FileEventType)) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.ready:
			if ctx.Err() != nil {
				return
			}
			if events := d.take(); len(events) > 0 {
				flush(events)
			}
		}
	}
}
