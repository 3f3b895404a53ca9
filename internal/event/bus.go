package event

import (
	"log"
	"sync"
	"time"
)

// Failure is the structured event a pipeline run emits when it ends in the
// Failed state. Observers (telegram alerts, the error report log) subscribe
// to the bus; the pipeline never talks to a delivery mechanism directly.
type Failure struct {
	RunID      string
	Enterprise string
	Kind       string // record kind: catalog | stock
	ErrorKind  string
	Detail     string
	At         time.Time
}

type Bus struct {
	subscribers map[chan Failure]bool
	Register    chan chan Failure
	Unregister  chan chan Failure
	Publish     chan Failure
	mutex       sync.Mutex
}

func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[chan Failure]bool),
		Register:    make(chan chan Failure),
		Unregister:  make(chan chan Failure),
		Publish:     make(chan Failure, 64),
	}
}

func (b *Bus) Run() {
	for {
		select {
		case sub := <-b.Register:
			b.mutex.Lock()
			b.subscribers[sub] = true
			b.mutex.Unlock()

		case sub := <-b.Unregister:
			b.mutex.Lock()
			if _, ok := b.subscribers[sub]; ok {
				delete(b.subscribers, sub)
				close(sub)
			}
			b.mutex.Unlock()

		case failure := <-b.Publish:
			b.mutex.Lock()
			for sub := range b.subscribers {
				select {
				case sub <- failure:
				default:
					// a stuck observer must not stall the pipeline
					log.Printf("event bus: dropping failure event for slow subscriber (enterprise=%s)", failure.Enterprise)
				}
			}
			b.mutex.Unlock()
		}
	}
}

// Subscribe registers a new observer channel.
func (b *Bus) Subscribe() chan Failure {
	sub := make(chan Failure, 16)
	b.Register <- sub
	return sub
}

// Emit publishes without blocking the caller, even when the bus itself is
// backed up. Failure delivery is strictly fire-and-forget.
func (b *Bus) Emit(failure Failure) {
	select {
	case b.Publish <- failure:
	default:
		log.Printf("event bus: queue full, dropping failure event (enterprise=%s kind=%s)", failure.Enterprise, failure.Kind)
	}
}
