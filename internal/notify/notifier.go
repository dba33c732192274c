// Package notify delivers committed seat changes to observers: browsers
// connected over WebSocket, Pusher channels and the RabbitMQ audit queue.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/cinema-booking/internal/logger"
	"github.com/iliyamo/cinema-booking/internal/model"
	"github.com/iliyamo/cinema-booking/internal/service/ports"
)

// Sink is a single delivery channel for seat events.
type Sink interface {
	Name() string
	Send(ctx context.Context, event string, payload model.SeatsChanged) error
}

// FanOut is the ports.SeatNotifier handed to the booking engine. Publish
// returns immediately; each sink is called on its own goroutine with its own
// timeout and failures are only logged.
type FanOut struct {
	sinks   []Sink
	timeout time.Duration
	log     *logger.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

var _ ports.SeatNotifier = (*FanOut)(nil)

// NewFanOut returns a FanOut over sinks. Nil interface values are skipped.
func NewFanOut(log *logger.Logger, timeout time.Duration, sinks ...Sink) *FanOut {
	if log == nil {
		log = logger.Discard()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	f := &FanOut{timeout: timeout, log: log.WithComponent("notify")}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Publish implements ports.SeatNotifier. The request context only
// contributes its values; delivery outlives the request.
func (f *FanOut) Publish(ctx context.Context, event string, payload model.SeatsChanged) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	base := context.WithoutCancel(ctx)
	for _, s := range f.sinks {
		f.wg.Add(1)
		go func(s Sink) {
			defer f.wg.Done()
			sctx, cancel := context.WithTimeout(base, f.timeout)
			defer cancel()
			if err := s.Send(sctx, event, payload); err != nil {
				f.log.WithError(err).WarnContext(sctx, "seat event delivery failed",
					"sink", s.Name(), "event", event, "screening_id", payload.ScreeningID)
			}
		}(s)
	}
}

// Close stops accepting events and waits for in-flight deliveries or until
// ctx is done.
func (f *FanOut) Close(ctx context.Context) error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
