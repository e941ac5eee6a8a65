// Package session bridges the blocking classification exchange into a
// consumer that must never stall, such as a chat handler or an interactive
// poll loop. A session is Idle until Submit, Pending while the single
// in-flight call runs, and Resolved once it produces its one outcome.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"avalanche-analyzer/internal/schema"
)

// ErrRequestInFlight is returned by Submit while a prior request is still
// Pending. Mid-flight replacement is deliberately not supported; the consumer
// waits for resolution and resubmits.
var ErrRequestInFlight = errors.New("a classification request is already in flight")

type State int

const (
	StateIdle State = iota
	StatePending
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome is the terminal value of one invocation: exactly one of Analysis
// or Err is set, and it never changes once produced.
type Outcome struct {
	Analysis *schema.AvalancheAnalysis
	Err      error
}

// Classifier is satisfied by *classify.Classifier.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (*schema.AvalancheAnalysis, error)
}

type Session struct {
	cl      Classifier
	timeout time.Duration

	mu      sync.Mutex
	state   State
	outcome *Outcome
	done    chan Outcome
}

// New creates an idle session. A timeout of zero means the exchange runs
// until the engine's own transport limits give up.
func New(cl Classifier, timeout time.Duration) *Session {
	return &Session{cl: cl, timeout: timeout}
}

// Submit starts exactly one classification. Valid from Idle or Resolved; a
// prior Resolved outcome is discarded. Returns ErrRequestInFlight while
// Pending.
func (s *Session) Submit(image []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePending {
		return ErrRequestInFlight
	}
	s.state = StatePending
	s.outcome = nil

	ch := make(chan Outcome, 1)
	s.done = ch

	// Copy: the caller may reuse its buffer while the call is in flight.
	img := append([]byte(nil), image...)
	timeout := s.timeout
	cl := s.cl

	go func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		analysis, err := cl.Classify(ctx, img)
		ch <- Outcome{Analysis: analysis, Err: err}
	}()
	return nil
}

// Poll is non-blocking and idempotent: Pending until the in-flight call
// finishes, then the same Resolved outcome on every call until the next
// Submit. The Pending→Resolved transition happens atomically here, on the
// consumer's side.
func (s *Session) Poll() (State, *Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePending {
		select {
		case out := <-s.done:
			o := out
			s.outcome = &o
			s.state = StateResolved
			s.done = nil
		default:
		}
	}
	return s.state, s.outcome
}
