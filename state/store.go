package state

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Subscriber observes every dispatched event along with the state it produced
type Subscriber func(next AppState, e Event)

// Store owns the root aggregate. Dispatch serializes transitions through the
// pure reducer and notifies subscribers with a snapshot of the new state;
// persistence and broadcasting hang off subscriptions rather than living in
// the transition logic.
type Store struct {
	mu       sync.Mutex
	notifyMu sync.Mutex
	state    AppState
	nextID   int
	subs     map[int]Subscriber
	log      zerolog.Logger
}

// NewStore creates a store seeded with the given state
func NewStore(initial AppState, log zerolog.Logger) *Store {
	return &Store{
		state: initial,
		subs:  make(map[int]Subscriber),
		log:   log,
	}
}

// State returns a snapshot of the current state
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the event and returns the new state. Subscribers run on
// the dispatching goroutine, after the transition commits, and are notified
// in commit order: notifyMu is taken before the state lock is released, so a
// later transition cannot overtake an earlier one's notifications and write a
// stale snapshot through the persistence subscriber. Subscribers must not
// dispatch.
func (s *Store) Dispatch(e Event) AppState {
	s.mu.Lock()
	s.state = Reduce(s.state, e)
	next := s.state
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.log.Debug().Str("event", fmt.Sprintf("%T", e)).Msg("state transition")

	for _, fn := range subs {
		fn(next, e)
	}
	return next
}

// Subscribe registers fn for every future dispatch and returns a function
// that removes the subscription.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
