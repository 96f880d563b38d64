// Package optimistic applies a predicted change to local view state while the
// authoritative write is in flight, then settles on the server's answer.
package optimistic

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// Command is one optimistic write against view state S
type Command[S any] struct {
	Name string
	// Predict returns the expected state. It receives a private copy.
	Predict func(S) S
	// Execute performs the write and returns the authoritative state.
	Execute func(ctx context.Context) (S, error)
}

type unconfirmedError struct {
	err error
}

func (e *unconfirmedError) Error() string {
	return "write applied, state not confirmed: " + e.err.Error()
}

func (e *unconfirmedError) Unwrap() error {
	return e.err
}

// Unconfirmed marks an Execute error that happened after the write itself
// succeeded, such as a failed re-read. Run keeps the prediction, marks the
// view stale and reports success.
func Unconfirmed(err error) error {
	return &unconfirmedError{err: err}
}

// View holds state S and runs commands against it. Clone must return a deep
// copy; commands only ever see copies.
type View[S any] struct {
	mu      sync.Mutex
	state   S
	clone   func(S) S
	version uint64
	stale   bool
}

// NewView creates a view starting from initial
func NewView[S any](initial S, clone func(S) S) *View[S] {
	return &View[S]{
		state: clone(initial),
		clone: clone,
	}
}

// State returns a copy of the current state
func (v *View[S]) State() S {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.clone(v.state)
}

// Stale reports whether a failed command could not be rolled back because a
// later command had already changed the state. Replace clears it.
func (v *View[S]) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stale
}

// Replace installs authoritative state, discarding any prediction
func (v *View[S]) Replace(s S) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.clone(s)
	v.version++
	v.stale = false
}

// Run applies cmd.Predict, executes the command and settles. On success the
// authoritative state replaces the prediction. On failure the snapshot taken
// before the prediction is restored, unless another change landed meanwhile,
// in which case the view is marked stale and left for the caller to refresh.
// An Unconfirmed error keeps the prediction and marks the view stale.
func (v *View[S]) Run(ctx context.Context, cmd Command[S]) (S, error) {
	v.mu.Lock()
	snapshot := v.clone(v.state)
	if cmd.Predict != nil {
		v.state = cmd.Predict(v.clone(v.state))
	}
	v.version++
	mine := v.version
	v.mu.Unlock()

	authoritative, err := cmd.Execute(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	var unconfirmed *unconfirmedError
	if errors.As(err, &unconfirmed) {
		v.stale = true
		log.Warn().Str("command", cmd.Name).Err(unconfirmed.err).Msg("optimistic update applied but not confirmed")
		return v.clone(v.state), nil
	}
	if err != nil {
		if v.version == mine {
			v.state = snapshot
			v.version++
			log.Debug().Str("command", cmd.Name).Err(err).Msg("optimistic update rolled back")
		} else {
			v.stale = true
			log.Warn().Str("command", cmd.Name).Err(err).Msg("optimistic update failed after newer changes")
		}
		return v.clone(v.state), err
	}

	v.state = v.clone(authoritative)
	v.version++
	return v.clone(v.state), nil
}
