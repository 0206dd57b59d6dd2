package costsheet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Saver persists a full state. See the persist package.
type Saver interface {
	Save(ctx context.Context, s State) error
}

// Decoder turns the bytes of an imported document into a full state.
type Decoder func(data []byte) (State, error)

// Session holds the current state of a statement and applies transitions to it.
//
// Every transition builds a new State and swaps it in whole, readers only
// ever see fully applied snapshots. When a Saver is configured the new state
// is saved right after the swap, in transition order. Save failures are
// logged, they do not undo the transition.
type Session struct {
	mu     sync.Mutex
	state  State
	saver  Saver
	logger *slog.Logger

	importing atomic.Bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSaver persists every state change through s.
func WithSaver(s Saver) SessionOption {
	return func(se *Session) { se.saver = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(se *Session) { se.logger = l }
}

// NewSession creates a session starting from initial.
func NewSession(initial State, opts ...SessionOption) *Session {
	s := &Session{state: initial, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// apply runs a transition and commits its result. A failing transition
// leaves the state untouched.
func (s *Session) apply(ctx context.Context, op string, transition func(State) (State, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := transition(s.state)
	if err != nil {
		return err
	}
	s.state = next
	s.save(ctx, op)
	return nil
}

// save must be called with mu held, after the state has been swapped.
func (s *Session) save(ctx context.Context, op string) {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(ctx, s.state); err != nil {
		s.logger.WarnContext(ctx, "cannot save state", "op", op, "error", err)
		return
	}
	s.logger.DebugContext(ctx, "state saved", "op", op, "rows", s.state.Ledger.Len())
}

// AddRow appends a row and returns it with its assigned id.
func (s *Session) AddRow(ctx context.Context, item LineItem) LineItem {
	var added LineItem
	_ = s.apply(ctx, "add", func(st State) (State, error) {
		l := st.Ledger.Add(item)
		added = l.items[l.Len()-1]
		return st.WithLedger(l), nil
	})
	return added
}

// InsertRow inserts a row right after the row at index after (-1 for the
// front) and returns it with its assigned id.
func (s *Session) InsertRow(ctx context.Context, item LineItem, after int) (LineItem, error) {
	var added LineItem
	err := s.apply(ctx, "insert", func(st State) (State, error) {
		l, err := st.Ledger.Insert(item, after)
		if err != nil {
			return st, err
		}
		added = l.items[after+1]
		return st.WithLedger(l), nil
	})
	return added, err
}

// UpdateRow sets one field of the row at index.
func (s *Session) UpdateRow(ctx context.Context, index int, f Field, raw string) error {
	return s.apply(ctx, "update", func(st State) (State, error) {
		l, err := st.Ledger.Update(index, f, raw)
		if err != nil {
			return st, err
		}
		return st.WithLedger(l), nil
	})
}

// RemoveRow deletes the row with the given id, reporting whether it existed.
func (s *Session) RemoveRow(ctx context.Context, id int) bool {
	var found bool
	_ = s.apply(ctx, "remove", func(st State) (State, error) {
		_, _, found = st.Ledger.Find(id)
		return st.WithLedger(st.Ledger.Remove(id)), nil
	})
	return found
}

// SetMeta sets one field of the project metadata.
func (s *Session) SetMeta(ctx context.Context, f MetaField, raw string) error {
	return s.apply(ctx, "meta", func(st State) (State, error) {
		m, err := st.Meta.With(f, raw)
		if err != nil {
			return st, err
		}
		return st.WithMeta(m), nil
	})
}

// Replace swaps in a whole new state, for instance one restored from a share link.
func (s *Session) Replace(ctx context.Context, next State) {
	_ = s.apply(ctx, "replace", func(State) (State, error) { return next, nil })
}

// Import reads a document from r, decodes it and replaces the state with it.
//
// Nothing is applied until r is fully read and decoded: on any error the
// current state is left as it was. Only one import runs at a time, a second
// call while one is in flight fails with ErrImportInProgress.
func (s *Session) Import(ctx context.Context, r io.Reader, decode Decoder) error {
	if !s.importing.CompareAndSwap(false, true) {
		return ErrImportInProgress
	}
	defer s.importing.Store(false)

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("cannot read import: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	next, err := decode(data)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "state imported", "rows", next.Ledger.Len(), "bytes", len(data))
	return s.apply(ctx, "import", func(State) (State, error) { return next, nil })
}
