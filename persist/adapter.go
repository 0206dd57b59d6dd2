package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/etnz/costsheet"
)

// Key is the storage key of the statement state.
const Key = "execution-data"

// Adapter saves and restores the full statement state in a Storage.
type Adapter struct {
	store  Storage
	logger *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

// NewAdapter returns an adapter over store.
func NewAdapter(store Storage, opts ...Option) *Adapter {
	a := &Adapter{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Save writes the state record under Key, replacing the previous one.
// It implements costsheet.Saver.
func (a *Adapter) Save(ctx context.Context, s costsheet.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("cannot encode state: %w", err)
	}
	return a.store.Put(ctx, Key, data)
}

// Load restores the last saved state.
//
// It reports false when nothing was saved, when the storage cannot be read or
// when the saved record is malformed. Those last two are logged, the caller
// is expected to start from a fresh state.
func (a *Adapter) Load(ctx context.Context) (costsheet.State, bool) {
	data, ok, err := a.store.Get(ctx, Key)
	if err != nil {
		a.logger.WarnContext(ctx, "cannot read saved state", "key", Key, "error", err)
		return costsheet.State{}, false
	}
	if !ok {
		return costsheet.State{}, false
	}
	s, err := costsheet.DecodeState(data)
	if err != nil {
		a.logger.WarnContext(ctx, "saved state is malformed, ignoring it", "key", Key, "error", err)
		return costsheet.State{}, false
	}
	return s, true
}
