package costsheet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recordingSaver keeps every saved state.
type recordingSaver struct {
	mu    sync.Mutex
	saved []State
	err   error
}

func (r *recordingSaver) Save(_ context.Context, s State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, s)
	return r.err
}

func (r *recordingSaver) last() (State, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saved) == 0 {
		return State{}, 0
	}
	return r.saved[len(r.saved)-1], len(r.saved)
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestSession(saver Saver) *Session {
	return NewSession(State{Meta: ProjectMeta{ProjectName: "test"}}, WithSaver(saver), WithLogger(discardLogger()))
}

func TestSession_SavesAfterEveryChange(t *testing.T) {
	ctx := context.Background()
	saver := &recordingSaver{}
	s := newTestSession(saver)

	added := s.AddRow(ctx, LineItem{ItemName: "모듈"})
	if added.ID != 1 {
		t.Errorf("AddRow() id = %d, want 1", added.ID)
	}
	if _, err := s.InsertRow(ctx, LineItem{ItemName: "구조물"}, -1); err != nil {
		t.Fatalf("InsertRow() error = %v", err)
	}
	if err := s.UpdateRow(ctx, 1, FieldQuantity, "2"); err != nil {
		t.Fatalf("UpdateRow() error = %v", err)
	}
	if err := s.SetMeta(ctx, MetaContractAmount, "1,000"); err != nil {
		t.Fatalf("SetMeta() error = %v", err)
	}
	if !s.RemoveRow(ctx, 2) {
		t.Errorf("RemoveRow(2) = false, want true")
	}

	last, n := saver.last()
	if n != 5 {
		t.Errorf("saved %d times, want 5", n)
	}
	if diff := cmp.Diff(s.State(), last); diff != "" {
		t.Errorf("last saved state differs from current (-current +saved):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"모듈"}, names(last.Ledger)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if last.Meta.ContractAmount != "1000" {
		t.Errorf("ContractAmount = %q, want 1000", last.Meta.ContractAmount)
	}
}

func TestSession_FailedTransitionKeepsState(t *testing.T) {
	ctx := context.Background()
	saver := &recordingSaver{}
	s := newTestSession(saver)
	s.AddRow(ctx, LineItem{ItemName: "a"})
	before := s.State()

	if err := s.UpdateRow(ctx, 5, FieldNote, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("UpdateRow(5) error = %v, want ErrOutOfRange", err)
	}
	if _, err := s.InsertRow(ctx, LineItem{}, 3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("InsertRow(3) error = %v, want ErrOutOfRange", err)
	}
	if err := s.SetMeta(ctx, MetaField(42), "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("SetMeta(42) error = %v, want ErrUnknownField", err)
	}
	if diff := cmp.Diff(before, s.State()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
	if _, n := saver.last(); n != 1 {
		t.Errorf("saved %d times, want 1", n)
	}
}

func TestSession_SaveFailureKeepsChange(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	s := newTestSession(saver)
	s.AddRow(context.Background(), LineItem{ItemName: "a"})
	if s.State().Ledger.Len() != 1 {
		t.Errorf("a failed save must not undo the change")
	}
}

func TestSession_Import(t *testing.T) {
	ctx := context.Background()
	saver := &recordingSaver{}
	s := newTestSession(saver)

	want := scenarioState()
	data, _ := want.MarshalJSON()
	if err := s.Import(ctx, strings.NewReader(string(data)), DecodeState); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if diff := cmp.Diff(want, s.State()); diff != "" {
		t.Errorf("Import() mismatch (-want +got):\n%s", diff)
	}
	if last, _ := saver.last(); !last.Ledger.Equal(want.Ledger) {
		t.Errorf("imported state was not saved")
	}
}

func TestSession_FailedImportKeepsState(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(&recordingSaver{})
	s.AddRow(ctx, LineItem{ItemName: "a"})
	before := s.State()

	if err := s.Import(ctx, strings.NewReader("garbage"), DecodeState); !errors.Is(err, ErrParse) {
		t.Errorf("Import(garbage) error = %v, want ErrParse", err)
	}
	if err := s.Import(ctx, iotest{err: io.ErrUnexpectedEOF}, DecodeState); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Import(broken reader) error = %v, want ErrUnexpectedEOF", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.Import(canceled, strings.NewReader(`{}`), DecodeState); !errors.Is(err, context.Canceled) {
		t.Errorf("Import(canceled) error = %v, want context.Canceled", err)
	}
	if diff := cmp.Diff(before, s.State()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
}

func TestSession_ConcurrentImport(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(&recordingSaver{})

	pr, pw := io.Pipe()
	done := make(chan error)
	started := make(chan struct{})
	go func() {
		done <- s.Import(ctx, startReader{pr, started}, DecodeState)
	}()
	<-started

	if err := s.Import(ctx, strings.NewReader(`{}`), DecodeState); !errors.Is(err, ErrImportInProgress) {
		t.Errorf("second Import() error = %v, want ErrImportInProgress", err)
	}

	pw.Write([]byte(`{"projectName":"first"}`))
	pw.Close()
	if err := <-done; err != nil {
		t.Fatalf("first Import() error = %v", err)
	}
	if got := s.State().Meta.ProjectName; got != "first" {
		t.Errorf("ProjectName = %q, want first", got)
	}

	// the flag is released once an import is over.
	if err := s.Import(ctx, strings.NewReader(`{"projectName":"again"}`), DecodeState); err != nil {
		t.Errorf("Import() after completion error = %v", err)
	}
}

// iotest is a reader that always fails.
type iotest struct{ err error }

func (r iotest) Read([]byte) (int, error) { return 0, r.err }

// startReader signals its first Read.
type startReader struct {
	r       io.Reader
	started chan struct{}
}

func (r startReader) Read(p []byte) (int, error) {
	select {
	case <-r.started:
	default:
		close(r.started)
	}
	return r.r.Read(p)
}
