package persist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/etnz/costsheet"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testState() costsheet.State {
	return costsheet.State{
		Ledger: costsheet.NewLedger(
			costsheet.LineItem{ID: 1, ProcessCategory: "주자재", ItemName: "모듈", Quantity: 2, UnitPrice: 5_500_000},
			costsheet.LineItem{ID: 4, ProcessCategory: "부자재", ItemName: "구조물", Quantity: 247, UnitPrice: 80_000},
		),
		Meta: costsheet.ProjectMeta{ProjectName: "영암", Date: "2025년 04월 30일", ContractAmount: "145000000", ContractCapacity: 247},
	}
}

func TestAdapter_SaveLoad(t *testing.T) {
	ctx := context.Background()
	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(s)
			_, ok := a.Load(ctx)
			require.False(t, ok, "nothing saved yet")

			want := testState()
			require.NoError(t, a.Save(ctx, want), "Save should succeed")
			got, ok := a.Load(ctx)
			require.True(t, ok, "Load should find the saved state")
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdapter_MalformedRecord(t *testing.T) {
	ctx := context.Background()
	s := NewFileStorage(t.TempDir())
	require.NoError(t, s.Put(ctx, Key, []byte("not json")))

	var logs bytes.Buffer
	a := NewAdapter(s, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	_, ok := a.Load(ctx)
	require.False(t, ok, "a malformed record should be reported as absent")
	require.Contains(t, logs.String(), "malformed")
}

func TestAdapter_PartialRecord(t *testing.T) {
	ctx := context.Background()
	s := NewFileStorage(t.TempDir())
	require.NoError(t, s.Put(ctx, Key, []byte(`{"projectName":"부분"}`)))

	got, ok := NewAdapter(s).Load(ctx)
	require.True(t, ok)
	require.Equal(t, "부분", got.Meta.ProjectName)
	require.Equal(t, 0, got.Ledger.Len())
	require.NotEmpty(t, got.Meta.Date, "missing date should default to today")
}

type brokenStorage struct{}

func (brokenStorage) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("unreachable")
}
func (brokenStorage) Put(context.Context, string, []byte) error { return errors.New("unreachable") }

func TestAdapter_BrokenStorage(t *testing.T) {
	var logs bytes.Buffer
	a := NewAdapter(brokenStorage{}, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	_, ok := a.Load(context.Background())
	require.False(t, ok)
	require.Contains(t, logs.String(), "unreachable")
	require.Error(t, a.Save(context.Background(), testState()))
}

// The adapter plugs into a session, every change lands in the storage.
func TestAdapter_Session(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewFileStorage(t.TempDir()))
	s := costsheet.NewSession(costsheet.NewState(), costsheet.WithSaver(a))
	s.AddRow(ctx, costsheet.LineItem{ItemName: "모듈", Quantity: 1, UnitPrice: 10})
	require.NoError(t, s.SetMeta(ctx, costsheet.MetaProjectName, "세션"))

	got, ok := a.Load(ctx)
	require.True(t, ok)
	if diff := cmp.Diff(s.State(), got); diff != "" {
		t.Errorf("saved state mismatch (-session +saved):\n%s", diff)
	}
}
