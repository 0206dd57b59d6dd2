package costsheet

import (
	"testing"

	"github.com/etnz/costsheet/date"
)

// A fresh statement is dated today and carries no figures.
func TestDefaultMeta(t *testing.T) {
	got := DefaultMeta()
	want := ProjectMeta{Date: date.Today().Korean()}
	if got != want {
		t.Errorf("DefaultMeta() = %+v, want %+v", got, want)
	}
	if _, ok := got.Contract(); ok {
		t.Error("a fresh statement should have no contract amount")
	}
}
