package costsheet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument(scenarioState())

	want := ProjectInfo{
		Name:             "영암 태양광 발전소",
		Date:             "2025년 04월 30일",
		ContractAmount:   "145,000,000",
		RevenueAmount:    "114,240,000",
		ContractCapacity: "247",
		Total:            "30,760,000",
		Rate:             "21.21",
		UnitPrice:        "124,534",
	}
	if diff := cmp.Diff(want, doc.Info); diff != "" {
		t.Errorf("Info mismatch (-want +got):\n%s", diff)
	}
	if doc.Title != DocumentTitle || doc.Disclaimer != Disclaimer {
		t.Errorf("Title, Disclaimer = %q, %q", doc.Title, doc.Disclaimer)
	}
	if len(doc.Rows) != 2 {
		t.Errorf("Rows = %d, want 2", len(doc.Rows))
	}
}

func TestNewDocument_Undefined(t *testing.T) {
	doc := NewDocument(State{})
	if doc.Info.Rate != Sentinel || doc.Info.UnitPrice != Sentinel || doc.Info.RevenueAmount != Sentinel {
		t.Errorf("undefined metrics should render as %q: %+v", Sentinel, doc.Info)
	}
	if doc.Rows == nil {
		t.Errorf("Rows should be empty, not nil")
	}
}
