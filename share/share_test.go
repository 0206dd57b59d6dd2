package share

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/etnz/costsheet"
	"github.com/google/go-cmp/cmp"
)

func testState() costsheet.State {
	return costsheet.State{
		Ledger: costsheet.NewLedger(
			costsheet.LineItem{ID: 1, ProcessCategory: "주자재", ItemName: "모듈", Spec: "640W", Unit: "EA", Quantity: 2, UnitPrice: 5_500_000, Vendor: "한화"},
			costsheet.LineItem{ID: 2, ProcessCategory: "부자재", ItemName: "구조물", Quantity: 247, UnitPrice: 80_000, Note: "현장 가공"},
		),
		Meta: costsheet.ProjectMeta{ProjectName: "영암", Date: "2025년 04월 30일", ContractAmount: "145000000", ContractCapacity: 247},
	}
}

func TestRoundTrip(t *testing.T) {
	want := testState()
	token, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token %q is not unpadded base64url", token)
	}
	got, ok := Decode(token)
	if !ok {
		t.Fatalf("Decode(%q) = false", token)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, token := range []string{"", "garbage-token", "%zz", "W10", "bnVsbA"} {
		if s, ok := Decode(token); ok {
			t.Errorf("Decode(%q) = %+v, true; want false", token, s)
		}
	}
}

func TestDecode_Legacy(t *testing.T) {
	record := `{"items":[{"공정":"주자재","품목":"모듈","수량":2,"단가":"5,500,000"}],"projectName":"영암","contractAmount":145000000}`
	got, ok := Decode(url.QueryEscape(record))
	if !ok {
		t.Fatalf("Decode(legacy) = false")
	}
	if got.Meta.ContractAmount != "145000000" || got.Meta.ProjectName != "영암" {
		t.Errorf("Meta = %+v", got.Meta)
	}
	it, err := got.Ledger.At(0)
	if err != nil {
		t.Fatalf("At(0) error = %v", err)
	}
	if it.ID != 1 || it.Amount() != 11_000_000 {
		t.Errorf("row = %+v", it)
	}
}

// Legacy links put the escaped JSON record in the query, text with '+' or '%'
// must come back unchanged.
func TestDecodeURL_Legacy(t *testing.T) {
	record := `{"rows":[{"id":1,"itemName":"모듈","quantity":2,"unitPrice":100,"spec":"A+B 타입","note":"50% 선급"}],"projectName":"영암 1+2호기"}`
	testCases := []struct {
		name  string
		query string
	}{
		{name: "query escaped", query: url.QueryEscape(record)},
		{name: "component escaped", query: strings.ReplaceAll(url.QueryEscape(record), "+", "%20")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeURL("https://cost.example.com/?" + Param + "=" + tc.query)
			if err != nil {
				t.Fatalf("DecodeURL() error = %v", err)
			}
			it, err := got.Ledger.At(0)
			if err != nil {
				t.Fatalf("At(0) error = %v", err)
			}
			if it.Spec != "A+B 타입" || it.Note != "50% 선급" {
				t.Errorf("row = %+v, want spec %q and note %q", it, "A+B 타입", "50% 선급")
			}
			if got.Meta.ProjectName != "영암 1+2호기" {
				t.Errorf("ProjectName = %q, want %q", got.Meta.ProjectName, "영암 1+2호기")
			}
		})
	}
}

func TestCodec_URL(t *testing.T) {
	c := Codec{Origin: "https://cost.example.com/", Path: "/sheet"}
	link, err := c.URL(testState())
	if err != nil {
		t.Fatalf("URL() error = %v", err)
	}
	if !strings.HasPrefix(link, "https://cost.example.com/sheet?data=") {
		t.Errorf("URL() = %q", link)
	}
	got, err := DecodeURL(link)
	if err != nil {
		t.Fatalf("DecodeURL() error = %v", err)
	}
	if diff := cmp.Diff(testState(), got); diff != "" {
		t.Errorf("DecodeURL() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeURL_Errors(t *testing.T) {
	if _, err := DecodeURL("https://cost.example.com/sheet"); !errors.Is(err, ErrNoToken) {
		t.Errorf("DecodeURL(no token) error = %v, want ErrNoToken", err)
	}
	if _, err := DecodeURL("https://cost.example.com/sheet?data=garbage-token"); !errors.Is(err, costsheet.ErrParse) {
		t.Errorf("DecodeURL(garbage) error = %v, want ErrParse", err)
	}
}

// A compressed token is much shorter than the record it carries.
func TestEncode_Compresses(t *testing.T) {
	s := testState()
	for range 50 {
		s = s.WithLedger(s.Ledger.Add(costsheet.LineItem{ProcessCategory: "인건비", ItemName: "전기공", Unit: "인", Quantity: 3, UnitPrice: 250_000}))
	}
	token, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	record, _ := s.MarshalJSON()
	if len(token) >= len(url.QueryEscape(string(record)))/2 {
		t.Errorf("token is %d bytes for a %d bytes record", len(token), len(record))
	}
}
