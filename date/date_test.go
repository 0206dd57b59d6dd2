package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 4, 30)
	d2 := New(2025, 4, 30)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	got := New(2025, 4, 31)
	if want := New(2025, 5, 1); got != want {
		t.Errorf("New(2025, 4, 31) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-04-30", want: New(2025, time.April, 30)},
		{in: "2025-4-3", want: New(2025, time.April, 3)},
		{in: "2025년 04월 30일", want: New(2025, time.April, 30)},
		{in: " 2025년4월3일 ", want: New(2025, time.April, 3)},
		{in: "2025년 13월 30일", wantErr: true},
		{in: "tomorrow", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestKorean(t *testing.T) {
	d := MustParse("2025-04-30")
	if got, want := d.Korean(), "2025년 04월 30일"; got != want {
		t.Errorf("Korean() = %q, want %q", got, want)
	}
	if got, want := d.String(), "2025-04-30"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	back, err := Parse(d.Korean())
	if err != nil || back != d {
		t.Errorf("Parse(Korean()) = %v, %v; want %v", back, err, d)
	}
}

func TestIsZero(t *testing.T) {
	if !(Date{}).IsZero() {
		t.Error("zero Date should be zero")
	}
	if Today().IsZero() {
		t.Error("Today should not be zero")
	}
}
