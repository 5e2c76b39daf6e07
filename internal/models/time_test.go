package models

import (
	"testing"
	"time"
)

func TestParseSlotTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-10 14:00", time.Date(2025, 3, 10, 14, 0, 0, 0, KST)},
		{"2025-03-10T14:00", time.Date(2025, 3, 10, 14, 0, 0, 0, KST)},
		{"2025-03-10", time.Date(2025, 3, 10, 0, 0, 0, 0, KST)},
	}
	for _, tt := range tests {
		got, err := ParseSlotTime(tt.in)
		if err != nil {
			t.Errorf("ParseSlotTime(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseSlotTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseSlotTime("다음 주 금요일"); err == nil {
		t.Error("ParseSlotTime accepted free text")
	}
}

func TestParseSlotRangeEndIncludesWholeDay(t *testing.T) {
	got, err := ParseSlotRangeEnd("2025-03-31")
	if err != nil {
		t.Fatalf("ParseSlotRangeEnd: %v", err)
	}
	want := time.Date(2025, 4, 1, 0, 0, 0, 0, KST)
	if !got.Equal(want) {
		t.Errorf("date-only range end = %v, want %v", got, want)
	}

	got, err = ParseSlotRangeEnd("2025-03-31 18:00")
	if err != nil {
		t.Fatalf("ParseSlotRangeEnd: %v", err)
	}
	want = time.Date(2025, 3, 31, 18, 0, 0, 0, KST)
	if !got.Equal(want) {
		t.Errorf("timed range end = %v, want %v", got, want)
	}
}

func TestFormatKST(t *testing.T) {
	// 2025-03-10 is a Monday.
	got := FormatKST(time.Date(2025, 3, 10, 14, 5, 0, 0, KST))
	want := "2025년 3월 10일 (월) 14:05"
	if got != want {
		t.Errorf("FormatKST = %q, want %q", got, want)
	}

	// A UTC timestamp is rendered in KST.
	got = FormatKST(time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC))
	want = "2025년 3월 10일 (월) 14:00"
	if got != want {
		t.Errorf("FormatKST(UTC) = %q, want %q", got, want)
	}
}
