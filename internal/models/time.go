package models

import (
	"fmt"
	"time"
)

// KST is the timezone every extracted date/time slot is interpreted in.
// A fixed offset avoids depending on the host tzdata.
var KST = time.FixedZone("KST", 9*60*60)

var slotLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSlotTime parses a date/time slot string as produced by the
// classifier ("YYYY-MM-DD" with an optional "HH:MM") in KST.
func ParseSlotTime(s string) (time.Time, error) {
	for _, layout := range slotLayouts {
		if t, err := time.ParseInLocation(layout, s, KST); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date/time value %q", s)
}

// ParseSlotRangeEnd parses the end of a date range. A date-only value
// means the whole day is included, so it resolves to the following
// midnight.
func ParseSlotRangeEnd(s string) (time.Time, error) {
	t, err := ParseSlotTime(s)
	if err != nil {
		return time.Time{}, err
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && len(s) <= len("2006-01-02") {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatKST renders a timestamp the way reservation listings show it:
// Korean locale date with weekday plus 24-hour time, in KST.
func FormatKST(t time.Time) string {
	t = t.In(KST)
	return fmt.Sprintf("%d년 %d월 %d일 (%s) %02d:%02d",
		t.Year(), int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()], t.Hour(), t.Minute())
}
