package dialogue

import (
	"testing"
	"time"

	"kira/internal/models"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name        string
		now         time.Time
		first, last string
	}{
		{"mid month", time.Date(2025, 3, 15, 12, 0, 0, 0, models.KST), "2025-03-01", "2025-03-31"},
		{"february", time.Date(2025, 2, 1, 0, 0, 0, 0, models.KST), "2025-02-01", "2025-02-28"},
		{"leap february", time.Date(2024, 2, 29, 23, 59, 0, 0, models.KST), "2024-02-01", "2024-02-29"},
		{"december", time.Date(2024, 12, 31, 0, 0, 0, 0, models.KST), "2024-12-01", "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := MonthRange(tt.now)
			if first != tt.first || last != tt.last {
				t.Errorf("MonthRange = (%s, %s), want (%s, %s)", first, last, tt.first, tt.last)
			}
		})
	}
}

func TestNextMonthRange(t *testing.T) {
	tests := []struct {
		name        string
		now         time.Time
		first, last string
	}{
		{"mid month", time.Date(2025, 3, 15, 12, 0, 0, 0, models.KST), "2025-04-01", "2025-04-30"},
		{"january to february", time.Date(2025, 1, 10, 0, 0, 0, 0, models.KST), "2025-02-01", "2025-02-28"},
		{"december rollover", time.Date(2024, 12, 15, 12, 0, 0, 0, models.KST), "2025-01-01", "2025-01-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := NextMonthRange(tt.now)
			if first != tt.first || last != tt.last {
				t.Errorf("NextMonthRange = (%s, %s), want (%s, %s)", first, last, tt.first, tt.last)
			}
		})
	}
}
