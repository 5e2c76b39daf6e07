package bot

import "testing"

func TestParseOptionCallback(t *testing.T) {
	tests := []struct {
		data   string
		turnID string
		idx    int
		ok     bool
	}{
		{"9f3c1d2e-0000-4000-8000-123456789abc:2", "9f3c1d2e-0000-4000-8000-123456789abc", 2, true},
		{"abc:0", "abc", 0, true},
		{"abc", "", 0, false},
		{"abc:-1", "", 0, false},
		{"abc:x", "", 0, false},
	}
	for _, tt := range tests {
		turnID, idx, ok := parseOptionCallback(tt.data)
		if ok != tt.ok {
			t.Errorf("parseOptionCallback(%q) ok = %v, want %v", tt.data, ok, tt.ok)
			continue
		}
		if ok && (turnID != tt.turnID || idx != tt.idx) {
			t.Errorf("parseOptionCallback(%q) = (%q, %d), want (%q, %d)", tt.data, turnID, idx, tt.turnID, tt.idx)
		}
	}
}
