package tools

import (
	"testing"
	"time"
)

var jst = time.FixedZone("JST", 9*60*60)

// fixedNow is a Tuesday.
var fixedNow = time.Date(2025, 6, 10, 10, 0, 0, 0, jst)

func TestResolveRelativeDate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"tomorrow", "明日", "2025-06-11（水曜日）"},
		{"day after tomorrow", "明後日", "2025-06-12（木曜日）"},
		{"next week", "来週", "2025-06-17（火曜日）"},
		{"three days later", "3日後", "2025-06-13（金曜日）"},
		{"ten days later", "10日後", "2025-06-20（金曜日）"},
		{"surrounding whitespace", " 明日 ", "2025-06-11（水曜日）"},
		{"qualified next week", "来週の火曜", couldNotCalculate},
		{"unknown expression", "そのうち", couldNotCalculate},
		{"empty expression", "", couldNotCalculate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveRelativeDate(tt.expr, fixedNow)
			if got != tt.want {
				t.Errorf("resolveRelativeDate(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestResolveRelativeDateCrossesMonth(t *testing.T) {
	// Monday, last day of June.
	now := time.Date(2025, 6, 30, 9, 0, 0, 0, jst)
	got := resolveRelativeDate("明日", now)
	want := "2025-07-01（火曜日）"
	if got != want {
		t.Errorf("resolveRelativeDate crossing month = %q, want %q", got, want)
	}
}

func TestFormatDateWithWeekday(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, 6, 9, 0, 0, 0, 0, jst), "2025-06-09（月曜日）"},
		{time.Date(2025, 6, 14, 0, 0, 0, 0, jst), "2025-06-14（土曜日）"},
		{time.Date(2025, 6, 15, 0, 0, 0, 0, jst), "2025-06-15（日曜日）"},
	}

	for _, tt := range tests {
		got := formatDateWithWeekday(tt.date)
		if got != tt.want {
			t.Errorf("formatDateWithWeekday(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}
