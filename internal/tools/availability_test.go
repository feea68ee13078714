package tools

import (
	"strings"
	"testing"
)

func TestCheckAvailability(t *testing.T) {
	weekend := []int{5, 6} // Saturday, Sunday with Monday=0

	tests := []struct {
		name     string
		date     string
		timeSlot string
		want     string
	}{
		{
			name: "closed saturday",
			date: "2025-06-14",
			want: "2025-06-14（土曜日）は担当者がお休みをいただいております。平日でご都合の良い日はございますか。",
		},
		{
			name: "closed sunday",
			date: "2025-06-15",
			want: "2025-06-15（日曜日）は担当者がお休みをいただいております。平日でご都合の良い日はございますか。",
		},
		{
			name:     "weekday with time",
			date:     "2025-06-13",
			timeSlot: "13:00",
			want:     "2025-06-13（金曜日） 13:00は空いております。",
		},
		{
			name: "weekday without time",
			date: "2025-06-13",
			want: "2025-06-13（金曜日）は対応可能です。",
		},
		{
			name: "malformed date",
			date: "6月13日",
			want: badDateFormat,
		},
		{
			name: "empty date",
			date: "",
			want: badDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkAvailability(tt.date, tt.timeSlot, weekend)
			if got != tt.want {
				t.Errorf("checkAvailability(%q, %q) = %q, want %q", tt.date, tt.timeSlot, got, tt.want)
			}
		})
	}
}

func TestCheckAvailabilityCustomClosedDays(t *testing.T) {
	// Wednesday closed instead of the weekend.
	got := checkAvailability("2025-06-11", "", []int{2})
	if !strings.Contains(got, "お休み") {
		t.Errorf("expected closed-day message for configured Wednesday, got %q", got)
	}

	got = checkAvailability("2025-06-14", "", []int{2})
	if !strings.Contains(got, "対応可能") {
		t.Errorf("expected open-day message for Saturday when only Wednesday is closed, got %q", got)
	}
}
