package config

import (
	"testing"
	"time"
)

func TestSlotWindowLabels(t *testing.T) {
	tests := []struct {
		name   string
		window SlotWindow
		want   []string
	}{
		{
			name:   "standard_clinic_day",
			window: SlotWindow{DayStart: "09:00", DayEnd: "17:00", Interval: 30 * time.Minute},
			want: []string{
				"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
				"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
				"15:00", "15:30", "16:00", "16:30",
			},
		},
		{
			name:   "hourly_interval",
			window: SlotWindow{DayStart: "08:00", DayEnd: "11:00", Interval: time.Hour},
			want:   []string{"08:00", "09:00", "10:00"},
		},
		{
			name:   "end_is_exclusive",
			window: SlotWindow{DayStart: "09:00", DayEnd: "09:30", Interval: 30 * time.Minute},
			want:   []string{"09:00"},
		},
		{
			name:   "malformed_start",
			window: SlotWindow{DayStart: "9am", DayEnd: "17:00", Interval: 30 * time.Minute},
			want:   nil,
		},
		{
			name:   "inverted_window",
			window: SlotWindow{DayStart: "17:00", DayEnd: "09:00", Interval: 30 * time.Minute},
			want:   nil,
		},
		{
			name:   "zero_interval",
			window: SlotWindow{DayStart: "09:00", DayEnd: "17:00"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.window.Labels()
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d labels, got %d (%v)", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}
