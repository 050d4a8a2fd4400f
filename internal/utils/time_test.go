package utils

import (
	"testing"
	"time"
)

func TestCombineDateAndTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name    string
		date    string
		time    string
		want    time.Time
		wantErr bool
	}{
		{
			name: "morning dose",
			date: "2024-03-01",
			time: "08:00",
			want: time.Date(2024, 3, 1, 8, 0, 0, 0, loc),
		},
		{
			name: "last minute of day",
			date: "2024-03-01",
			time: "23:59",
			want: time.Date(2024, 3, 1, 23, 59, 0, 0, loc),
		},
		{name: "bad date", date: "2024/03/01", time: "08:00", wantErr: true},
		{name: "bad time", date: "2024-03-01", time: "25:00", wantErr: true},
		{name: "empty time", date: "2024-03-01", time: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineDateAndTime(tt.date, tt.time, loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CombineDateAndTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("CombineDateAndTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateTimeFormat(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"08:00", true},
		{"20:30", true},
		{"00:00", true},
		{"24:00", false},
		{"08:60", false},
		{"", false},
		{"noon", false},
	}

	for _, tt := range tests {
		if got := ValidateTimeFormat(tt.input); got != tt.want {
			t.Errorf("ValidateTimeFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestShiftDate(t *testing.T) {
	tests := []struct {
		date string
		days int
		want string
	}{
		{"2024-03-01", -1, "2024-02-29"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-01", 0, "2024-03-01"},
	}

	for _, tt := range tests {
		got, err := ShiftDate(tt.date, tt.days)
		if err != nil {
			t.Fatalf("ShiftDate(%q, %d) unexpected error: %v", tt.date, tt.days, err)
		}
		if got != tt.want {
			t.Errorf("ShiftDate(%q, %d) = %q, want %q", tt.date, tt.days, got, tt.want)
		}
	}

	if _, err := ShiftDate("not-a-date", 1); err == nil {
		t.Error("ShiftDate() expected error for malformed date")
	}
}

func TestISOTimestamp(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	in := time.Date(2024, 3, 1, 3, 4, 5, 123456789, loc)

	if got, want := ISOTimestamp(in), "2024-03-01T08:04:05.123Z"; got != want {
		t.Errorf("ISOTimestamp() = %q, want %q", got, want)
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	if got := Today(now); got != "2024-03-01" {
		t.Errorf("Today() = %q, want 2024-03-01", got)
	}
}
