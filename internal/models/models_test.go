package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestID_PreservesJSONForm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "number", in: `42`, want: `42`},
		{name: "string", in: `"a1b2"`, want: `"a1b2"`},
		{name: "numeric string", in: `"42"`, want: `"42"`},
		{name: "null", in: `null`, want: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			out, err := json.Marshal(id)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("got %s, want %s", out, tt.want)
			}
		})
	}

	var id ID
	if err := json.Unmarshal([]byte(`{"x":1}`), &id); err == nil {
		t.Error("expected error for object id")
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "42", want: "42"},
		{in: "-3", want: "-3"},
		{in: "med-7", want: `"med-7"`},
		{in: "007", want: `"007"`},
		{in: "042", want: `"042"`},
		{in: "+5", want: `"+5"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := json.Marshal(NewIntake{MedicationID: ParseID(tt.in)})
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if !strings.Contains(string(got), `"medication_id":`+tt.want) {
				t.Errorf("ParseID(%q) marshals to %s, want medication_id %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestShareLink_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		link   ShareLink
		origin string
		want   string
	}{
		{
			name:   "server url wins",
			link:   ShareLink{Token: "abc", URL: "https://pills.example.com/s/abc"},
			origin: "http://localhost:5173",
			want:   "https://pills.example.com/s/abc",
		},
		{
			name:   "missing url",
			link:   ShareLink{Token: "abc"},
			origin: "http://localhost:5173",
			want:   "http://localhost:5173/?share=abc",
		},
		{
			name:   "url echoes token",
			link:   ShareLink{Token: "abc", URL: "abc"},
			origin: "https://pills.example.com/",
			want:   "https://pills.example.com/?share=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.link.Resolve(tt.origin); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMode(t *testing.T) {
	if NormalMode().ReadOnly() {
		t.Error("normal mode must not be read-only")
	}
	if SharedMode("  ").ReadOnly() {
		t.Error("blank token must fall back to normal mode")
	}

	m := SharedMode("tok")
	token, ok := m.Shared()
	if !ok || token != "tok" || !m.ReadOnly() {
		t.Errorf("SharedMode(tok) = %q, %v", token, ok)
	}
	if m.String() != "shared" || NormalMode().String() != "normal" {
		t.Error("unexpected mode names")
	}
}

func TestPermission_Transition(t *testing.T) {
	tests := []struct {
		from, to Permission
		wantErr  bool
	}{
		{PermissionUnrequested, PermissionGranted, false},
		{PermissionUnrequested, PermissionDenied, false},
		{PermissionGranted, PermissionGranted, false},
		{PermissionGranted, PermissionDenied, true},
		{PermissionDenied, PermissionGranted, true},
		{PermissionGranted, PermissionUnrequested, true},
	}

	for _, tt := range tests {
		got, err := tt.from.Transition(tt.to)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s -> %s: error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrPermissionTransition) {
				t.Errorf("%s -> %s: error %v is not ErrPermissionTransition", tt.from, tt.to, err)
			}
			if got != tt.from {
				t.Errorf("%s -> %s: state changed to %s on error", tt.from, tt.to, got)
			}
		} else if got != tt.to {
			t.Errorf("%s -> %s: got %s", tt.from, tt.to, got)
		}
	}

	for _, p := range []Permission{PermissionUnrequested, PermissionGranted, PermissionDenied} {
		if ParsePermission(p.String()) != p {
			t.Errorf("ParsePermission(%q) did not round trip", p)
		}
	}
}

func TestScheduleItem_Notification(t *testing.T) {
	item := ScheduleItem{MedicationID: NumericID(42), Name: "Metformin", Dosage: "1 pill", Time: "20:00"}

	n := item.Notification("2024-03-01")

	if n.Title != "Medication Reminder" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Body != "Metformin • 1 pill at 20:00" {
		t.Errorf("Body = %q", n.Body)
	}
	if n.Key != "42-20:00-2024-03-01" {
		t.Errorf("Key = %q", n.Key)
	}
}

func TestIntake_Key(t *testing.T) {
	withID := Intake{ID: NumericID(9), MedicationID: NumericID(42), Date: "2024-03-01", Time: "08:00"}
	if withID.Key() != "9" {
		t.Errorf("Key() = %q, want 9", withID.Key())
	}

	withoutID := Intake{MedicationID: NumericID(42), Date: "2024-03-01", Time: "08:00"}
	if withoutID.Key() != "42-2024-03-01-08:00" {
		t.Errorf("Key() = %q", withoutID.Key())
	}
}

func TestMedication_FormatDays(t *testing.T) {
	if got := (Medication{}).FormatDays(); got != "-" {
		t.Errorf("absent days rendered as %q", got)
	}
	if got := (Medication{Days: []int{0, 1, 2, 3, 4, 5, 6}}).FormatDays(); got != "every day" {
		t.Errorf("all days rendered as %q", got)
	}
	if got := (Medication{Days: []int{0, 4}}).FormatDays(); got != "Mon,Fri" {
		t.Errorf("Mon/Fri rendered as %q", got)
	}
}
