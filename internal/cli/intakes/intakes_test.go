package intakes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/julianstephens/pillminder/internal/cli/clitest"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/session"
)

func TestTakeCmd(t *testing.T) {
	env := clitest.New(t, models.NormalMode())

	cmd := &TakeCmd{MedicationID: "42", Time: "20:00"}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("take failed: %v", err)
	}

	reqs := env.Backend.Requests()
	if len(reqs) != 1 || reqs[0].Method != http.MethodPost || reqs[0].Path != "/api/intakes" {
		t.Fatalf("requests = %+v", reqs)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(reqs[0].Body), &body); err != nil {
		t.Fatal(err)
	}
	if body["medication_id"] != float64(42) || body["time"] != "20:00" || body["date"] != clitest.Today {
		t.Errorf("body = %v", body)
	}
	if !strings.Contains(env.Out.String(), "Marked medication 42 taken for 20:00 on 2024-03-01") {
		t.Errorf("output = %q", env.Out.String())
	}
}

func TestTakeCmd_InvalidTime(t *testing.T) {
	env := clitest.New(t, models.NormalMode())

	err := (&TakeCmd{MedicationID: "42", Time: "8pm"}).Run(env.Ctx)
	if !errors.Is(err, models.ErrInvalidTime) {
		t.Errorf("error = %v, want ErrInvalidTime", err)
	}
	if len(env.Backend.Requests()) != 0 {
		t.Error("request sent for an invalid time")
	}
}

func TestTakeCmd_FailureStillRefreshes(t *testing.T) {
	env := clitest.New(t, models.NormalMode())
	env.Backend.Fail("POST /api/intakes", http.StatusInternalServerError)

	if err := (&TakeCmd{MedicationID: "42", Time: "08:00"}).Run(env.Ctx); err == nil {
		t.Fatal("expected error")
	}
	if env.Ctx.Session.Refresh() != 1 {
		t.Errorf("refresh = %d, want 1", env.Ctx.Session.Refresh())
	}
}

func TestTakeCmd_ReadOnly(t *testing.T) {
	env := clitest.New(t, models.SharedMode("tok"))

	if err := (&TakeCmd{MedicationID: "42", Time: "08:00"}).Run(env.Ctx); !errors.Is(err, session.ErrReadOnly) {
		t.Errorf("error = %v, want ErrReadOnly", err)
	}
	if len(env.Backend.Requests()) != 0 {
		t.Error("shared mode sent a request")
	}
}

func TestHistoryCmd(t *testing.T) {
	env := clitest.New(t, models.NormalMode())

	if err := (&HistoryCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(env.Out.String(), "2024-03-01 08:00  medication 42 (logged ") {
		t.Errorf("output = %q", env.Out.String())
	}
}

func TestHistoryCmd_SharedEmpty(t *testing.T) {
	env := clitest.New(t, models.SharedMode("tok"))

	if err := (&HistoryCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if env.Backend.Count("GET /api/share/tok/intakes") != 1 {
		t.Error("shared intakes endpoint not used")
	}
	if !strings.Contains(env.Out.String(), "No intakes logged yet.") {
		t.Errorf("output = %q", env.Out.String())
	}
}

func TestHistoryCmd_Limit(t *testing.T) {
	env := clitest.New(t, models.NormalMode())
	env.Backend.Set("GET /api/intakes", `[
		{"id":1,"medication_id":42,"time":"08:00","date":"2024-03-01","taken_at":"x"},
		{"id":2,"medication_id":42,"time":"20:00","date":"2024-02-29","taken_at":"x"}]`)

	if err := (&HistoryCmd{Limit: 1}).Run(env.Ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if strings.Contains(env.Out.String(), "2024-02-29") {
		t.Errorf("limit ignored: %q", env.Out.String())
	}
}
