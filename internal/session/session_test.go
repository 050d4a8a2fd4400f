package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/pillminder/internal/api"
	"github.com/julianstephens/pillminder/internal/models"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
}

func (f *fakeBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		status := f.status
		f.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/medications":
			var in map[string]any
			if err := json.Unmarshal(body, &in); err != nil {
				t.Errorf("bad create body: %v", err)
			}
			in["id"] = 7
			json.NewEncoder(w).Encode(in)
		case r.Method == http.MethodPost && r.URL.Path == "/api/intakes":
			w.Write([]byte(`{"id":1,"medication_id":42,"time":"08:00","date":"2024-03-01","taken_at":"2024-03-01T08:01:00.000Z"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/share/create":
			w.Write([]byte(`{"token":"abc123"}`))
		case r.URL.Path == "/api/intakes":
			w.Write([]byte(`[{"medication_id":42,"time":"08:00","date":"2024-03-01","taken_at":"2024-03-01T08:01:00.000Z"}]`))
		case r.URL.Path == "/api/share/tok/intakes":
			w.Write([]byte(`[]`))
		case r.URL.Path == "/api/share/tok/schedule":
			w.Write([]byte(`{"date":"2024-03-01","items":[{"medication_id":42,"name":"Metformin","dosage":"1 pill","time":"08:00"}]}`))
		case r.URL.Path == "/api/medications":
			w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (f *fakeBackend) posts() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, r := range f.requests {
		if r.Method == http.MethodPost {
			out = append(out, r)
		}
	}
	return out
}

func newTestSession(t *testing.T, mode models.Mode) (*Session, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	hs := httptest.NewServer(fb.handler(t))
	t.Cleanup(hs.Close)

	client, err := api.New(hs.URL)
	if err != nil {
		t.Fatal(err)
	}
	now := func() time.Time { return time.Date(2024, 3, 1, 8, 1, 0, 0, time.Local) }
	return New(client, mode).WithClock(now), fb
}

func TestAddMedication_ResetsDraftAndRefreshesOnce(t *testing.T) {
	s, fb := newTestSession(t, models.NormalMode())

	d := models.NewDraft()
	d.Name = "Metformin"
	d.Dosage = "1 pill"
	if err := d.AddTime("20:00"); err != nil {
		t.Fatal(err)
	}

	med, err := s.AddMedication(context.Background(), d)
	if err != nil {
		t.Fatalf("AddMedication returned error: %v", err)
	}
	if med.ID != models.NumericID(7) {
		t.Errorf("created id = %s", med.ID)
	}

	if !reflect.DeepEqual(d, models.NewDraft()) {
		t.Errorf("draft not reset: %+v", d)
	}
	if s.Refresh() != 1 {
		t.Errorf("refresh = %d, want exactly 1", s.Refresh())
	}

	posts := fb.posts()
	if len(posts) != 1 {
		t.Fatalf("got %d POSTs, want 1", len(posts))
	}
	var sent models.NewMedication
	if err := json.Unmarshal([]byte(posts[0].Body), &sent); err != nil {
		t.Fatal(err)
	}
	want := models.NewMedication{
		Name:   "Metformin",
		Dosage: "1 pill",
		Times:  []string{"08:00", "20:00"},
		Days:   []int{0, 1, 2, 3, 4, 5, 6},
		Active: true,
	}
	if !reflect.DeepEqual(sent, want) {
		t.Errorf("sent %+v, want %+v", sent, want)
	}
}

func TestAddMedication_IncompleteDraftSendsNothing(t *testing.T) {
	tests := []struct {
		name  string
		draft func() *models.Draft
	}{
		{name: "missing name", draft: func() *models.Draft { d := models.NewDraft(); d.Dosage = "1 pill"; return d }},
		{name: "missing dosage", draft: func() *models.Draft { d := models.NewDraft(); d.Name = "Metformin"; return d }},
		{name: "no times", draft: func() *models.Draft {
			d := models.NewDraft()
			d.Name, d.Dosage = "Metformin", "1 pill"
			d.RemoveTime("08:00")
			return d
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fb := newTestSession(t, models.NormalMode())
			d := tt.draft()
			before := *d

			_, err := s.AddMedication(context.Background(), d)
			if !errors.Is(err, ErrIncompleteDraft) {
				t.Errorf("err = %v, want ErrIncompleteDraft", err)
			}
			if len(fb.posts()) != 0 {
				t.Error("request sent for incomplete draft")
			}
			if s.Refresh() != 0 {
				t.Error("refresh bumped for rejected draft")
			}
			if !reflect.DeepEqual(*d, before) {
				t.Error("rejected draft was modified")
			}
		})
	}
}

func TestAddMedication_FailureKeepsDraft(t *testing.T) {
	s, fb := newTestSession(t, models.NormalMode())
	fb.status = http.StatusInternalServerError

	d := models.NewDraft()
	d.Name, d.Dosage = "Metformin", "1 pill"

	if _, err := s.AddMedication(context.Background(), d); err == nil {
		t.Fatal("expected error")
	}
	if d.Name != "Metformin" {
		t.Error("draft reset after failed create")
	}
	if s.Refresh() != 0 {
		t.Errorf("refresh = %d after failed create", s.Refresh())
	}
}

func TestMarkTaken_SendsIntake(t *testing.T) {
	s, fb := newTestSession(t, models.NormalMode())

	if _, err := s.MarkTaken(context.Background(), models.NumericID(42), "08:00"); err != nil {
		t.Fatalf("MarkTaken returned error: %v", err)
	}

	posts := fb.posts()
	if len(posts) != 1 || posts[0].Path != "/api/intakes" {
		t.Fatalf("posts = %+v", posts)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(posts[0].Body), &body); err != nil {
		t.Fatal(err)
	}
	if body["medication_id"] != float64(42) || body["time"] != "08:00" || body["date"] != "2024-03-01" {
		t.Errorf("body = %v", body)
	}
	takenAt, ok := body["taken_at"].(string)
	if !ok {
		t.Fatalf("taken_at missing: %v", body)
	}
	if _, err := time.Parse(time.RFC3339, takenAt); err != nil {
		t.Errorf("taken_at %q is not an ISO timestamp: %v", takenAt, err)
	}
	if s.Refresh() != 1 {
		t.Errorf("refresh = %d, want 1", s.Refresh())
	}
}

func TestMarkTaken_FailureStillRefreshes(t *testing.T) {
	s, fb := newTestSession(t, models.NormalMode())
	fb.status = http.StatusBadGateway

	_, err := s.MarkTaken(context.Background(), models.NumericID(42), "08:00")
	var se *api.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadGateway {
		t.Errorf("err = %v, want StatusError 502", err)
	}
	if s.Refresh() != 1 {
		t.Errorf("refresh = %d, want 1", s.Refresh())
	}
}

func TestCreateShareLink_FallsBackToOrigin(t *testing.T) {
	s, _ := newTestSession(t, models.NormalMode())

	url, err := s.CreateShareLink(context.Background(), "https://app.example.com/")
	if err != nil {
		t.Fatalf("CreateShareLink returned error: %v", err)
	}
	if url != "https://app.example.com/?share=abc123" {
		t.Errorf("url = %q", url)
	}
	if s.Refresh() != 0 {
		t.Error("share link creation must not refresh")
	}
}

func TestSharedMode_IsReadOnly(t *testing.T) {
	ctx := context.Background()
	s, fb := newTestSession(t, models.SharedMode("tok"))

	d := models.NewDraft()
	d.Name, d.Dosage = "Metformin", "1 pill"

	if _, err := s.AddMedication(ctx, d); !errors.Is(err, ErrReadOnly) {
		t.Errorf("AddMedication err = %v", err)
	}
	if _, err := s.MarkTaken(ctx, models.NumericID(42), "08:00"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("MarkTaken err = %v", err)
	}
	if _, err := s.CreateShareLink(ctx, "https://app.example.com"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("CreateShareLink err = %v", err)
	}

	if len(fb.posts()) != 0 {
		t.Errorf("shared mode issued %d POSTs", len(fb.posts()))
	}
	if s.Refresh() != 0 {
		t.Errorf("refresh = %d in shared mode", s.Refresh())
	}
}

func TestSharedMode_Reads(t *testing.T) {
	ctx := context.Background()
	s, fb := newTestSession(t, models.SharedMode("tok"))

	intakes, err := s.History(ctx)
	if err != nil || len(intakes) != 0 {
		t.Errorf("History = %v, %v", intakes, err)
	}

	meds, err := s.Medications(ctx)
	if err != nil {
		t.Fatalf("Medications returned error: %v", err)
	}
	if len(meds) != 1 || meds[0].Name != "Metformin" || meds[0].Days != nil {
		t.Errorf("reconstructed meds = %+v", meds)
	}

	for _, r := range fb.requests {
		if r.Path == "/api/intakes" || r.Path == "/api/medications" {
			t.Errorf("shared session hit owner endpoint %s", r.Path)
		}
	}
}

func TestHistory_Normal(t *testing.T) {
	s, _ := newTestSession(t, models.NormalMode())

	intakes, err := s.History(context.Background())
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(intakes) != 1 || intakes[0].Key() != "42-2024-03-01-08:00" {
		t.Errorf("intakes = %+v", intakes)
	}
}

func TestBump_Monotonic(t *testing.T) {
	s, _ := newTestSession(t, models.NormalMode())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Bump()
		}()
	}
	wg.Wait()

	if s.Refresh() != 50 {
		t.Errorf("refresh = %d, want 50", s.Refresh())
	}
}
