// Package clitest wires a cli.Context to a fake backend and a throwaway
// settings database for command tests.
package clitest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/pillminder/internal/api"
	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/session"
	"github.com/julianstephens/pillminder/internal/storage"
)

// Today is the local date every test context runs on.
const Today = "2024-03-01"

func Now() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
}

// Request is one call seen by the fake backend.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// Backend serves canned responses keyed by "METHOD /path". Unknown routes get a 404.
type Backend struct {
	mu        sync.Mutex
	responses map[string]string
	statuses  map[string]int
	requests  []Request
}

func NewBackend() *Backend {
	return &Backend{
		responses: map[string]string{
			"GET /api/medications": `[{"id":42,"name":"Metformin","dosage":"1 pill","times":["08:00","20:00"],"days":[0,1,2,3,4,5,6],"active":true}]`,
			"GET /api/schedule": `{"date":"2024-03-01","items":[
				{"medication_id":42,"name":"Metformin","dosage":"1 pill","time":"08:00"},
				{"medication_id":42,"name":"Metformin","dosage":"1 pill","time":"20:00"}]}`,
			"GET /api/intakes":              `[{"id":7,"medication_id":42,"time":"08:00","date":"2024-03-01","taken_at":"2024-03-01T08:05:00.000Z"}]`,
			"POST /api/intakes":             `{"id":8,"medication_id":42,"time":"20:00","date":"2024-03-01","taken_at":"2024-03-01T12:00:00.000Z"}`,
			"POST /api/medications":         `{"id":43,"name":"Aspirin","dosage":"81mg","times":["08:00"],"days":[0,1,2,3,4,5,6],"active":true}`,
			"POST /api/share/create":        `{"token":"abc123"}`,
			"GET /api/share/tok/schedule":   `{"date":"2024-03-01","items":[{"medication_id":42,"name":"Metformin","dosage":"1 pill","time":"20:00"}]}`,
			"GET /api/share/tok/intakes":    `[]`,
		},
		statuses: map[string]int{},
	}
}

// Set overrides the response body for a route.
func (b *Backend) Set(route, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[route] = body
}

// Fail makes a route answer with status.
func (b *Backend) Fail(route string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses[route] = status
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Count returns how many requests hit route.
func (b *Backend) Count(route string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method+" "+r.Path == route {
			n++
		}
	}
	return n
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	route := r.Method + " " + r.URL.Path

	b.mu.Lock()
	b.requests = append(b.requests, Request{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)})
	resp, ok := b.responses[route]
	status := b.statuses[route]
	b.mu.Unlock()

	if status != 0 {
		http.Error(w, "failed", status)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	// dates other than today have nothing scheduled
	if strings.HasSuffix(r.URL.Path, "/schedule") {
		if date := r.URL.Query().Get("date"); date != "" && date != Today {
			resp = `{"date":"` + date + `","items":[]}`
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(resp))
}

// Env is a command context plus the fakes behind it.
type Env struct {
	Ctx     *cli.Context
	Backend *Backend
	Store   *storage.SQLiteStore
	Out     *bytes.Buffer
}

// New builds an initialized context in the given mode.
func New(t *testing.T, mode models.Mode) *Env {
	t.Helper()

	backend := NewBackend()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}

	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "pillminder.db"))
	if err := store.Init(t.Context()); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	return &Env{
		Ctx: &cli.Context{
			Session:   session.New(client, mode).WithClock(Now),
			Store:     store,
			WebOrigin: "https://app.example.com",
			Out:       out,
			Now:       Now,
		},
		Backend: backend,
		Store:   store,
		Out:     out,
	}
}
