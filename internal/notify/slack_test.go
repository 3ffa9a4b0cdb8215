package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/sitesweep/internal/domain"
)

func TestSlack_OK(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		got = payload["text"]
		w.WriteHeader(200)
	}))
	defer ts.Close()

	s := NewSlack(ts.URL)
	if s == nil {
		t.Fatal("expected slack client")
	}
	err := s.Send(context.Background(), "Title", "Hello")
	if err != nil {
		t.Fatalf("send err: %v", err)
	}
	if got == "" || got[0] != '*' { // starts with "*Title*"
		t.Fatalf("payload not as expected: %q", got)
	}
}

func TestSlack_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer ts.Close()

	s := NewSlack(ts.URL)
	err := s.Send(context.Background(), "X", "Y")
	if err == nil {
		t.Fatalf("expected error on non-2xx")
	}
}

func TestSlack_EmptyWebhookDisabled(t *testing.T) {
	if s := NewSlack(""); s != nil {
		t.Fatal("empty webhook should return nil notifier")
	}
}

type recordingNotifier struct {
	titles []string
	err    error
}

func (r *recordingNotifier) Send(ctx context.Context, title, text string) error {
	r.titles = append(r.titles, title)
	return r.err
}

func TestMulti_FanOut(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{}
	m := Multi{a, nil, b}

	if err := m.Send(context.Background(), "hi", "body"); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if len(a.titles) != 1 || len(b.titles) != 1 {
		t.Fatalf("expected both notifiers called once, got %d and %d", len(a.titles), len(b.titles))
	}
}

func TestMulti_FirstErrorWinsButAllAreTried(t *testing.T) {
	a := &recordingNotifier{err: errors.New("boom-a")}
	b := &recordingNotifier{err: errors.New("boom-b")}
	m := Multi{a, b}

	err := m.Send(context.Background(), "hi", "body")
	if err == nil || err.Error() != "boom-a" {
		t.Fatalf("expected first error back, got %v", err)
	}
	if len(b.titles) != 1 {
		t.Fatal("later notifier should still be attempted")
	}
}

func TestMulti_NotifyRun(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		got = payload["text"]
		w.WriteHeader(200)
	}))
	defer ts.Close()

	run := &domain.Run{
		ID:         "run-7",
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
		Outcomes:   []domain.Outcome{{URL: "https://a.example.com", Up: true, HTTPStatus: 200}},
	}
	m := Multi{NewSlack(ts.URL)}
	if err := m.NotifyRun(context.Background(), run); err != nil {
		t.Fatalf("NotifyRun: %v", err)
	}
	if !strings.Contains(got, "1/1 reachable") {
		t.Fatalf("summary missing from payload: %q", got)
	}
}

func TestMulti_EmptyIsNoop(t *testing.T) {
	var m Multi
	if err := m.NotifyRun(context.Background(), &domain.Run{}); err != nil {
		t.Fatalf("empty multi should be a no-op, got %v", err)
	}
}

func TestSweepSummary(t *testing.T) {
	at := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	run := &domain.Run{
		ID:         "run-9",
		StartedAt:  at,
		FinishedAt: at.Add(3 * time.Second),
		Outcomes: []domain.Outcome{
			{URL: "https://ok.example.com", Up: true, HTTPStatus: 200},
			{URL: "https://down.example.com", Up: false, Reason: "connection refused"},
		},
	}
	title, text := SweepSummary(run)
	if title != "sitesweep: 1/2 reachable" {
		t.Fatalf("title wrong: %q", title)
	}
	if !strings.Contains(text, "https://down.example.com — connection refused") {
		t.Fatalf("down URL missing from body: %q", text)
	}
	if strings.Contains(text, "https://ok.example.com") {
		t.Fatalf("reachable URL should not be listed: %q", text)
	}
}
