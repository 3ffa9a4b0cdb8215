package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/sitesweep/internal/domain"
	"github.com/hamed0406/sitesweep/internal/repo/memory"
)

func fakeSweep(ctx context.Context, targets []string) (*domain.Run, error) {
	outcomes := make([]domain.Outcome, 0, len(targets))
	for _, u := range targets {
		outcomes = append(outcomes, domain.Outcome{
			URL: u, Up: true, HTTPStatus: 200, LatencyMS: 5, CheckedAt: time.Now().UTC(),
		})
	}
	return &domain.Run{
		ID:         "run-1",
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
		Workers:    2,
		Timeout:    "1s",
		Outcomes:   outcomes,
	}, nil
}

func newTestServer() *Server {
	return NewServer(zap.NewNop(), memory.New(), fakeSweep, nil, 0, 0)
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestTriggerSweep_StoresAndReturnsRun(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	body, _ := json.Marshal(map[string][]string{"urls": {"https://a.example.com", "https://b.example.com"}})
	resp, err := http.Post(srv.URL+"/api/sweeps", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}

	var run domain.Run
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	if len(run.Outcomes) != 2 {
		t.Fatalf("want 2 outcomes, got %d", len(run.Outcomes))
	}

	stored, err := s.Store.GetRun(context.Background(), run.ID)
	if err != nil || stored == nil {
		t.Fatalf("run not stored: %v %v", stored, err)
	}
}

func TestTriggerSweep_BadPayload(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/sweeps", "application/json", bytes.NewReader([]byte(`{"urls":[]}`)))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
}

func TestTriggerSweep_RequiresKeyWhenConfigured(t *testing.T) {
	s := newTestServer()
	s.AdminKeys = []string{"adm_x"}
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	body := []byte(`{"urls":["https://a.example.com"]}`)
	resp, err := http.Post(srv.URL+"/api/sweeps", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 without key, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/sweeps", bytes.NewReader(body))
	req.Header.Set("X-API-Key", "adm_x")
	req.Header.Set("Content-Type", "application/json")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusCreated {
		t.Fatalf("want 201 with key, got %d", resp2.StatusCode)
	}
}

func TestListAndGetSweeps(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	// trigger one sweep so there is something to list
	body := []byte(`{"urls":["https://a.example.com"]}`)
	resp, err := http.Post(srv.URL+"/api/sweeps", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	listResp, err := http.Get(srv.URL + "/api/sweeps")
	if err != nil {
		t.Fatal(err)
	}
	defer listResp.Body.Close()
	var list []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("want 1 run listed, got %d", len(list))
	}

	id := list[0]["id"].(string)
	getResp, err := http.Get(srv.URL + "/api/sweeps/" + id)
	if err != nil {
		t.Fatal(err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", getResp.StatusCode)
	}

	missing, err := http.Get(srv.URL + "/api/sweeps/does-not-exist")
	if err != nil {
		t.Fatal(err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 for unknown run, got %d", missing.StatusCode)
	}
}
