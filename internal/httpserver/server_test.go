package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/konditional-dev/konditional/flag"
	"github.com/konditional-dev/konditional/registry"
	"github.com/konditional-dev/konditional/value"
)

func newTestServer(t *testing.T) (*Server, *registry.Container) {
	t.Helper()
	container := registry.NewContainer()
	id, err := value.NewFlagID("app", "dark_mode")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	container.UpdateDefinition(flag.NewDefinition(id, value.KindBoolean, value.Bool(true), nil, true, "salt"))

	srv := NewServer(map[string]*registry.Container{"app": container}, prometheus.NewRegistry())
	return srv, container
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "ok" {
		t.Errorf("expected body 'ok', got %q", rr.Body.String())
	}
}

func TestHandleSnapshot_UnknownContainer(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/containers/ghost/snapshot", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestHandleSnapshot_ReturnsEncodedFlags(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/containers/app/snapshot", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var decoded struct {
		Flags []struct {
			Key string `json:"key"`
		} `json:"flags"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded.Flags) != 1 || decoded.Flags[0].Key != "feature::app::dark_mode" {
		t.Errorf("unexpected flags in snapshot response: %+v", decoded.Flags)
	}
}

func TestHandleEvaluate_ReturnsDecision(t *testing.T) {
	srv, _ := newTestServer(t)
	body, _ := json.Marshal(evaluateRequest{FlagName: "dark_mode", Platform: "ios", StableID: "user-1"})
	req := httptest.NewRequest(http.MethodPost, "/v1/containers/app/evaluate", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp evaluateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Decision != flag.DecisionDefaultReturned {
		t.Errorf("expected DEFAULT_RETURNED, got %v", resp.Decision)
	}
	if !resp.Value.Equal(value.Bool(true)) {
		t.Errorf("expected value true, got %+v", resp.Value)
	}
}

func TestHandleEvaluate_MissingFlagName(t *testing.T) {
	srv, _ := newTestServer(t)
	body, _ := json.Marshal(evaluateRequest{})
	req := httptest.NewRequest(http.MethodPost, "/v1/containers/app/evaluate", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}
