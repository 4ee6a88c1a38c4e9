package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lewisviz/lewis/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(pipeline.NewRunner(nil, nil, nil), nil)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestParseEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body := `{"notation": "O[left:-:H1,right:-:H2];H1[right:-:O];H2[left:-:O]"}`
	resp, err := http.Post(ts.URL+"/v1/parse", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/parse error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var doc struct {
		Atoms []json.RawMessage `json:"atoms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(doc.Atoms) != 3 {
		t.Errorf("atoms = %d, want 3", len(doc.Atoms))
	}
}

func TestParseEndpointRejectsBadNotation(t *testing.T) {
	ts := newTestServer(t)

	body := `{"notation": "O[sideways::]"}`
	resp, err := http.Post(ts.URL+"/v1/parse", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/parse error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var errResp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != "UNKNOWN_DIRECTION" {
		t.Errorf("code = %q, want UNKNOWN_DIRECTION", errResp.Code)
	}
}

func TestRenderEndpointSingleFormat(t *testing.T) {
	ts := newTestServer(t)

	body := `{"notation": "C[left:=:O1,right:=:O2];O1[right:=:C];O2[left:=:C]", "formats": ["svg"]}`
	resp, err := http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/render error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "<svg") {
		t.Error("response is not SVG")
	}
}

func TestRenderEndpointMultiFormat(t *testing.T) {
	ts := newTestServer(t)

	body := `{"notation": "N{+}[left:-:H1,right:-:H2];H1[right:-:N];H2[left:-:N]", "formats": ["svg", "dot"]}`
	resp, err := http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/render error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var envelope struct {
		MoleculeHash string            `json:"molecule_hash"`
		AtomCount    int               `json:"atom_count"`
		Artifacts    map[string]string `json:"artifacts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.MoleculeHash == "" {
		t.Error("missing molecule hash")
	}
	if envelope.AtomCount != 3 {
		t.Errorf("atom count = %d, want 3", envelope.AtomCount)
	}
	if len(envelope.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(envelope.Artifacts))
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request error = %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("X-Request-ID = %q, want fixed-id", got)
	}
}
