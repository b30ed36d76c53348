package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"musicdott/internal/config"
	"musicdott/internal/embed"
	"musicdott/internal/logger"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(context.Background(), NewJobManager(), config.DefaultConfig(), logger.New(false))
}

func TestHandleNormalize(t *testing.T) {
	s := testServer(t)

	body := `{"raw":"https://youtu.be/dQw4w9WgXcQ"}`
	req := httptest.NewRequest(http.MethodPost, "/api/normalize", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleNormalize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var mod embed.Module
	if err := json.Unmarshal(rec.Body.Bytes(), &mod); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if mod.Provider != embed.ProviderYouTube || mod.Status != embed.StatusEmbedded {
		t.Errorf("unexpected module: %+v", mod)
	}
	if mod.Embed.EmbedURL == nil || *mod.Embed.EmbedURL != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Errorf("unexpected embed_url: %v", mod.Embed.EmbedURL)
	}
}

func TestHandleNormalizeScoped(t *testing.T) {
	s := testServer(t)

	// A YouTube URL run through the GrooveScribe-only rule degrades to a
	// fallback instead of matching.
	body := `{"raw":"https://youtu.be/dQw4w9WgXcQ","provider":"groovescribe"}`
	req := httptest.NewRequest(http.MethodPost, "/api/normalize", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleNormalize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var mod embed.Module
	if err := json.Unmarshal(rec.Body.Bytes(), &mod); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if mod.Status != embed.StatusFallback || mod.Provider != embed.ProviderUnknown {
		t.Errorf("expected unknown fallback, got %+v", mod)
	}
	if mod.Fallback == nil || mod.Fallback.URL != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("fallback should carry the raw input: %+v", mod.Fallback)
	}
}

func TestHandleNormalizeRejects(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"bad json", http.MethodPost, "{", http.StatusBadRequest},
		{"unknown provider", http.MethodPost, `{"raw":"x","provider":"soundcloud"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/normalize", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.handleNormalize(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestHandleScan(t *testing.T) {
	s := testServer(t)

	body := `{"content":"Watch https://youtu.be/dQw4w9WgXcQ and play TimeSig along"}`
	req := httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleScan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ScanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(resp.Fragments) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(resp.Fragments))
	}
	if resp.Fragments[0].Module.Provider != embed.ProviderYouTube {
		t.Errorf("unexpected provider: %q", resp.Fragments[0].Module.Provider)
	}
}

func TestHandleScanEmptyContent(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader(`{"content":""}`))
	rec := httptest.NewRecorder()
	s.handleScan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ScanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Fragments == nil || len(resp.Fragments) != 0 {
		t.Errorf("expected empty fragment list, got %v", resp.Fragments)
	}
}

func TestHandleGrooveBlocks(t *testing.T) {
	s := testServer(t)

	body := `{"url":"https://www.mikeslessons.com/groove/?TimeSig=4/4&Div=16&Measures=2&H=|x-x-x-x-x-x-x-x-|x-x-x-x-x-x-x-x-|"}`
	req := httptest.NewRequest(http.MethodPost, "/api/groove/blocks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleGrooveBlocks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp GrooveBlocksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Pattern.Grid.StepsPerMeasure != 16 {
		t.Errorf("unexpected grid: %+v", resp.Pattern.Grid)
	}
	if len(resp.Blocks) != 2 {
		t.Errorf("expected 2 blocks, got %d", len(resp.Blocks))
	}
}

func TestHandleGrooveBlocksRejects(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty url", `{"url":""}`},
		{"not a groove url", `{"url":"https://example.com/page"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/groove/blocks", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.handleGrooveBlocks(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleImportValidatesConfig(t *testing.T) {
	s := testServer(t)

	// Default config has no input files; the job must be rejected before
	// it is created.
	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.handleImport(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if jobs := s.jobMgr.ListJobs(); len(jobs) != 0 {
		t.Errorf("no job should have been created, got %d", len(jobs))
	}
}
