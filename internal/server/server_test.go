package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/clipcmp/clipcmp/internal/compare"
	"github.com/clipcmp/clipcmp/internal/embeddings"
	"github.com/clipcmp/clipcmp/internal/imaging"
	"github.com/clipcmp/clipcmp/internal/store/sqlite"
	"github.com/clipcmp/clipcmp/pkg/types"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	st, err := sqlite.New(sqlite.Config{Path: filepath.Join(t.TempDir(), "clipcmp.db")})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	svc := compare.NewService(embeddings.NewMockEmbedder(32), st, compare.DefaultConfig())
	t.Cleanup(func() { svc.Close() })

	return New(svc, Config{Host: "127.0.0.1", Port: 0}).Handler()
}

func testDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	uri, err := imaging.EncodeDataURI(img)
	if err != nil {
		t.Fatal(err)
	}
	return uri
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCompareEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := postJSON(t, handler, "/compare", types.CompareRequest{
		ImageURI: testDataURI(t),
		Texts:    []string{"A green dog looking at the camera", "The stock market fell today"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result types.CompareResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(result.Scores) != 2 {
		t.Errorf("expected 2 scores, got %d", len(result.Scores))
	}
	if result.Dimensions != 32 {
		t.Errorf("expected 32 dims, got %d", result.Dimensions)
	}
}

func TestCompareEndpoint_RequiresImageURI(t *testing.T) {
	handler := newTestHandler(t)

	rec := postJSON(t, handler, "/compare", types.CompareRequest{
		ImagePath: "/etc/passwd", // server must not read local paths
		Texts:     []string{"text"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCompareEndpoint_RequiresTexts(t *testing.T) {
	handler := newTestHandler(t)

	rec := postJSON(t, handler, "/compare", types.CompareRequest{ImageURI: testDataURI(t)})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCompareEndpoint_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/compare", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestEmbedEndpoint_TextOnly(t *testing.T) {
	handler := newTestHandler(t)

	rec := postJSON(t, handler, "/embed", types.EmbedRequest{Text: "hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp types.EmbedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Dimensions != 32 || len(resp.Embedding) != 32 {
		t.Errorf("unexpected embedding response: %+v", resp)
	}
}

func TestEmbedEndpoint_WithImage(t *testing.T) {
	handler := newTestHandler(t)

	rec := postJSON(t, handler, "/embed", types.EmbedRequest{
		Text:     "Describe the image in detail",
		ImageURI: testDataURI(t),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEmbedEndpoint_EmptyRequest(t *testing.T) {
	handler := newTestHandler(t)

	rec := postJSON(t, handler, "/embed", types.EmbedRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats types.StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Model != "mock" {
		t.Errorf("expected model mock, got %q", stats.Model)
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/compare", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", rec.Code)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected CORS header, got %q", origin)
	}
}
