package httpapi

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ironsheep/maze-tools-mcp/internal/config"
	"github.com/ironsheep/maze-tools-mcp/internal/imaging"
)

// mazePNG draws one pixel per character ('#' wall, '.' open, 'S' entry,
// 'E' exit) and returns the PNG bytes.
func mazePNG(t *testing.T, rows ...string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, ch := range row {
			c := color.RGBA{255, 255, 255, 255}
			switch ch {
			case '#':
				c = color.RGBA{0, 0, 0, 255}
			case 'S':
				c = color.RGBA{0, 255, 0, 255}
			case 'E':
				c = color.RGBA{255, 0, 0, 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

func newTestRouter() http.Handler {
	return NewRouter(config.DefaultPalette(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestRouter(), "GET", "/healthz", nil)
	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
}

func TestSolve(t *testing.T) {
	w := do(t, newTestRouter(), "POST", "/v1/solve", mazePNG(t,
		"S..",
		".#.",
		"..E",
	))
	if w.Code != 200 {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got imaging.SolveSummary
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !got.Found || got.Steps != 4 || len(got.Path) != 4 {
		t.Errorf("unexpected summary: %+v", got)
	}
}

func TestSolve_CellSize(t *testing.T) {
	body := mazePNG(t,
		"SS..",
		"SS..",
		"##EE",
		"##EE",
	)
	w := do(t, newTestRouter(), "POST", "/v1/solve?cell_size=2", body)
	if w.Code != 200 {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var got imaging.SolveSummary
	json.NewDecoder(w.Body).Decode(&got)
	if got.Width != 2 || got.Height != 2 || got.Steps != 2 {
		t.Errorf("unexpected summary: %+v", got)
	}

	w = do(t, newTestRouter(), "POST", "/v1/solve?cell_size=9", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("oversized cell status = %d, want 400", w.Code)
	}
}

func TestSolve_NoPath(t *testing.T) {
	w := do(t, newTestRouter(), "POST", "/v1/solve", mazePNG(t, "S#E"))
	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got map[string]interface{}
	json.NewDecoder(w.Body).Decode(&got)
	if got["found"] != false {
		t.Errorf("found = %v, want false", got["found"])
	}
}

func TestSolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want int
	}{
		{"not an image", []byte("hello"), http.StatusBadRequest},
		{"empty body", nil, http.StatusBadRequest},
		{"no entry", mazePNG(t, "..E"), http.StatusUnprocessableEntity},
		{"no exit", mazePNG(t, "S.."), http.StatusUnprocessableEntity},
	}

	h := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", "/v1/solve", tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil || body["error"] == "" {
				t.Errorf("expected JSON error body, got %v (%v)", body, err)
			}
		})
	}
}

func TestRender(t *testing.T) {
	w := do(t, newTestRouter(), "POST", "/v1/render?scale=5&explored=true", mazePNG(t, "S.E", "..."))
	if w.Code != 200 {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
	if w.Header().Get("X-Maze-Found") != "true" || w.Header().Get("X-Maze-Steps") != "2" {
		t.Errorf("solution headers: found=%q steps=%q",
			w.Header().Get("X-Maze-Found"), w.Header().Get("X-Maze-Steps"))
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 15 || b.Dy() != 10 {
		t.Errorf("size = %v, want 15x10", b.Size())
	}
}

func TestRender_BadScale(t *testing.T) {
	w := do(t, newTestRouter(), "POST", "/v1/render?scale=big", mazePNG(t, "SE"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestOutputLimits(t *testing.T) {
	h := newTestRouter()
	body := mazePNG(t, "SE")

	tests := []struct {
		target string
		want   int
	}{
		{"/v1/render?scale=3000", http.StatusBadRequest},
		{"/v1/render?scale=33", http.StatusBadRequest},
		{"/v1/render?scale=32", http.StatusOK},
		{"/v1/animate?scale=3000", http.StatusBadRequest},
		{"/v1/animate?max_frames=100000", http.StatusBadRequest},
		{"/v1/animate?max_frames=500", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := do(t, h, "POST", tt.target, body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAnimate(t *testing.T) {
	h := newTestRouter()
	body := mazePNG(t,
		"S.....",
		"......",
		".....E",
	)

	w := do(t, h, "POST", "/v1/animate?mode=search&max_frames=4", body)
	if w.Code != 200 {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Content-Type") != "image/gif" {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
	anim, err := gif.DecodeAll(w.Body)
	if err != nil {
		t.Fatalf("invalid GIF: %v", err)
	}
	if len(anim.Image) < 2 || len(anim.Image) > 4 {
		t.Errorf("frames = %d, want 2..4", len(anim.Image))
	}

	w = do(t, h, "POST", "/v1/animate?mode=sideways", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown mode status = %d, want 400", w.Code)
	}
}

func TestRoutes(t *testing.T) {
	want := map[string]bool{
		"GET /healthz":     true,
		"POST /v1/solve":   true,
		"POST /v1/render":  true,
		"POST /v1/animate": true,
	}
	r := newTestRouter().(chi.Routes)
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		key := method + " " + route
		if !want[key] {
			t.Errorf("unexpected route %s", key)
		}
		delete(want, key)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	for key := range want {
		t.Errorf("missing route %s", key)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	w := do(t, newTestRouter(), "GET", "/v1/solve", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(":0", config.DefaultPalette(), nil)
	if srv.Addr != ":0" || srv.Handler == nil || srv.ReadHeaderTimeout == 0 {
		t.Errorf("unexpected server: %+v", srv)
	}
}
