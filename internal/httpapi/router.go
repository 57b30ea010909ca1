// Package httpapi serves the maze solver over HTTP.
//
// Every POST endpoint takes the raw maze image as the request body:
//
//	POST /v1/solve            JSON solution summary
//	POST /v1/solve?cell_size=4
//	                          the same, for a maze drawn in 4x4 blocks
//	POST /v1/render?scale=4   PNG with the path drawn on it
//	POST /v1/animate?mode=search&max_frames=60
//	                          animated GIF replay
//	GET  /healthz
//
// Undecodable bodies, bad query values and outputs over the imaging limits
// (scale, max_frames, total pixels) are 400, images without a valid
// entry and exit are 422. An unreachable exit is a normal 200 response with
// found=false.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ironsheep/maze-tools-mcp/internal/config"
	"github.com/ironsheep/maze-tools-mcp/internal/imaging"
	"github.com/ironsheep/maze-tools-mcp/internal/maze"
)

// MaxImageBytes caps the request body.
const MaxImageBytes = 32 << 20

// API holds the state shared by the HTTP handlers.
type API struct {
	palette config.Palette
	logger  *slog.Logger
}

// NewRouter returns a chi router serving the maze endpoints.
func NewRouter(palette config.Palette, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	a := &API{palette: palette, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(a.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", a.handleSolve)
		r.Post("/render", a.handleRender)
		r.Post("/animate", a.handleAnimate)
	})
	return r
}

// NewServer wraps NewRouter in an http.Server with conservative timeouts.
func NewServer(addr string, palette config.Palette, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(palette, logger),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (a *API) handleSolve(w http.ResponseWriter, r *http.Request) {
	_, sol, ok := a.solve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sol.Summary())
}

func (a *API) handleRender(w http.ResponseWriter, r *http.Request) {
	scale, err := queryIntMax(r, "scale", 1, imaging.MaxScale)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	img, sol, ok := a.solve(w, r)
	if !ok {
		return
	}
	out, err := imaging.RenderSolution(img, sol.Result, imaging.RenderOptions{
		Palette:      a.palette,
		Scale:        scale,
		ShowExplored: r.URL.Query().Get("explored") == "true",
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	setSolutionHeaders(w, sol)
	w.Header().Set("Content-Type", "image/png")
	if err := imgio.PNGEncoder()(w, out); err != nil {
		a.logger.Error("failed to write png", "error", err)
	}
}

func (a *API) handleAnimate(w http.ResponseWriter, r *http.Request) {
	scale, err := queryIntMax(r, "scale", 1, imaging.MaxScale)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	maxFrames, err := queryIntMax(r, "max_frames", 0, imaging.MaxFrames)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	img, sol, ok := a.solve(w, r)
	if !ok {
		return
	}
	anim, err := imaging.Animate(img, sol.Result, imaging.AnimateOptions{
		Palette:   a.palette,
		Mode:      r.URL.Query().Get("mode"),
		Scale:     scale,
		MaxFrames: maxFrames,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	setSolutionHeaders(w, sol)
	w.Header().Set("Content-Type", "image/gif")
	if err := imaging.WriteGIF(w, anim); err != nil {
		a.logger.Error("failed to write gif", "error", err)
	}
}

// solve decodes the request body and solves it, writing an error response
// and returning ok=false on failure.
func (a *API) solve(w http.ResponseWriter, r *http.Request) (image.Image, *imaging.Solution, bool) {
	cell, err := queryInt(r, "cell_size", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, nil, false
	}
	img, err := imaging.Decode(http.MaxBytesReader(w, r.Body, MaxImageBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, nil, false
	}
	if cell > 1 {
		if img, err = imaging.Downsample(img, cell); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return nil, nil, false
		}
	}
	sol, err := imaging.SolveImage(img, a.palette)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, maze.ErrInvalidGrid) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return nil, nil, false
	}
	a.logger.Debug("maze solved",
		"found", sol.Found,
		"steps", sol.Result.Steps(),
		"expanded", sol.Result.Expanded)
	return img, sol, true
}

func setSolutionHeaders(w http.ResponseWriter, sol *imaging.Solution) {
	w.Header().Set("X-Maze-Found", strconv.FormatBool(sol.Found))
	w.Header().Set("X-Maze-Steps", strconv.Itoa(sol.Result.Steps()))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}

// queryIntMax is queryInt with an upper bound.
func queryIntMax(r *http.Request, key string, def, limit int) (int, error) {
	v, err := queryInt(r, key, def)
	if err != nil {
		return 0, err
	}
	if v > limit {
		return 0, fmt.Errorf("%s %d exceeds %d", key, v, limit)
	}
	return v, nil
}
