package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeMaze draws one pixel per character ('#' wall, '.' open, 'S' entry,
// 'E' exit) into a PNG under dir.
func writeMaze(t *testing.T, dir string, rows ...string) string {
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
	path := filepath.Join(dir, "maze.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create maze file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode maze: %v", err)
	}
	return path
}

func solveConfig(image string) *Config {
	return &Config{
		Mode:        ModeSolve,
		ImagePath:   image,
		CellSize:    1,
		Scale:       1,
		AnimateMode: "path",
		MaxFrames:   100,
		LogLevel:    "error",
		LogFormat:   "text",
	}
}

func TestRun_Solve(t *testing.T) {
	dir := t.TempDir()
	cfg := solveConfig(writeMaze(t, dir,
		"S..",
		".#.",
		"..E",
	))
	cfg.Out = filepath.Join(dir, "solved.png")
	cfg.AnimatePath = filepath.Join(dir, "replay.gif")
	cfg.Scale = 2

	var stdout bytes.Buffer
	if err := Run(context.Background(), cfg, nil, &stdout, io.Discard); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{
		"Reading image...\n",
		"Found entry at 0, 0\n",
		"Found exit at 2, 2\n",
		"Path length 4 found in ",
		" microseconds\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	f, err := os.Open(cfg.Out)
	if err != nil {
		t.Fatalf("render not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("render is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 6 {
		t.Errorf("render width = %d, want 6", img.Bounds().Dx())
	}

	g, err := os.Open(cfg.AnimatePath)
	if err != nil {
		t.Fatalf("replay not written: %v", err)
	}
	defer g.Close()
	anim, err := gif.DecodeAll(g)
	if err != nil {
		t.Fatalf("replay is not a GIF: %v", err)
	}
	if len(anim.Image) != 5 {
		t.Errorf("replay frames = %d, want 5", len(anim.Image))
	}
}

func TestRun_SolveNoPath(t *testing.T) {
	cfg := solveConfig(writeMaze(t, t.TempDir(), "S#E"))

	var stdout bytes.Buffer
	err := Run(context.Background(), cfg, nil, &stdout, io.Discard)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitNoPath {
		t.Fatalf("expected ExitNoPath, got %v", err)
	}
	if !strings.Contains(stdout.String(), "No path found after expanding 0 cells") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
}

func TestRun_SolveErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		cfg   *Config
		code  int
		setup func(*Config)
	}{
		{
			name: "missing image",
			cfg:  solveConfig(filepath.Join(dir, "nope.png")),
			code: ExitFailure,
		},
		{
			name: "no markers",
			cfg:  solveConfig(writeMaze(t, t.TempDir(), "...")),
			code: ExitFailure,
		},
		{
			name: "missing palette",
			cfg:  solveConfig(writeMaze(t, t.TempDir(), "S.E")),
			code: ExitUsage,
			setup: func(c *Config) {
				c.PalettePath = filepath.Join(dir, "missing.yaml")
			},
		},
		{
			name: "bad animation mode",
			cfg:  solveConfig(writeMaze(t, t.TempDir(), "S.E")),
			code: ExitFailure,
			setup: func(c *Config) {
				c.AnimatePath = filepath.Join(dir, "x.gif")
				c.AnimateMode = "sideways"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(tt.cfg)
			}
			err := Run(context.Background(), tt.cfg, nil, io.Discard, io.Discard)
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("expected *ExitError, got %v", err)
			}
			if exitErr.Code != tt.code {
				t.Errorf("Code = %d, want %d (%s)", exitErr.Code, tt.code, exitErr.Message)
			}
		})
	}
}

func TestRun_SolveWithPalette(t *testing.T) {
	dir := t.TempDir()
	palettePath := filepath.Join(dir, "palette.yaml")
	// Swap the marker colors.
	if err := os.WriteFile(palettePath, []byte("entry: \"#FF0000\"\nexit: \"#00FF00\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := solveConfig(writeMaze(t, dir, "S..E"))
	cfg.PalettePath = palettePath

	var stdout bytes.Buffer
	if err := Run(context.Background(), cfg, nil, &stdout, io.Discard); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Found entry at 3, 0") {
		t.Errorf("palette not applied:\n%s", stdout.String())
	}
}

func TestRun_SolveDetectsCellSize(t *testing.T) {
	cfg := solveConfig(writeMaze(t, t.TempDir(),
		"SSS...",
		"SSS...",
		"SSS...",
		"###EEE",
		"###EEE",
		"###EEE",
	))
	cfg.CellSize = 0

	var stdout bytes.Buffer
	if err := Run(context.Background(), cfg, nil, &stdout, io.Discard); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{
		"Detected 2x2 cells of 3 pixels\n",
		"Found entry at 0, 0\n",
		"Found exit at 1, 1\n",
		"Path length 2 found in ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_MCP(t *testing.T) {
	path := writeMaze(t, t.TempDir(), "S.E")
	stdin := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"maze_solve","arguments":{"path":"` + path + `"}}}` + "\n")

	var stdout, stderr bytes.Buffer
	cfg := &Config{Mode: ModeMCP, LogLevel: "info", LogFormat: "json"}
	if err := Run(context.Background(), cfg, stdin, &stdout, &stderr); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var resp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response %q: %v", stdout.String(), err)
	}
	if len(resp.Result.Content) != 1 || !strings.Contains(resp.Result.Content[0].Text, `"steps": 2`) {
		t.Errorf("unexpected response: %s", stdout.String())
	}
	if !strings.Contains(stderr.String(), `"msg":"maze solved"`) {
		t.Errorf("solve not logged to stderr: %s", stderr.String())
	}
}

func TestRun_HTTPStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &Config{Mode: ModeHTTP, Addr: "127.0.0.1:0", LogLevel: "error", LogFormat: "text"}
	if err := Run(ctx, cfg, nil, io.Discard, io.Discard); err != nil {
		t.Errorf("Run returned %v after cancel", err)
	}
}
