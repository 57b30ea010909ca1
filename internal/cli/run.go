package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ironsheep/maze-tools-mcp/internal/config"
	"github.com/ironsheep/maze-tools-mcp/internal/detection"
	"github.com/ironsheep/maze-tools-mcp/internal/httpapi"
	"github.com/ironsheep/maze-tools-mcp/internal/imaging"
	"github.com/ironsheep/maze-tools-mcp/internal/server"
)

// Run executes cfg. Logs go to stderr; stdout carries MCP responses or the
// solve report. The HTTP server stops when ctx is cancelled.
func Run(ctx context.Context, cfg *Config, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)

	palette := config.DefaultPalette()
	if cfg.PalettePath != "" {
		p, err := config.LoadPaletteFile(cfg.PalettePath)
		if err != nil {
			return &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		palette = *p
		logger.Debug("palette loaded", "file", cfg.PalettePath, "entry", palette.Entry, "exit", palette.Exit)
	}

	switch cfg.Mode {
	case ModeHTTP:
		return serveHTTP(ctx, cfg.Addr, palette, logger)
	case ModeSolve:
		return Solve(cfg, palette, stdout, logger)
	default:
		logger.Debug("mcp server starting", "version", server.Version)
		srv := server.New(server.WithPalette(palette), server.WithLogger(logger))
		if err := srv.Serve(stdin, stdout); err != nil {
			return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("server error: %v", err)}
		}
		return nil
	}
}

func serveHTTP(ctx context.Context, addr string, palette config.Palette, logger *slog.Logger) error {
	srv := httpapi.NewServer(addr, palette, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("http server: %v", err)}
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

// Solve loads cfg.ImagePath, prints the entry, exit and path length to out,
// and writes the optional render and replay files. An unreachable exit is
// reported with ExitNoPath after any output files are written.
func Solve(cfg *Config, palette config.Palette, out io.Writer, logger *slog.Logger) error {
	fmt.Fprintln(out, "Reading image...")
	img, err := imaging.NewImageCache().Load(cfg.ImagePath)
	if err != nil {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("could not open or find the image: %v", err)}
	}

	cell := cfg.CellSize
	if cell == 0 {
		detected := detection.DetectCellSize(img)
		cell = detected.CellSize
		fmt.Fprintf(out, "Detected %dx%d cells of %d pixels\n", detected.Columns, detected.Rows, cell)
	}
	if cell > 1 {
		if img, err = imaging.Downsample(img, cell); err != nil {
			return &ExitError{Code: ExitFailure, Message: err.Error()}
		}
	}

	sol, err := imaging.SolveImage(img, palette)
	if err != nil {
		return &ExitError{Code: ExitFailure, Message: err.Error()}
	}
	entry, exit := sol.Grid.Entry(), sol.Grid.Exit()
	fmt.Fprintf(out, "Found entry at %d, %d\n", entry.X, entry.Y)
	fmt.Fprintf(out, "Found exit at %d, %d\n", exit.X, exit.Y)

	logger.Info("maze solved",
		"path", cfg.ImagePath,
		"found", sol.Found,
		"steps", sol.Result.Steps(),
		"expanded", sol.Result.Expanded,
		"elapsed", sol.Result.Elapsed)

	if sol.Found {
		fmt.Fprintf(out, "Path length %d found in %d microseconds\n",
			sol.Result.Steps(), sol.Result.Elapsed.Microseconds())
	} else {
		fmt.Fprintf(out, "No path found after expanding %d cells in %d microseconds\n",
			sol.Result.Expanded, sol.Result.Elapsed.Microseconds())
	}

	if cfg.Out != "" {
		rendered, err := imaging.RenderSolution(img, sol.Result, imaging.RenderOptions{
			Palette:      palette,
			Scale:        cfg.Scale,
			ShowExplored: cfg.Explored,
		})
		if err != nil {
			return &ExitError{Code: ExitFailure, Message: err.Error()}
		}
		if err := imaging.SaveImage(cfg.Out, rendered); err != nil {
			return &ExitError{Code: ExitFailure, Message: err.Error()}
		}
		fmt.Fprintf(out, "Wrote %s\n", cfg.Out)
	}

	if cfg.AnimatePath != "" {
		anim, err := imaging.Animate(img, sol.Result, imaging.AnimateOptions{
			Palette:   palette,
			Mode:      cfg.AnimateMode,
			Scale:     cfg.Scale,
			MaxFrames: cfg.MaxFrames,
		})
		if err != nil {
			return &ExitError{Code: ExitFailure, Message: err.Error()}
		}
		if err := imaging.SaveGIF(cfg.AnimatePath, anim); err != nil {
			return &ExitError{Code: ExitFailure, Message: err.Error()}
		}
		fmt.Fprintf(out, "Wrote %s (%d frames)\n", cfg.AnimatePath, len(anim.Image))
	}

	if !sol.Found {
		return &ExitError{Code: ExitNoPath, Message: "no path from entry to exit"}
	}
	return nil
}
