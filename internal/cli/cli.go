package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/maze-tools-mcp/internal/imaging"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
	ExitNoPath  = 3
)

// Modes selected by the first argument.
const (
	ModeMCP   = "mcp"
	ModeHTTP  = "http"
	ModeSolve = "solve"
)

// ExitError is an error that carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Config is the parsed command line.
type Config struct {
	Mode        string
	ImagePath   string
	PalettePath string

	// CellSize is the maze block size in pixels. 0 detects it.
	CellSize int

	// Solve outputs.
	Out         string
	AnimatePath string
	Scale       int
	AnimateMode string
	MaxFrames   int
	Explored    bool

	Addr string

	LogLevel  string
	LogFormat string
}

// Parse processes command-line arguments (without the program name). It
// returns the parsed Config, a boolean indicating the program should exit
// cleanly (help was printed), or an *ExitError. defaultLevel seeds
// --log-level, normally from MAZE_MCP_LOG_LEVEL.
func Parse(args []string, output io.Writer, defaultLevel string) (*Config, bool, error) {
	mode := ModeMCP
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		mode = args[0]
		args = args[1:]
	}
	switch mode {
	case ModeMCP, ModeHTTP, ModeSolve:
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unknown command %q", mode)}
	}
	if defaultLevel == "" {
		defaultLevel = "info"
	}

	flagSet := flag.NewFlagSet("maze-mcp "+mode, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	cfg := &Config{Mode: mode}
	flagSet.StringVar(&cfg.PalettePath, "palette", "", "YAML palette file with marker and overlay colors.")
	flagSet.StringVar(&cfg.LogLevel, "log-level", defaultLevel, "Logging level: 'debug', 'info', 'warn' or 'error'.")
	flagSet.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format: 'text' or 'json'.")
	switch mode {
	case ModeHTTP:
		flagSet.StringVar(&cfg.Addr, "addr", ":8080", "Listen address for the HTTP server.")
	case ModeSolve:
		flagSet.IntVar(&cfg.CellSize, "cell-size", 1, "Pixels per maze cell in IMAGE. 0 detects it.")
		flagSet.StringVar(&cfg.Out, "out", "", "Write the solved maze to this .png or .jpg file.")
		flagSet.StringVar(&cfg.AnimatePath, "animate", "", "Write an animated replay to this .gif file.")
		flagSet.IntVar(&cfg.Scale, "scale", 1, "Output pixels per maze cell.")
		flagSet.StringVar(&cfg.AnimateMode, "mode", "path", "Replay mode for --animate: 'path' or 'search'.")
		flagSet.IntVar(&cfg.MaxFrames, "max-frames", 100, "Maximum frames in the replay.")
		flagSet.BoolVar(&cfg.Explored, "explored", false, "Paint explored cells in --out.")
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	if mode == ModeSolve {
		if flagSet.NArg() != 1 {
			flagSet.Usage()
			return nil, false, &ExitError{Code: ExitUsage, Message: "solve takes exactly one IMAGE argument"}
		}
		cfg.ImagePath = flagSet.Arg(0)
		if cfg.Scale < 1 || cfg.Scale > imaging.MaxScale {
			return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("invalid scale: must be 1..%d", imaging.MaxScale)}
		}
		if cfg.MaxFrames > imaging.MaxFrames {
			return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("invalid max-frames: must be <= %d", imaging.MaxFrames)}
		}
		if cfg.CellSize < 0 {
			return nil, false, &ExitError{Code: ExitUsage, Message: "invalid cell-size: must be >= 0"}
		}
	} else if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return cfg, false, nil
}

const usage = `
maze-mcp - shortest-path solver for raster maze images

Usage:
  maze-mcp [mcp] [options]          serve MCP over stdin/stdout (default)
  maze-mcp http [options]           serve the HTTP API
  maze-mcp solve [options] IMAGE    solve one image and print the result

Options:
`
