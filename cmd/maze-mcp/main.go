package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/maze-tools-mcp/internal/cli"
	"github.com/ironsheep/maze-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("maze-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("maze-mcp - shortest-path solver for raster maze images")
			fmt.Println()
			fmt.Println("Usage:")
			fmt.Println("  maze-mcp [options]                 MCP server over stdin/stdout")
			fmt.Println("  maze-mcp http [--addr :8080]       HTTP API")
			fmt.Println("  maze-mcp solve [options] IMAGE     solve one maze image")
			fmt.Println()
			fmt.Println("Run 'maze-mcp solve -h' for solve options.")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  MAZE_MCP_LOG_LEVEL=debug    Default log level")
			fmt.Println()
			fmt.Println("Logs are written to stderr; stdout carries MCP protocol or solve output.")
			return
		}
	}

	if Version != "dev" {
		server.Version = Version
	}

	cfg, shouldExit, err := cli.Parse(os.Args[1:], os.Stderr, os.Getenv("MAZE_MCP_LOG_LEVEL"))
	if err == nil && !shouldExit {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = cli.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
		stop()
	}
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
