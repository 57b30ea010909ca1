// Package cli parses the maze-mcp command line, configures logging, and runs
// the selected mode: the MCP stdio server, the HTTP server, or a one-shot
// solve that prints to the console. Process exit codes travel back to main
// as *ExitError values.
package cli
