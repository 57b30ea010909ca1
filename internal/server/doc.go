// Package server implements the MCP (Model Context Protocol) server for the maze tools.
//
// This package provides a JSON-RPC 2.0 server that exposes maze solving
// through the MCP protocol, so an assistant can load a maze image, find the
// shortest route from the green entry pixel to the red exit pixel, and get
// the route back as coordinates, a PNG overlay or an animated GIF.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Maze Operations:
//   - maze_load: Image metadata plus grid summary (markers, open/wall counts)
//   - maze_solve: Shortest path as coordinates with search statistics
//   - maze_render: Solution overlay as base64 PNG, optionally saved to disk
//   - maze_animate: Path or search replay as base64 GIF, optionally saved to disk
//
// Diagnostics:
//   - maze_sample_color: Color and cell classification of one pixel
//   - maze_dominant_colors: Most common exact colors in the image
//
// Every maze tool accepts an optional "palette" object whose set fields
// override the server palette, and a "cell_size" that reduces mazes drawn
// in pixel blocks to one pixel per cell before solving. maze_load reports
// the detected block size.
//
// # Unreachable Exits
//
// A maze whose exit cannot be reached is not an error: maze_solve returns
// found=false with an empty path. Images without markers, or with a marker
// on an invalid cell, fail with a tool error.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
