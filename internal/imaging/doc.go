// Package imaging turns maze images into grids and draws solutions back onto them.
//
// One pixel is one maze cell; mazes drawn in larger blocks go through
// Downsample first. Reading an image happens in a single pass that
// both locates the entry/exit markers and classifies every other pixel as a
// wall or an open cell. Rendering works on a copy of the source image, so a
// cached image can be solved, rendered and animated any number of times.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based and relative to the
// image's top-left corner, regardless of the decoded image's Bounds().Min:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// These map one to one onto maze.Coordinate.
//
// # Color Rules
//
// The default palette marks the entry with pure green (#00FF00) and the exit
// with pure red (#FF0000). Markers are matched first; every remaining pixel
// whose green and blue channels are both zero is a wall, and everything else
// is open. See config.Palette for tolerance and strict-marker settings.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Every other function in
// this package works on its own copy of the pixels.
//
// # Output
//
// Rendered stills are PNG (or JPEG when saved with a .jpg extension) and
// replays are animated GIFs, both available as base64 for the MCP and HTTP
// transports or as files for the CLI.
package imaging
