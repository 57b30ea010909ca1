// Package detection finds structure in maze images before they are solved.
//
// Many published mazes are drawn with corridors and walls several pixels
// wide. Solving such an image pixel by pixel works but wastes effort and
// produces paths that hug one side of each corridor. DetectCellSize measures
// the block size the maze was drawn with so the image can be reduced to one
// pixel per cell first (see imaging.Downsample).
//
// # Algorithm
//
// Every pixel is classified as wall or open. Each row and column is split
// into maximal runs of one class, and the cell size is the greatest common
// divisor of all run lengths and of the image dimensions. A single
// anti-aliased or off-by-one pixel collapses the result to 1, so the
// detector is only meaningful on lossless images.
//
// # Coordinate System
//
// Coordinates are relative to the image bounds:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
package detection
