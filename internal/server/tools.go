package server

import "github.com/ironsheep/maze-tools-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the maze image (PNG, JPEG or GIF)",
	}
}

func cellSizeProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Pixels per maze cell. Values above 1 reduce the image to one pixel per cell before solving; maze_load reports the detected size.",
		"default":     1,
	}
}

func paletteProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional palette override. Colors are #RRGGBB.",
		"properties": map[string]interface{}{
			"entry": map[string]interface{}{
				"type":        "string",
				"description": "Entry marker color. Default #00FF00",
			},
			"exit": map[string]interface{}{
				"type":        "string",
				"description": "Exit marker color. Default #FF0000",
			},
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Overlay color for the solution. Default #0000FF",
			},
			"explored": map[string]interface{}{
				"type":        "string",
				"description": "Overlay color for explored cells. Default #FFD27F",
			},
			"tolerance": map[string]interface{}{
				"type":        "number",
				"description": "CIEDE2000 marker match distance (0.01 is about one just-noticeable difference). Default 0 (exact)",
			},
			"strict_markers": map[string]interface{}{
				"type":        "boolean",
				"description": "Reject images where a marker color appears on more than one pixel",
			},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Maze Operations
		{
			Name:        "maze_load",
			Description: "Load a maze image and report its dimensions, entry and exit marker positions, how many pixels are open or wall, and the detected cell size for mazes drawn with thick corridors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"palette":   paletteProperty(),
					"cell_size": cellSizeProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "maze_solve",
			Description: "Find the shortest 4-connected path from the entry pixel to the exit pixel. Returns the path as coordinates (entry excluded, exit included) with search statistics. found=false means the exit is unreachable.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"palette":   paletteProperty(),
					"cell_size": cellSizeProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "maze_render",
			Description: "Solve a maze and return the image with the path drawn on it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"palette":   paletteProperty(),
					"cell_size": cellSizeProperty(),
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per maze cell in the output. Default 1",
						"default":     1,
						"maximum":     imaging.MaxScale,
					},
					"show_explored": map[string]interface{}{
						"type":        "boolean",
						"description": "Also paint every cell the search visited",
					},
					"caption": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw step and expansion counts in the top-left corner",
					},
					"out": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write (.png or .jpg)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "maze_animate",
			Description: "Solve a maze and return an animated GIF replaying either the path (mode=path) or the breadth-first search followed by the path (mode=search).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"palette":   paletteProperty(),
					"cell_size": cellSizeProperty(),
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"path", "search"},
						"description": "What to replay. Default path",
						"default":     "path",
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per maze cell in the output. Default 1",
						"default":     1,
						"maximum":     imaging.MaxScale,
					},
					"max_frames": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of frames. Default 100",
						"default":     100,
						"maximum":     imaging.MaxFrames,
					},
					"delay": map[string]interface{}{
						"type":        "integer",
						"description": "Frame delay in hundredths of a second. Default 2",
						"default":     2,
					},
					"out": map[string]interface{}{
						"type":        "string",
						"description": "Optional .gif file to write",
					},
				},
				"required": []string{"path"},
			},
		},

		// Diagnostics
		{
			Name:        "maze_sample_color",
			Description: "Get the exact color at a pixel and whether it reads as wall or open. Use this when markers are not detected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "maze_dominant_colors",
			Description: "List the most common exact colors in the maze image with their pixel counts and classification.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
