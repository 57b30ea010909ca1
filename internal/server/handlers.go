package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/maze-tools-mcp/internal/config"
	"github.com/ironsheep/maze-tools-mcp/internal/detection"
	"github.com/ironsheep/maze-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "maze_solve").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	switch name {
	// Maze Operations
	case "maze_load":
		return s.handleMazeLoad(args)
	case "maze_solve":
		return s.handleMazeSolve(args)
	case "maze_render":
		return s.handleMazeRender(args)
	case "maze_animate":
		return s.handleMazeAnimate(args)

	// Diagnostics
	case "maze_sample_color":
		return s.handleSampleColor(args)
	case "maze_dominant_colors":
		return s.handleDominantColors(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// mazeArgs holds the arguments shared by every maze tool.
type mazeArgs struct {
	Path     string          `json:"path"`
	Palette  *config.Palette `json:"palette,omitempty"`
	CellSize int             `json:"cell_size,omitempty"`
}

// load returns the cached image, reduced to one pixel per cell when
// a.CellSize > 1, and the effective palette for a call.
func (s *Server) load(a mazeArgs) (image.Image, config.Palette, error) {
	if a.Path == "" {
		return nil, config.Palette{}, fmt.Errorf("path is required")
	}
	palette := s.palette
	if a.Palette != nil {
		palette = palette.Merge(*a.Palette)
	}
	if err := palette.Validate(); err != nil {
		return nil, config.Palette{}, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, config.Palette{}, err
	}
	if a.CellSize > 1 {
		if img, err = imaging.Downsample(img, a.CellSize); err != nil {
			return nil, config.Palette{}, err
		}
	}
	return img, palette, nil
}

// solve loads and solves the maze at a.Path, logging the outcome.
func (s *Server) solve(a mazeArgs) (image.Image, config.Palette, *imaging.Solution, error) {
	img, palette, err := s.load(a)
	if err != nil {
		return nil, config.Palette{}, nil, err
	}
	sol, err := imaging.SolveImage(img, palette)
	if err != nil {
		return nil, config.Palette{}, nil, err
	}
	s.logger.Info("maze solved",
		"path", a.Path,
		"found", sol.Found,
		"steps", sol.Result.Steps(),
		"expanded", sol.Result.Expanded,
		"elapsed", sol.Result.Elapsed)
	return img, palette, sol, nil
}

// === Maze Operation Handlers ===

type mazeLoadResult struct {
	*imaging.GridSummary
	Cells *detection.CellSizeResult `json:"detected_cells"`
}

func (s *Server) handleMazeLoad(args json.RawMessage) (interface{}, error) {
	var a mazeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, palette, err := s.load(a)
	if err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	summary, err := imaging.SummarizeGrid(img, palette)
	if err != nil {
		return nil, err
	}
	summary.Image = info
	return &mazeLoadResult{
		GridSummary: summary,
		Cells:       detection.DetectCellSize(img),
	}, nil
}

func (s *Server) handleMazeSolve(args json.RawMessage) (interface{}, error) {
	var a mazeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, _, sol, err := s.solve(a)
	if err != nil {
		return nil, err
	}
	return sol.Summary(), nil
}

type mazeRenderArgs struct {
	mazeArgs
	Scale        int    `json:"scale"`
	ShowExplored bool   `json:"show_explored"`
	Caption      bool   `json:"caption"`
	Out          string `json:"out"`
}

type mazeRenderResult struct {
	*imaging.RenderResult
	Found   bool   `json:"found"`
	Steps   int    `json:"steps"`
	SavedTo string `json:"saved_to,omitempty"`
}

func (s *Server) handleMazeRender(args json.RawMessage) (interface{}, error) {
	var a mazeRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, palette, sol, err := s.solve(a.mazeArgs)
	if err != nil {
		return nil, err
	}

	opts := imaging.RenderOptions{
		Palette:      palette,
		Scale:        a.Scale,
		ShowExplored: a.ShowExplored,
	}
	if a.Caption {
		opts.Caption = caption(sol)
	}
	out, err := imaging.RenderSolution(img, sol.Result, opts)
	if err != nil {
		return nil, err
	}
	if a.Out != "" {
		if err := imaging.SaveImage(a.Out, out); err != nil {
			return nil, err
		}
		s.cache.Evict(a.Out)
	}
	encoded, err := imaging.EncodePNG(out)
	if err != nil {
		return nil, err
	}
	return &mazeRenderResult{
		RenderResult: encoded,
		Found:        sol.Found,
		Steps:        sol.Result.Steps(),
		SavedTo:      a.Out,
	}, nil
}

type mazeAnimateArgs struct {
	mazeArgs
	Mode      string `json:"mode"`
	Scale     int    `json:"scale"`
	MaxFrames int    `json:"max_frames"`
	Delay     int    `json:"delay"`
	Out       string `json:"out"`
}

type mazeAnimateResult struct {
	*imaging.AnimateResult
	Found   bool   `json:"found"`
	Steps   int    `json:"steps"`
	SavedTo string `json:"saved_to,omitempty"`
}

func (s *Server) handleMazeAnimate(args json.RawMessage) (interface{}, error) {
	var a mazeAnimateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, palette, sol, err := s.solve(a.mazeArgs)
	if err != nil {
		return nil, err
	}

	anim, err := imaging.Animate(img, sol.Result, imaging.AnimateOptions{
		Palette:   palette,
		Mode:      a.Mode,
		Scale:     a.Scale,
		MaxFrames: a.MaxFrames,
		Delay:     a.Delay,
	})
	if err != nil {
		return nil, err
	}
	if a.Out != "" {
		if err := imaging.SaveGIF(a.Out, anim); err != nil {
			return nil, err
		}
		s.cache.Evict(a.Out)
	}
	encoded, err := imaging.EncodeGIF(anim)
	if err != nil {
		return nil, err
	}
	return &mazeAnimateResult{
		AnimateResult: encoded,
		Found:         sol.Found,
		Steps:         sol.Result.Steps(),
		SavedTo:       a.Out,
	}, nil
}

// === Diagnostic Handlers ===

type sampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type dominantColorsArgs struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

func (s *Server) handleDominantColors(args json.RawMessage) (interface{}, error) {
	var a dominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColors(img, a.Count)
}

// caption summarizes a solution for the render overlay.
func caption(sol *imaging.Solution) string {
	if !sol.Found {
		return fmt.Sprintf("no path (%d expanded)", sol.Result.Expanded)
	}
	return fmt.Sprintf("%d steps, %d expanded", sol.Result.Steps(), sol.Result.Expanded)
}
