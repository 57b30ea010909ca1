// Package config loads the marker palette and runtime settings for the maze tools.
package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Default palette colors. Entry and exit follow the classic convention of a
// pure green start pixel and a pure red goal pixel.
const (
	DefaultEntry    = "#00FF00"
	DefaultExit     = "#FF0000"
	DefaultPath     = "#0000FF"
	DefaultExplored = "#FFD27F"
)

// Palette describes how maze images are read and how solutions are drawn.
type Palette struct {
	// Entry is the hex color marking the entry pixel.
	Entry string `yaml:"entry" json:"entry,omitempty"`

	// Exit is the hex color marking the exit pixel.
	Exit string `yaml:"exit" json:"exit,omitempty"`

	// Path is the overlay color for solution cells.
	Path string `yaml:"path" json:"path,omitempty"`

	// Explored is the overlay color for cells visited by the search replay.
	Explored string `yaml:"explored" json:"explored,omitempty"`

	// Tolerance is the maximum CIEDE2000 distance at which a pixel still
	// matches a marker color, on go-colorful's scale where 0.01 is roughly
	// one just-noticeable difference. Zero requires an exact 8-bit match.
	Tolerance float64 `yaml:"tolerance" json:"tolerance,omitempty"`

	// StrictMarkers rejects images in which a marker color appears on more
	// than one pixel. When false the last pixel in scan order wins.
	StrictMarkers bool `yaml:"strict_markers" json:"strict_markers,omitempty"`
}

// DefaultPalette returns the palette used when no file is supplied.
func DefaultPalette() Palette {
	var p Palette
	p.defaults()
	return p
}

func (p *Palette) defaults() {
	if p.Entry == "" {
		p.Entry = DefaultEntry
	}
	if p.Exit == "" {
		p.Exit = DefaultExit
	}
	if p.Path == "" {
		p.Path = DefaultPath
	}
	if p.Explored == "" {
		p.Explored = DefaultExplored
	}
}

// Validate fills defaults, checks that every color parses and that the entry
// and exit markers are distinct colors.
func (p *Palette) Validate() error {
	p.defaults()
	if p.Tolerance < 0 {
		return fmt.Errorf("tolerance must be >= 0, got %g", p.Tolerance)
	}
	for name, hex := range map[string]string{
		"entry":    p.Entry,
		"exit":     p.Exit,
		"path":     p.Path,
		"explored": p.Explored,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("invalid %s color %q: %w", name, hex, err)
		}
	}
	if MustColor(p.Entry) == MustColor(p.Exit) {
		return fmt.Errorf("entry and exit colors must differ, both are %s", p.Entry)
	}
	return nil
}

// Merge returns p with every field that is set in o replaced by o's value.
// StrictMarkers can only be switched on by an override, and a zero Tolerance
// in o reads as unset, so an override cannot bring a non-zero tolerance back
// to an exact match.
func (p Palette) Merge(o Palette) Palette {
	if o.Entry != "" {
		p.Entry = o.Entry
	}
	if o.Exit != "" {
		p.Exit = o.Exit
	}
	if o.Path != "" {
		p.Path = o.Path
	}
	if o.Explored != "" {
		p.Explored = o.Explored
	}
	if o.Tolerance != 0 {
		p.Tolerance = o.Tolerance
	}
	if o.StrictMarkers {
		p.StrictMarkers = true
	}
	return p
}

// LoadPaletteFile reads a YAML palette file and applies defaults.
func LoadPaletteFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette: %w", err)
	}
	p := &Palette{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseColor converts a "#RRGGBB" string to an opaque color.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustColor is ParseColor for palettes that already passed Validate.
func MustColor(hex string) color.NRGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return c
}
