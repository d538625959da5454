package gamedata

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Glyph kinds used as palette keys. Numbered cells use "1" through "8".
const (
	GlyphHidden = "hidden"
	GlyphFlag   = "flag"
	GlyphEmpty  = "empty"
	GlyphMine   = "mine"
)

// GlyphDef assigns a colour to one kind of cell glyph.
type GlyphDef struct {
	Kind  string `json:"kind"`
	Color string `json:"color"` // Hex color code (e.g., "#FF0000")
}

// PaletteFile represents the structure of palette.json.
type PaletteFile struct {
	Glyphs []GlyphDef `json:"glyphs"`
}

// Palette maps glyph kinds to parsed colours.
type Palette struct {
	colors map[string]tcell.Color
}

// NewPalette parses every glyph colour up front so rendering never fails.
func NewPalette(glyphs []GlyphDef) (*Palette, error) {
	p := &Palette{colors: make(map[string]tcell.Color, len(glyphs))}
	for _, g := range glyphs {
		color, err := ParseHexColor(g.Color)
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", g.Kind, err)
		}
		p.colors[g.Kind] = color
	}
	return p, nil
}

// LoadPalette loads the palette from the embedded palette.json.
func LoadPalette() (*Palette, error) {
	file, err := Load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	if len(file.Glyphs) == 0 {
		return nil, errors.New("no glyphs loaded from palette.json")
	}
	return NewPalette(file.Glyphs)
}

// Color returns the colour for a glyph kind, white when the kind is unknown.
func (p *Palette) Color(kind string) tcell.Color {
	if color, ok := p.colors[kind]; ok {
		return color
	}
	return tcell.ColorWhite
}
