package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/gamedata"
)

// Layout constants, in terminal cells.
const (
	gridLeft   = 1
	gridTop    = 2
	cellStride = 3
)

// View is everything needed to draw one frame.
type View struct {
	Board     *board.Board
	CursorRow int
	CursorCol int
	ShowMines bool
	Title     string
	Status    []string // Lines drawn below the grid
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen and palette.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// CellPosition returns the screen coordinates of a board cell's glyph.
func CellPosition(row, col int) (x, y int) {
	return gridLeft + col*cellStride, gridTop + row
}

// Render draws the board, the cursor and the status lines.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	r.drawText(gridLeft, 0, v.Title, titleStyle)

	b := v.Board
	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			cell, _ := b.CellAt(row, col)
			glyph := []rune(cell.Symbol(v.ShowMines))[0]
			style := r.cellStyle(cell, v.ShowMines)
			if row == v.CursorRow && col == v.CursorCol {
				style = style.Reverse(true)
			}
			x, y := CellPosition(row, col)
			r.screen.SetContent(x, y, glyph, style)
		}
		x, y := CellPosition(row, b.Cols())
		r.drawText(x, y, "| "+strconv.Itoa(row+1), labelStyle)
	}
	for col := 0; col < b.Cols(); col++ {
		x, y := CellPosition(b.Rows(), col)
		r.drawText(x, y, strconv.Itoa(col+1), labelStyle)
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	_, y := CellPosition(b.Rows()+2, 0)
	for i, line := range v.Status {
		r.drawText(gridLeft, y+i, line, statusStyle)
	}

	r.screen.Show()
}

// cellStyle picks the palette colour for a cell's glyph.
func (r *Renderer) cellStyle(cell board.Cell, showMines bool) tcell.Style {
	return tcell.StyleDefault.Foreground(r.palette.Color(GlyphKind(cell, showMines)))
}

// GlyphKind maps a cell to its palette key.
func GlyphKind(cell board.Cell, showMines bool) string {
	switch cell.Symbol(showMines) {
	case board.SymbolMine:
		return gamedata.GlyphMine
	case board.SymbolFlag:
		return gamedata.GlyphFlag
	case board.SymbolEmpty:
		return gamedata.GlyphEmpty
	case board.SymbolHidden:
		return gamedata.GlyphHidden
	default:
		return strconv.Itoa(cell.Adjacent)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
