// Package board provides the Minesweeper grid, mine layout and reveal logic.
package board

import "strconv"

// CellState represents what the player currently knows about a cell.
type CellState int

const (
	// CellHidden is an unopened cell.
	CellHidden CellState = iota
	// CellFlagged is an unopened cell carrying a player flag.
	CellFlagged
	// CellRevealed is an opened cell without a mine.
	CellRevealed
	// CellExploded is an opened cell that held a mine.
	CellExploded
)

// String returns a human-readable state name.
func (s CellState) String() string {
	switch s {
	case CellHidden:
		return "hidden"
	case CellFlagged:
		return "flagged"
	case CellRevealed:
		return "revealed"
	case CellExploded:
		return "exploded"
	default:
		return "unknown"
	}
}

// Display symbols.
const (
	SymbolHidden = "■"
	SymbolFlag   = "#"
	SymbolEmpty  = "□"
	SymbolMine   = "B"
)

// Cell is a read-only view of a single board position.
type Cell struct {
	State    CellState
	Mine     bool // Only meaningful to callers allowed to peek (cheat view, tests)
	Adjacent int  // Number of mines in the 8-neighbourhood
}

// Symbol returns the glyph shown for the cell. When showMines is true, any
// mine is drawn as a mine regardless of its state.
func (c Cell) Symbol(showMines bool) string {
	if c.Mine && (showMines || c.State == CellExploded) {
		return SymbolMine
	}
	switch c.State {
	case CellFlagged:
		return SymbolFlag
	case CellRevealed:
		if c.Adjacent == 0 {
			return SymbolEmpty
		}
		return strconv.Itoa(c.Adjacent)
	default:
		return SymbolHidden
	}
}
