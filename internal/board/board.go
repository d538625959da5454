package board

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minesweeper/internal/telemetry"
)

const (
	// Standard board dimensions.
	Rows  = 9
	Cols  = 9
	Mines = 10
	Flags = 10
)

var (
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrAlreadyRevealed = errors.New("cell already revealed")
	ErrFlagged         = errors.New("cell is flagged")
	ErrNoFlagsLeft     = errors.New("flag limit reached")
	ErrNotFlaggable    = errors.New("cell cannot be flagged")
	ErrNoHint          = errors.New("no cell left to hint")
	ErrGameOver        = errors.New("game is over")
	ErrAlreadyMined    = errors.New("mines already placed")
)

// Status is the win/loss state of a board.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Board holds the grid state, the mine layout and the remaining counters.
type Board struct {
	rows, cols int
	mineCount  int
	flagLimit  int

	cells [][]CellState
	mines [][]bool

	remainingSafe  int
	remainingFlags int
	status         Status
	mined          bool
	rng            *rand.Rand
}

// New creates a board with every cell hidden and no mines placed.
// It panics on dimensions NewChecked would reject.
func New(rows, cols, mines, flags int, rng *rand.Rand) *Board {
	b, err := NewChecked(rows, cols, mines, flags, rng)
	if err != nil {
		panic(err)
	}
	return b
}

// NewStandard creates the fixed 9x9 board with 10 mines and 10 flags.
func NewStandard(rng *rand.Rand) *Board {
	return New(Rows, Cols, Mines, Flags, rng)
}

// NewChecked is New with validation of the dimensions.
func NewChecked(rows, cols, mines, flags int, rng *rand.Rand) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid board size %dx%d", rows, cols)
	}
	if mines < 0 || mines >= rows*cols {
		return nil, fmt.Errorf("invalid mine count %d for %dx%d board", mines, rows, cols)
	}
	if flags < 0 || mines+flags > rows*cols {
		return nil, fmt.Errorf("invalid flag count %d for %dx%d board with %d mines", flags, rows, cols, mines)
	}
	if rng == nil {
		return nil, errors.New("nil random source")
	}

	cells := make([][]CellState, rows)
	mineGrid := make([][]bool, rows)
	for r := range cells {
		cells[r] = make([]CellState, cols)
		mineGrid[r] = make([]bool, cols)
	}

	return &Board{
		rows:           rows,
		cols:           cols,
		mineCount:      mines,
		flagLimit:      flags,
		cells:          cells,
		mines:          mineGrid,
		remainingSafe:  rows*cols - mines,
		remainingFlags: flags,
		status:         StatusPlaying,
		rng:            rng,
	}, nil
}

// Generate places the mines at distinct random positions. A board is mined
// once; later calls return ErrAlreadyMined and leave the layout unchanged.
func (b *Board) Generate(ctx context.Context) error {
	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "board.generate")
	defer span.End()

	if b.mined {
		span.SetAttributes(attribute.Bool("failed", true))
		return ErrAlreadyMined
	}

	attempts := 0
	placed := 0
	for placed < b.mineCount {
		attempts++
		r := b.rng.Intn(b.rows)
		c := b.rng.Intn(b.cols)
		if !b.mines[r][c] {
			b.mines[r][c] = true
			placed++
		}
	}
	b.mined = true

	span.SetAttributes(
		attribute.Int("board.rows", b.rows),
		attribute.Int("board.cols", b.cols),
		attribute.Int("board.mines", b.mineCount),
		attribute.Int("board.attempts", attempts),
	)
	return nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// MineCount returns the number of mines on the board.
func (b *Board) MineCount() int { return b.mineCount }

// Status returns the current game status.
func (b *Board) Status() Status { return b.status }

// RemainingSafe returns how many safe cells are still unopened.
func (b *Board) RemainingSafe() int { return b.remainingSafe }

// FlagLimit returns the number of flags the board started with.
func (b *Board) FlagLimit() int { return b.flagLimit }

// RemainingFlags returns how many flags can still be placed.
func (b *Board) RemainingFlags() int { return b.remainingFlags }

// InBounds reports whether the zero-based position lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// CellAt returns a view of the cell at the given position.
func (b *Board) CellAt(row, col int) (Cell, error) {
	if !b.InBounds(row, col) {
		return Cell{}, fmt.Errorf("cell (%d,%d): %w", row+1, col+1, ErrOutOfBounds)
	}
	return b.cell(row, col), nil
}

func (b *Board) cell(row, col int) Cell {
	return Cell{
		State:    b.cells[row][col],
		Mine:     b.mines[row][col],
		Adjacent: b.AdjacentMines(row, col),
	}
}

// AdjacentMines counts the mines surrounding a cell.
func (b *Board) AdjacentMines(row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if b.InBounds(r, c) && b.mines[r][c] {
				count++
			}
		}
	}
	return count
}

// Open reveals the cell at the given position. A mine ends the game; a cell
// with no adjacent mines reveals its neighbours transitively.
func (b *Board) Open(ctx context.Context, row, col int) (Status, error) {
	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "board.open")
	defer span.End()
	span.SetAttributes(attribute.Int("row", row+1), attribute.Int("col", col+1))

	if b.status != StatusPlaying {
		return b.status, ErrGameOver
	}
	if !b.InBounds(row, col) {
		return b.status, fmt.Errorf("open (%d,%d): %w", row+1, col+1, ErrOutOfBounds)
	}

	switch b.cells[row][col] {
	case CellFlagged:
		return b.status, fmt.Errorf("open (%d,%d): %w", row+1, col+1, ErrFlagged)
	case CellRevealed, CellExploded:
		return b.status, fmt.Errorf("open (%d,%d): %w", row+1, col+1, ErrAlreadyRevealed)
	}

	if b.mines[row][col] {
		b.cells[row][col] = CellExploded
		b.status = StatusLost
		span.SetAttributes(attribute.String("outcome", b.status.String()))
		return b.status, nil
	}

	before := b.remainingSafe
	b.revealAround(row, col)
	b.checkWin()

	span.SetAttributes(
		attribute.Int("revealed", before-b.remainingSafe),
		attribute.Int("remaining_safe", b.remainingSafe),
		attribute.String("outcome", b.status.String()),
	)
	return b.status, nil
}

// revealAround is the flood fill. Flagged, revealed and mined cells stop it.
func (b *Board) revealAround(row, col int) {
	if !b.InBounds(row, col) || b.cells[row][col] != CellHidden || b.mines[row][col] {
		return
	}

	b.cells[row][col] = CellRevealed
	b.remainingSafe--

	if b.AdjacentMines(row, col) > 0 {
		return
	}
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr != 0 || dc != 0 {
				b.revealAround(row+dr, col+dc)
			}
		}
	}
}

func (b *Board) checkWin() {
	if b.remainingSafe == 0 {
		b.status = StatusWon
	}
}

// ToggleFlag places a flag on a hidden cell or removes an existing one.
func (b *Board) ToggleFlag(row, col int) error {
	if b.status != StatusPlaying {
		return ErrGameOver
	}
	if !b.InBounds(row, col) {
		return fmt.Errorf("flag (%d,%d): %w", row+1, col+1, ErrOutOfBounds)
	}

	switch b.cells[row][col] {
	case CellFlagged:
		b.cells[row][col] = CellHidden
		b.remainingFlags++
		return nil
	case CellHidden:
		if b.remainingFlags == 0 {
			return ErrNoFlagsLeft
		}
		b.cells[row][col] = CellFlagged
		b.remainingFlags--
		return nil
	default:
		return fmt.Errorf("flag (%d,%d): %w", row+1, col+1, ErrNotFlaggable)
	}
}

// Hint reveals one random hidden safe cell, preferring cells next to a mine.
// It returns the zero-based position that was revealed.
func (b *Board) Hint(ctx context.Context) (int, int, error) {
	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "board.hint")
	defer span.End()

	if b.status != StatusPlaying {
		return -1, -1, ErrGameOver
	}

	var numbered, hidden [][2]int
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if b.cells[r][c] != CellHidden || b.mines[r][c] {
				continue
			}
			hidden = append(hidden, [2]int{r, c})
			if b.AdjacentMines(r, c) > 0 {
				numbered = append(numbered, [2]int{r, c})
			}
		}
	}

	candidates := numbered
	if len(candidates) == 0 {
		candidates = hidden
	}
	if len(candidates) == 0 {
		span.SetAttributes(attribute.Bool("failed", true))
		return -1, -1, ErrNoHint
	}

	pick := candidates[b.rng.Intn(len(candidates))]
	b.cells[pick[0]][pick[1]] = CellRevealed
	b.remainingSafe--
	b.checkWin()

	span.SetAttributes(
		attribute.Int("row", pick[0]+1),
		attribute.Int("col", pick[1]+1),
		attribute.String("outcome", b.status.String()),
	)
	return pick[0], pick[1], nil
}

// FlaggedMines returns how many flags sit on actual mines.
func (b *Board) FlaggedMines() int {
	count := 0
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if b.cells[r][c] == CellFlagged && b.mines[r][c] {
				count++
			}
		}
	}
	return count
}
