package board

import (
	"bufio"
	"io"
	"strconv"
)

// cellPadding follows every symbol so that the grid lines up with the footer.
const cellPadding = "  "

// Render writes the board as the player sees it.
func (b *Board) Render(w io.Writer) error {
	return b.render(w, false)
}

// RenderRevealed writes the board with every mine uncovered. The board state
// itself is left untouched.
func (b *Board) RenderRevealed(w io.Writer) error {
	return b.render(w, true)
}

func (b *Board) render(w io.Writer, showMines bool) error {
	bw := bufio.NewWriter(w)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			bw.WriteString(b.cell(r, c).Symbol(showMines))
			bw.WriteString(cellPadding)
		}
		bw.WriteString("| ")
		bw.WriteString(strconv.Itoa(r + 1))
		bw.WriteByte('\n')
	}
	for c := 0; c < b.cols; c++ {
		bw.WriteString(strconv.Itoa(c + 1))
		bw.WriteString("| ")
	}
	bw.WriteByte('\n')
	return bw.Flush()
}
