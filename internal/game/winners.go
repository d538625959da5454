package game

import "github.com/samdwyer/minesweeper/internal/player"

// MaxWinners is how many recent winners the menu remembers.
const MaxWinners = 10

// Winner is one finished, won game.
type Winner struct {
	Name    string
	Seconds int64
}

// String formats the winner the way the menu lists it.
func (w Winner) String() string {
	return w.Name + " --> " + player.FormatElapsed(w.Seconds)
}

// Winners keeps the most recent winners of this process in memory.
type Winners struct {
	entries []Winner // oldest first
}

// NewWinners creates an empty list.
func NewWinners() *Winners {
	return &Winners{entries: make([]Winner, 0, MaxWinners)}
}

// Add records a winner, dropping the oldest entry once the list is full.
func (w *Winners) Add(winner Winner) {
	if len(w.entries) == MaxWinners {
		copy(w.entries, w.entries[1:])
		w.entries = w.entries[:MaxWinners-1]
	}
	w.entries = append(w.entries, winner)
}

// Recent returns the winners newest first.
func (w *Winners) Recent() []Winner {
	out := make([]Winner, len(w.entries))
	for i, e := range w.entries {
		out[len(w.entries)-1-i] = e
	}
	return out
}

// Len returns the number of stored winners.
func (w *Winners) Len() int {
	return len(w.entries)
}
