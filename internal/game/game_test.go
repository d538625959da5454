package game

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/logging"
)

const testSeed = 4242

func testConfig() Config {
	// An hour-long tick keeps the elapsed time at zero for stable output
	return Config{Seed: testSeed, TickInterval: time.Hour}
}

func runGame(t *testing.T, cfg Config, input string) (*Game, string) {
	t.Helper()
	out := &bytes.Buffer{}
	g, err := New(cfg, strings.NewReader(input), out, logging.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return g, out.String()
}

// firstBoard rebuilds the layout the game generates for its first session.
func firstBoard() *board.Board {
	b := board.NewStandard(rand.New(rand.NewSource(testSeed)))
	b.Generate(context.Background())
	return b
}

// winningMoves returns just enough /open commands to win the first board.
func winningMoves(t *testing.T) string {
	t.Helper()
	b := firstBoard()
	var moves strings.Builder
	for r := 0; r < b.Rows() && b.Status() == board.StatusPlaying; r++ {
		for c := 0; c < b.Cols() && b.Status() == board.StatusPlaying; c++ {
			cell, _ := b.CellAt(r, c)
			if cell.Mine || cell.State != board.CellHidden {
				continue
			}
			if _, err := b.Open(context.Background(), r, c); err != nil {
				t.Fatalf("Open(%d,%d) error = %v", r, c, err)
			}
			fmt.Fprintf(&moves, "/open %d %d\n", r+1, c+1)
		}
	}
	return moves.String()
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateMenu, "menu"},
		{StatePlaying, "playing"},
		{StateExiting, "exiting"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestMenuExit(t *testing.T) {
	g, out := runGame(t, testConfig(), "3\n")

	want := "MineSweeper Game\n----------------\n1. New Game\n2. Last 10 Wins\n3. Exit Game\nOption> Exiting...\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if g.State() != StateExiting {
		t.Errorf("State() = %v, want exiting", g.State())
	}
}

func TestMenuInvalidOptions(t *testing.T) {
	_, out := runGame(t, testConfig(), "abc\n7\n0\n3\n")

	if strings.Count(out, "Invalid option, please choose a valid number.") != 1 {
		t.Errorf("expected one non-numeric error:\n%s", out)
	}
	if strings.Count(out, "Invalid option, please choose a number between 1 and 3.") != 2 {
		t.Errorf("expected two range errors:\n%s", out)
	}
	if strings.Count(out, "MineSweeper Game") != 4 {
		t.Errorf("menu should be shown four times:\n%s", out)
	}
}

func TestMenuEndsOnEOF(t *testing.T) {
	g, _ := runGame(t, testConfig(), "")
	if g.State() != StateExiting {
		t.Errorf("State() = %v, want exiting", g.State())
	}

	g, _ = runGame(t, testConfig(), "1\n")
	if g.State() != StateExiting {
		t.Errorf("State() after EOF at name prompt = %v, want exiting", g.State())
	}

	g, _ = runGame(t, testConfig(), "1\nAna\n/help\n")
	if g.State() != StateExiting {
		t.Errorf("State() after EOF in game = %v, want exiting", g.State())
	}
}

func TestMenuEmptyWinners(t *testing.T) {
	_, out := runGame(t, testConfig(), "2\n3\n")

	if !strings.Contains(out, "Last 10 winners:\nNo winners yet.\n") {
		t.Errorf("missing empty winners list:\n%s", out)
	}
}

func TestNewGameAnonymousNames(t *testing.T) {
	_, out := runGame(t, testConfig(), "1\n\n/quit\n1\n   \n/quit\n3\n")

	if !strings.Contains(out, "Welcome, Anonymous 1! To see the list of available commands, type /help.") {
		t.Errorf("missing first anonymous welcome:\n%s", out)
	}
	if !strings.Contains(out, "Welcome, Anonymous 2!") {
		t.Errorf("missing second anonymous welcome:\n%s", out)
	}
	if !strings.Contains(out, "Exiting to the menu...") {
		t.Errorf("missing quit message:\n%s", out)
	}
}

func TestNewGameDefaultName(t *testing.T) {
	cfg := testConfig()
	cfg.PlayerName = "Zed"
	_, out := runGame(t, cfg, "1\n\n/quit\n1\nAna\n/quit\n3\n")

	if !strings.Contains(out, "Welcome, Zed!") {
		t.Errorf("configured name not used:\n%s", out)
	}
	if !strings.Contains(out, "Welcome, Ana!") {
		t.Errorf("typed name not used:\n%s", out)
	}
}

func TestNewGamePrintsBoardFirst(t *testing.T) {
	_, out := runGame(t, testConfig(), "1\nAna\n/quit\n3\n")

	var rendered bytes.Buffer
	firstBoard().Render(&rendered)

	want := "Username> " + rendered.String() + "Welcome, Ana!"
	if !strings.Contains(out, want) {
		t.Errorf("board should be printed before the welcome line:\n%s", out)
	}
}

func TestNewGameLoss(t *testing.T) {
	b := firstBoard()
	row, col := -1, -1
	for r := 0; r < b.Rows() && row < 0; r++ {
		for c := 0; c < b.Cols(); c++ {
			if cell, _ := b.CellAt(r, c); cell.Mine {
				row, col = r+1, c+1
				break
			}
		}
	}

	g, out := runGame(t, testConfig(), fmt.Sprintf("1\nBo\n/open %d %d\n2\n3\n", row, col))

	if !strings.Contains(out, "You lose! time: 00h00m00s\nReturning to menu...") {
		t.Errorf("missing loss message:\n%s", out)
	}
	if g.Winners().Len() != 0 {
		t.Errorf("Winners().Len() = %d, want 0", g.Winners().Len())
	}
	if !strings.Contains(out, "No winners yet.") {
		t.Errorf("loser should not be listed:\n%s", out)
	}
}

func TestNewGameWinIsRecorded(t *testing.T) {
	input := "1\nAna\n" + winningMoves(t) + "2\n3\n"
	g, out := runGame(t, testConfig(), input)

	if !strings.Contains(out, "You win! time: 00h00m00s\nReturning to menu...") {
		t.Fatalf("missing win message:\n%s", out)
	}
	if g.Winners().Len() != 1 {
		t.Fatalf("Winners().Len() = %d, want 1", g.Winners().Len())
	}
	if !strings.Contains(out, "Last 10 winners:\nAna --> 00h00m00s\n") {
		t.Errorf("winner not listed:\n%s", out)
	}
	if strings.Contains(out, "Invalid option") {
		t.Errorf("leftover moves reached the menu:\n%s", out)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	g, err := New(testConfig(), strings.NewReader("3\n"), &bytes.Buffer{}, logging.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Run(ctx); err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestScanLinesTruncated(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		bufSize  int
		expected []string
	}{
		{
			name:     "short lines",
			input:    "1\n\nAna\r\n",
			bufSize:  64,
			expected: []string{"1", "", "Ana"},
		},
		{
			name:     "long line inside buffer",
			input:    "abcdefghijkl\nok\n",
			bufSize:  64,
			expected: []string{"abcdefgh", "ok"},
		},
		{
			name:     "long line across buffers",
			input:    "abcdefghijklmnopqrstuvwxyz\nshort\nalsolonglines\n",
			bufSize:  16,
			expected: []string{"abcdefgh", "short", "alsolong"},
		},
		{
			name:     "long last line without newline",
			input:    "ok\nabcdefghijklmnopqrstuvwxyz",
			bufSize:  16,
			expected: []string{"ok", "abcdefgh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			scanner.Buffer(make([]byte, tt.bufSize), tt.bufSize)
			scanner.Split(scanLinesTruncated(8))

			var got []string
			for scanner.Scan() {
				got = append(got, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") {
				t.Errorf("tokens = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMenuSurvivesLongLine(t *testing.T) {
	long := strings.Repeat("x", 70000)
	g, out := runGame(t, testConfig(), long+"\n3\n")

	if strings.Count(out, "Invalid option, please choose a valid number.") != 1 {
		t.Errorf("long line should be one invalid option:\n%s", out)
	}
	if !strings.HasSuffix(out, "Exiting...\n") {
		t.Errorf("menu should keep running after a long line")
	}
	if g.State() != StateExiting {
		t.Errorf("State() = %v, want exiting", g.State())
	}
}

func TestGameSurvivesLongCommand(t *testing.T) {
	long := "/open " + strings.Repeat("9", 70000)
	_, out := runGame(t, testConfig(), "1\nAna\n"+long+"\n/quit\n3\n")

	if !strings.Contains(out, "Exiting to the menu...") {
		t.Errorf("game should keep reading after a long command")
	}
	if !strings.HasSuffix(out, "Exiting...\n") {
		t.Errorf("menu should be reached after the game")
	}
}
