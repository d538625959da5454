package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/gamedata"
	"github.com/samdwyer/minesweeper/internal/player"
	"github.com/samdwyer/minesweeper/internal/telemetry"
	"github.com/samdwyer/minesweeper/internal/ui"
)

const tuiHelp = "arrows/hjkl move  space open  f flag  ? hint  c cheat  n new  q quit"

// TUI is the full-screen mode: the same board operations driven by keys.
type TUI struct {
	game     *Game
	screen   *ui.Screen
	renderer *ui.Renderer

	name      string
	sessionID uuid.UUID
	log       logrus.FieldLogger
	board     *board.Board
	timer     *player.Timer

	cursorRow, cursorCol int
	showMines            bool
	message              string
	finalTime            string
	running              bool
}

// NewTUI creates the full-screen mode on an initialized screen.
func (g *Game) NewTUI(screen *ui.Screen) (*TUI, error) {
	palette, err := gamedata.LoadPalette()
	if err != nil {
		return nil, fmt.Errorf("load palette: %w", err)
	}
	return &TUI{
		game:     g,
		screen:   screen,
		renderer: ui.NewRenderer(screen, palette),
		name:     g.nameOrDefault(""),
		running:  true,
	}, nil
}

// Run executes the full-screen loop until the player quits.
func (t *TUI) Run(ctx context.Context) error {
	if err := t.newRound(ctx); err != nil {
		t.screen.Close()
		return err
	}
	defer func() {
		t.endRound(ctx, player.OutcomeQuit)
		t.screen.Close()
	}()

	for t.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		t.render()

		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.HandleKey(ctx, ev)
		case *tcell.EventResize:
			t.screen.Sync()
		case nil:
			// Screen finalized
			return nil
		}
	}
	return nil
}

// newRound starts a fresh board and timer. On error the current round, if
// any, is left running.
func (t *TUI) newRound(ctx context.Context) error {
	sessionID := uuid.New()
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.session")
	span.SetAttributes(
		attribute.String("game.id", sessionID.String()),
		attribute.String("player.name", t.name),
		attribute.Bool("tui", true),
	)
	defer span.End()

	b, err := t.game.newBoard(ctx)
	if err != nil {
		return err
	}
	if t.timer != nil {
		t.endRound(ctx, player.OutcomeQuit)
	}

	t.sessionID = sessionID
	t.log = t.game.log.WithFields(logrus.Fields{
		"game_id": t.sessionID.String(),
		"player":  t.name,
		"mode":    "tui",
	})
	t.board = b
	t.timer = player.NewTimer(t.game.cfg.tickInterval())
	t.timer.Start(ctx)
	t.cursorRow, t.cursorCol = t.board.Rows()/2, t.board.Cols()/2
	t.showMines = false
	t.finalTime = player.FormatElapsed(0)
	t.message = "Welcome, " + t.name + "!"
	t.log.Info("game started")
	return nil
}

// endRound stops the timer once and records the outcome.
func (t *TUI) endRound(ctx context.Context, outcome player.Outcome) {
	if t.timer == nil {
		return
	}
	t.timer.Stop()
	res := player.Result{
		Outcome:      outcome,
		Seconds:      t.timer.Seconds(),
		FlaggedMines: t.board.FlaggedMines(),
	}
	t.timer = nil

	t.log.WithField("outcome", outcome.String()).Info("game finished")
	t.game.endGame(ctx, t.name, res)
}

// HandleKey applies one key press.
func (t *TUI) HandleKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.running = false
	case tcell.KeyUp:
		t.moveCursor(-1, 0)
	case tcell.KeyDown:
		t.moveCursor(1, 0)
	case tcell.KeyLeft:
		t.moveCursor(0, -1)
	case tcell.KeyRight:
		t.moveCursor(0, 1)
	case tcell.KeyEnter:
		t.open(ctx)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			t.running = false
		case 'k':
			t.moveCursor(-1, 0)
		case 'j':
			t.moveCursor(1, 0)
		case 'h':
			t.moveCursor(0, -1)
		case 'l':
			t.moveCursor(0, 1)
		case ' ':
			t.open(ctx)
		case 'f', 'F':
			t.flag()
		case '?':
			t.hint(ctx)
		case 'c', 'C':
			t.showMines = !t.showMines
		case 'n', 'N':
			if err := t.newRound(ctx); err != nil {
				t.message = err.Error()
			}
		}
	}
}

func (t *TUI) moveCursor(dr, dc int) {
	row, col := t.cursorRow+dr, t.cursorCol+dc
	if t.board.InBounds(row, col) {
		t.cursorRow, t.cursorCol = row, col
	}
}

func (t *TUI) open(ctx context.Context) {
	status, err := t.board.Open(ctx, t.cursorRow, t.cursorCol)
	if err != nil {
		t.message = t.errorMessage(err)
		return
	}
	t.afterMove(ctx, status)
}

func (t *TUI) flag() {
	if err := t.board.ToggleFlag(t.cursorRow, t.cursorCol); err != nil {
		t.message = t.errorMessage(err)
		return
	}
	t.message = ""
}

func (t *TUI) hint(ctx context.Context) {
	row, col, err := t.board.Hint(ctx)
	if err != nil {
		t.message = t.errorMessage(err)
		return
	}
	t.cursorRow, t.cursorCol = row, col
	t.afterMove(ctx, t.board.Status())
}

func (t *TUI) afterMove(ctx context.Context, status board.Status) {
	if t.timer == nil {
		return
	}
	elapsed := t.timer.String()
	t.finalTime = elapsed
	switch status {
	case board.StatusLost:
		t.showMines = true
		t.message = "You lose! time: " + elapsed + "  (n: new game)"
		t.endRound(ctx, player.OutcomeLost)
	case board.StatusWon:
		t.showMines = true
		t.message = "You win! time: " + elapsed + "  (n: new game)"
		t.endRound(ctx, player.OutcomeWon)
	default:
		t.message = ""
	}
}

func (t *TUI) errorMessage(err error) string {
	switch {
	case errors.Is(err, board.ErrFlagged):
		return "That cell is flagged!"
	case errors.Is(err, board.ErrAlreadyRevealed):
		return "That cell is already open!"
	case errors.Is(err, board.ErrNoFlagsLeft):
		return "Flag limit reached!"
	case errors.Is(err, board.ErrNotFlaggable):
		return "Only hidden cells can be flagged."
	case errors.Is(err, board.ErrNoHint):
		return "No hint available!"
	case errors.Is(err, board.ErrGameOver):
		return "Game over. Press n for a new game."
	default:
		return err.Error()
	}
}

func (t *TUI) render() {
	elapsed := t.finalTime
	if t.timer != nil {
		elapsed = t.timer.String()
	}
	t.renderer.Render(ui.View{
		Board:     t.board,
		CursorRow: t.cursorRow,
		CursorCol: t.cursorCol,
		ShowMines: t.showMines,
		Title:     "MineSweeper - " + t.name,
		Status: []string{
			fmt.Sprintf("Flags left: %d   Elapsed time: %s", t.board.RemainingFlags(), elapsed),
			t.message,
			tuiHelp,
		},
	})
}
