// Package player runs one game for one player: it owns the timer and turns
// typed commands into board operations.
package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/command"
	"github.com/samdwyer/minesweeper/internal/gamedata"
)

// Prompt is printed before every command is read.
const Prompt = "Option> "

const invalidCommand = "Invalid command! To see the list of available commands, type /help."

// Outcome describes how a game ended.
type Outcome int

const (
	// OutcomeNone means the game is still in progress.
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
	// OutcomeQuit is the player returning to the menu with /quit.
	OutcomeQuit
	// OutcomeClosed means input ran out or the context was cancelled.
	OutcomeClosed
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeQuit:
		return "quit"
	case OutcomeClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Result is what Play reports back to the menu.
type Result struct {
	Outcome      Outcome
	Seconds      int64
	FlaggedMines int // Flags sitting on real mines when the game ended
}

// Player ties a name and a timer to one board.
type Player struct {
	Name string

	board    *board.Board
	timer    *Timer
	commands *gamedata.CommandRegistry
	parser   *command.Parser
	out      io.Writer
	log      logrus.FieldLogger
}

// New creates a player for the given board. Output goes to out.
func New(name string, b *board.Board, timer *Timer, commands *gamedata.CommandRegistry, out io.Writer, log logrus.FieldLogger) *Player {
	return &Player{
		Name:     name,
		board:    b,
		timer:    timer,
		commands: commands,
		parser:   command.NewParser(commands),
		out:      out,
		log:      log.WithField("player", name),
	}
}

// Board returns the board this player is playing on.
func (p *Player) Board() *board.Board {
	return p.board
}

// Elapsed returns the formatted time spent so far.
func (p *Player) Elapsed() string {
	return p.timer.String()
}

// Play reads commands until the game is won or lost, the player quits, or
// input is exhausted. The timer is stopped before returning.
func (p *Player) Play(ctx context.Context, in *bufio.Scanner) Result {
	defer p.timer.Stop()

	p.printf("Welcome, %s! To see the list of available commands, type /help.\n", p.Name)
	for {
		if ctx.Err() != nil {
			return p.finish(OutcomeClosed)
		}
		p.printf("%s", Prompt)
		if !in.Scan() {
			p.printf("\n")
			return p.finish(OutcomeClosed)
		}
		if outcome := p.Execute(ctx, in.Text()); outcome != OutcomeNone {
			return p.finish(outcome)
		}
	}
}

func (p *Player) finish(outcome Outcome) Result {
	p.timer.Stop()
	res := Result{
		Outcome:      outcome,
		Seconds:      p.timer.Seconds(),
		FlaggedMines: p.board.FlaggedMines(),
	}
	p.log.WithFields(logrus.Fields{
		"outcome":       outcome.String(),
		"seconds":       res.Seconds,
		"flagged_mines": res.FlaggedMines,
	}).Info("game finished")
	return res
}

// Execute runs a single command line and reports whether it ended the game.
func (p *Player) Execute(ctx context.Context, line string) Outcome {
	cmd, err := p.parser.Parse(line)
	switch {
	case errors.Is(err, command.ErrMissingArgs):
		p.printf("Usage: %s\n", cmd.Def.Usage)
		return OutcomeNone
	case err != nil:
		p.log.WithError(err).Debug("rejected command")
		p.printf("%s\n", invalidCommand)
		return OutcomeNone
	}

	switch cmd.Name() {
	case "/help":
		p.help()
	case "/quit":
		p.printf("Exiting to the menu...\n")
		return OutcomeQuit
	case "/open":
		return p.open(ctx, cmd)
	case "/flag":
		p.flag(cmd)
	case "/hint":
		return p.hint(ctx)
	case "/cheat":
		p.log.Info("cheat view requested")
		p.show(p.board.RenderRevealed)
	default:
		// Registered in commands.json but not handled here
		p.printf("%s\n", invalidCommand)
	}
	return OutcomeNone
}

func (p *Player) help() {
	p.printf("Available commands:\n")
	for _, def := range p.commands.All() {
		p.printf("%s\n", def.HelpLine())
	}
}

func (p *Player) open(ctx context.Context, cmd command.Command) Outcome {
	row, col, err := cmd.Coordinates(p.board.Rows(), p.board.Cols())
	if err != nil {
		p.printf("%s\n", err)
		return OutcomeNone
	}

	status, err := p.board.Open(ctx, row, col)
	switch {
	case errors.Is(err, board.ErrFlagged):
		p.printf("That cell is flagged! Remove the flag before opening it.\n")
		return OutcomeNone
	case errors.Is(err, board.ErrAlreadyRevealed):
		p.printf("That cell is already open!\n")
		return OutcomeNone
	case err != nil:
		p.printf("%s\n", err)
		return OutcomeNone
	}

	p.log.WithFields(logrus.Fields{
		"row":            row + 1,
		"col":            col + 1,
		"remaining_safe": p.board.RemainingSafe(),
	}).Debug("cell opened")

	if status == board.StatusLost {
		return p.lose()
	}
	p.show(p.board.Render)
	p.printf("Elapsed time: %s\n", p.Elapsed())
	if status == board.StatusWon {
		return p.win()
	}
	return OutcomeNone
}

func (p *Player) flag(cmd command.Command) {
	row, col, err := cmd.Coordinates(p.board.Rows(), p.board.Cols())
	if err != nil {
		p.printf("%s\n", err)
		return
	}

	switch err := p.board.ToggleFlag(row, col); {
	case errors.Is(err, board.ErrNoFlagsLeft):
		p.printf("Flag limit reached!\n")
	case errors.Is(err, board.ErrNotFlaggable):
		p.printf("Invalid position! Only hidden cells can be flagged.\n")
	case err != nil:
		p.printf("%s\n", err)
	}
	p.show(p.board.Render)
	p.printf("Flags left: %d\n", p.board.RemainingFlags())
}

func (p *Player) hint(ctx context.Context) Outcome {
	row, col, err := p.board.Hint(ctx)
	if errors.Is(err, board.ErrNoHint) {
		p.printf("No hint available!\n")
		return OutcomeNone
	} else if err != nil {
		p.printf("%s\n", err)
		return OutcomeNone
	}

	p.log.WithFields(logrus.Fields{"row": row + 1, "col": col + 1}).Info("hint used")
	p.show(p.board.Render)
	if p.board.Status() == board.StatusWon {
		return p.win()
	}
	return OutcomeNone
}

func (p *Player) lose() Outcome {
	p.timer.Stop()
	p.show(p.board.RenderRevealed)
	p.printf("You lose! time: %s\nReturning to menu...\n\n", p.Elapsed())
	return OutcomeLost
}

func (p *Player) win() Outcome {
	p.timer.Stop()
	p.show(p.board.RenderRevealed)
	p.printf("You win! time: %s\nReturning to menu...\n\n", p.Elapsed())
	return OutcomeWon
}

// show writes the board with the given render method.
func (p *Player) show(render func(io.Writer) error) {
	if err := render(p.out); err != nil {
		p.log.WithError(err).Debug("board render failed")
	}
}

func (p *Player) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}
