package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/gamedata"
	"github.com/samdwyer/minesweeper/internal/player"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

// maxLineLength caps one line of input. Longer lines are cut to this length
// and the rest is dropped, so they read as invalid input.
const maxLineLength = 1024

const (
	optionNewGame = 1
	optionWinners = 2
	optionExit    = 3
)

// Game holds everything that outlives a single board: the menu, the RNG,
// the winners list and the count of players created so far.
type Game struct {
	cfg      Config
	in       *bufio.Scanner
	out      io.Writer
	log      logrus.FieldLogger
	rng      *rand.Rand
	commands *gamedata.CommandRegistry
	winners  *Winners
	players  int
	state    State
}

// New creates a game reading lines from in and writing to out.
func New(cfg Config, in io.Reader, out io.Writer, log logrus.FieldLogger) (*Game, error) {
	commands, err := gamedata.LoadCommandRegistry()
	if err != nil {
		return nil, fmt.Errorf("load commands: %w", err)
	}

	seed := cfg.seed()
	log.WithField("seed", seed).Debug("random source seeded")

	scanner := bufio.NewScanner(in)
	scanner.Split(scanLinesTruncated(maxLineLength))

	return &Game{
		cfg:      cfg,
		in:       scanner,
		out:      out,
		log:      log,
		rng:      rand.New(rand.NewSource(seed)),
		commands: commands,
		winners:  NewWinners(),
		state:    StateMenu,
	}, nil
}

// scanLinesTruncated splits like bufio.ScanLines but never fails on a long
// line: the first limit bytes become the token and the rest of the line is
// discarded.
func scanLinesTruncated(limit int) bufio.SplitFunc {
	discarding := false
	return func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := bufio.ScanLines(data, atEOF)
		if discarding {
			if advance == 0 && token == nil {
				// Still inside the long line
				return len(data), nil, nil
			}
			discarding = false
			return advance, nil, err
		}
		if advance == 0 && token == nil && len(data) >= limit {
			discarding = true
			return len(data), data[:limit], nil
		}
		if len(token) > limit {
			token = token[:limit]
		}
		return advance, token, err
	}
}

// Winners returns the in-memory list of recent winners.
func (g *Game) Winners() *Winners {
	return g.winners
}

// State returns where the menu loop currently is.
func (g *Game) State() State {
	return g.state
}

// Run shows the menu until the player exits or input ends.
func (g *Game) Run(ctx context.Context) error {
	for g.state != StateExiting {
		if err := ctx.Err(); err != nil {
			return err
		}

		g.printMenu()
		if !g.in.Scan() {
			g.state = StateExiting
			break
		}

		choice, err := strconv.Atoi(strings.TrimSpace(g.in.Text()))
		if err != nil {
			fmt.Fprint(g.out, "Invalid option, please choose a valid number.\n\n")
			continue
		}

		switch choice {
		case optionNewGame:
			g.newGame(ctx)
		case optionWinners:
			g.printWinners()
		case optionExit:
			fmt.Fprintln(g.out, "Exiting...")
			g.state = StateExiting
		default:
			fmt.Fprint(g.out, "Invalid option, please choose a number between 1 and 3.\n\n")
		}
	}

	return g.in.Err()
}

func (g *Game) printMenu() {
	fmt.Fprintln(g.out, "MineSweeper Game")
	fmt.Fprintln(g.out, "----------------")
	fmt.Fprintln(g.out, "1. New Game")
	fmt.Fprintln(g.out, "2. Last 10 Wins")
	fmt.Fprintln(g.out, "3. Exit Game")
	fmt.Fprint(g.out, player.Prompt)
}

func (g *Game) printWinners() {
	fmt.Fprintln(g.out, "Last 10 winners:")
	if g.winners.Len() == 0 {
		fmt.Fprintln(g.out, "No winners yet.")
	}
	for _, w := range g.winners.Recent() {
		fmt.Fprintln(g.out, w.String())
	}
	fmt.Fprintln(g.out)
}

// askName prompts for a username. It reports false when input has ended.
func (g *Game) askName() (string, bool) {
	fmt.Fprint(g.out, "Username> ")
	if !g.in.Scan() {
		return "", false
	}
	return g.nameOrDefault(strings.TrimSpace(g.in.Text())), true
}

// nameOrDefault counts a new player and fills in a name when none was given.
func (g *Game) nameOrDefault(name string) string {
	g.players++
	if name != "" {
		return name
	}
	if g.cfg.PlayerName != "" {
		return g.cfg.PlayerName
	}
	return "Anonymous " + strconv.Itoa(g.players)
}

// newBoard creates and mines a standard board.
func (g *Game) newBoard(ctx context.Context) (*board.Board, error) {
	b := board.NewStandard(g.rng)
	if err := b.Generate(ctx); err != nil {
		return nil, fmt.Errorf("generate board: %w", err)
	}
	return b, nil
}

// newGame runs one session from the name prompt to win, loss or quit.
func (g *Game) newGame(ctx context.Context) {
	name, ok := g.askName()
	if !ok {
		g.state = StateExiting
		return
	}

	sessionID := uuid.New()
	log := g.log.WithFields(logrus.Fields{
		"game_id": sessionID.String(),
		"player":  name,
	})

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.session")
	defer span.End()
	span.SetAttributes(
		attribute.String("game.id", sessionID.String()),
		attribute.String("player.name", name),
	)

	b, err := g.newBoard(ctx)
	if err != nil {
		log.WithError(err).Error("could not start game")
		fmt.Fprint(g.out, "Could not start a new game.\n\n")
		return
	}

	g.state = StatePlaying
	timer := player.NewTimer(g.cfg.tickInterval())
	timer.Start(ctx)

	log.Info("game started")
	if err := b.Render(g.out); err != nil {
		log.WithError(err).Debug("board render failed")
	}

	p := player.New(name, b, timer, g.commands, g.out, log)
	res := p.Play(ctx, g.in)

	g.endGame(ctx, name, res)
	if res.Outcome == player.OutcomeClosed {
		g.state = StateExiting
		return
	}
	g.state = StateMenu
}

// endGame records the result of a finished session.
func (g *Game) endGame(ctx context.Context, name string, res player.Result) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.end")
	span.SetAttributes(
		attribute.String("outcome", res.Outcome.String()),
		attribute.Int64("elapsed_seconds", res.Seconds),
		attribute.Int("flagged_mines", res.FlaggedMines),
	)
	span.End()

	if res.Outcome == player.OutcomeWon {
		g.winners.Add(Winner{Name: name, Seconds: res.Seconds})
	}
}
