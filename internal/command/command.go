// Package command parses the slash commands typed during a game.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samdwyer/minesweeper/internal/gamedata"
)

var (
	ErrEmpty             = errors.New("empty command")
	ErrUnknown           = errors.New("unknown command")
	ErrMissingArgs       = errors.New("missing arguments")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// Command is a parsed input line.
type Command struct {
	Def  *gamedata.CommandDef
	Args []string
}

// Name returns the command name including its slash.
func (c Command) Name() string {
	return c.Def.Name
}

// Parser turns input lines into commands known to its registry.
type Parser struct {
	registry *gamedata.CommandRegistry
}

// NewParser creates a parser backed by the given registry.
func NewParser(registry *gamedata.CommandRegistry) *Parser {
	return &Parser{registry: registry}
}

// Parse splits a line on whitespace and resolves the command. Extra
// arguments beyond what the command needs are ignored.
func (p *Parser) Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}

	def := p.registry.Lookup(strings.ToLower(fields[0]))
	if def == nil {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknown, fields[0])
	}

	args := fields[1:]
	if len(args) < def.Args {
		return Command{Def: def, Args: args}, fmt.Errorf("%w: usage %s", ErrMissingArgs, def.Usage)
	}
	return Command{Def: def, Args: args}, nil
}

// CoordinateError reports a row or column that cannot be used.
type CoordinateError struct {
	Axis      string // "row" or "column"
	Max       int
	NotNumber bool
}

// Error returns the message shown to the player.
func (e *CoordinateError) Error() string {
	if e.NotNumber {
		return fmt.Sprintf("Invalid %s! Please enter a valid number.", e.Axis)
	}
	return fmt.Sprintf("Invalid %s! Please enter a number between 1 and %d.", e.Axis, e.Max)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidCoordinate).
func (e *CoordinateError) Unwrap() error {
	return ErrInvalidCoordinate
}

// Coordinates converts the first two 1-based arguments into zero-based
// row and column indexes on a rows x cols board.
func (c Command) Coordinates(rows, cols int) (int, int, error) {
	if len(c.Args) < 2 {
		return -1, -1, fmt.Errorf("%w: usage %s", ErrMissingArgs, c.Def.Usage)
	}
	row, err := parseAxis("row", c.Args[0], rows)
	if err != nil {
		return -1, -1, err
	}
	col, err := parseAxis("column", c.Args[1], cols)
	if err != nil {
		return -1, -1, err
	}
	return row, col, nil
}

func parseAxis(axis, input string, limit int) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return -1, &CoordinateError{Axis: axis, Max: limit, NotNumber: true}
	}
	if n < 1 || n > limit {
		return -1, &CoordinateError{Axis: axis, Max: limit}
	}
	return n - 1, nil
}
