package gamedata

import (
	"errors"
	"fmt"
	"strings"
)

// CommandDef describes one in-game command loaded from JSON.
type CommandDef struct {
	Name        string `json:"name"`        // Including the leading slash (e.g., "/open")
	Usage       string `json:"usage"`       // Shown in help and on missing arguments
	Description string `json:"description"` // One-line help text
	Args        int    `json:"args"`        // Number of required arguments
}

// HelpLine returns the "usage - description" line shown by /help.
func (c *CommandDef) HelpLine() string {
	return c.Usage + " - " + c.Description
}

// CommandsFile represents the structure of commands.json.
type CommandsFile struct {
	Commands []CommandDef `json:"commands"`
}

// CommandRegistry holds loaded command definitions in file order.
type CommandRegistry struct {
	byName map[string]*CommandDef
	all    []CommandDef
}

// NewCommandRegistry creates a registry from loaded command definitions.
func NewCommandRegistry(commands []CommandDef) (*CommandRegistry, error) {
	registry := &CommandRegistry{
		byName: make(map[string]*CommandDef, len(commands)),
		all:    commands,
	}
	for i := range commands {
		name := commands[i].Name
		if !strings.HasPrefix(name, "/") {
			return nil, fmt.Errorf("command %q must start with /", name)
		}
		if _, dup := registry.byName[name]; dup {
			return nil, fmt.Errorf("duplicate command %q", name)
		}
		registry.byName[name] = &commands[i]
	}
	return registry, nil
}

// LoadCommandRegistry loads the registry from the embedded commands.json.
func LoadCommandRegistry() (*CommandRegistry, error) {
	file, err := Load[CommandsFile]("commands.json")
	if err != nil {
		return nil, err
	}
	if len(file.Commands) == 0 {
		return nil, errors.New("no commands loaded from commands.json")
	}
	return NewCommandRegistry(file.Commands)
}

// Lookup returns the command with the given name, or nil if unknown.
func (r *CommandRegistry) Lookup(name string) *CommandDef {
	return r.byName[name]
}

// All returns every command in file order.
func (r *CommandRegistry) All() []CommandDef {
	return r.all
}
