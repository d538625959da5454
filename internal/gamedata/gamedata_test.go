package gamedata

import (
	"testing"
	"testing/fstest"

	"github.com/gdamore/tcell/v2"
)

func TestLoadCommandRegistry(t *testing.T) {
	registry, err := LoadCommandRegistry()
	if err != nil {
		t.Fatalf("Failed to load commands: %v", err)
	}

	expected := []string{"/help", "/quit", "/open", "/flag", "/hint", "/cheat"}
	all := registry.All()
	if len(all) != len(expected) {
		t.Fatalf("Expected %d commands, got %d", len(expected), len(all))
	}
	for i, name := range expected {
		if all[i].Name != name {
			t.Errorf("Command %d = %q, want %q", i, all[i].Name, name)
		}
	}

	open := registry.Lookup("/open")
	if open == nil {
		t.Fatal("/open not found")
	}
	if open.Args != 2 {
		t.Errorf("/open args = %d, want 2", open.Args)
	}
	if got, want := open.HelpLine(), "/open <row> <column> - Opens a cell at the specified coordinates."; got != want {
		t.Errorf("HelpLine() = %q, want %q", got, want)
	}

	if registry.Lookup("/win") != nil {
		t.Error("/win should not be a registered command")
	}
}

func TestNewCommandRegistryValidation(t *testing.T) {
	if _, err := NewCommandRegistry([]CommandDef{{Name: "open"}}); err == nil {
		t.Error("command without slash should be rejected")
	}
	if _, err := NewCommandRegistry([]CommandDef{{Name: "/a"}, {Name: "/a"}}); err == nil {
		t.Error("duplicate command should be rejected")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"good.json": {Data: []byte(`{"commands":[{"name":"/x","usage":"/x","args":1}]}`)},
		"bad.json":  {Data: []byte(`{"commands":`)},
	}

	file, err := LoadFS[CommandsFile](fsys, "good.json")
	if err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}
	if len(file.Commands) != 1 || file.Commands[0].Args != 1 {
		t.Errorf("LoadFS() = %+v", file)
	}

	if _, err := LoadFS[CommandsFile](fsys, "bad.json"); err == nil {
		t.Error("LoadFS() should fail on malformed JSON")
	}
	if _, err := LoadFS[CommandsFile](fsys, "missing.json"); err == nil {
		t.Error("LoadFS() should fail on a missing file")
	}
}

func TestLoadPalette(t *testing.T) {
	palette, err := LoadPalette()
	if err != nil {
		t.Fatalf("Failed to load palette: %v", err)
	}

	kinds := []string{GlyphHidden, GlyphFlag, GlyphEmpty, GlyphMine, "1", "2", "3", "4", "5", "6", "7", "8"}
	for _, kind := range kinds {
		if _, ok := palette.colors[kind]; !ok {
			t.Errorf("palette missing glyph %q", kind)
		}
	}

	if got := palette.Color(GlyphMine); got != tcell.NewHexColor(0xFF0000) {
		t.Errorf("Color(mine) = %v, want #FF0000", got)
	}
	if got := palette.Color("nope"); got != tcell.ColorWhite {
		t.Errorf("Color(unknown) = %v, want white", got)
	}
}

func TestNewPaletteRejectsBadColor(t *testing.T) {
	if _, err := NewPalette([]GlyphDef{{Kind: "mine", Color: "#FF00"}}); err == nil {
		t.Error("NewPalette() should reject a short colour")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00ff00", true},
		{"#000000", true},
		{"invalid", false},
		{"#GG0000", false},
		{"#FFF", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}
