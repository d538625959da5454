// Package gamedata provides the embedded command table and glyph palette.
package gamedata

import "embed"

// dataFS holds commands.json and palette.json, compiled into the binary.
//
//go:embed *.json
var dataFS embed.FS
