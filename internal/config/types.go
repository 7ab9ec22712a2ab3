// Package config resolves, parses, validates, and defaults cmdgram configuration.
package config

import (
	"github.com/rbright/cmdgram/internal/commandset"
	"github.com/rbright/cmdgram/internal/grammar"
)

// Config is the fully materialized runtime configuration used by cmdgram.
type Config struct {
	DefaultSet string
	Clipboard  CommandConfig
	Output     OutputConfig
	Sets       []SetConfig
}

// OutputConfig controls how compiled grammars are emitted.
type OutputConfig struct {
	TrailingNewline bool
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// SetConfig is one user-defined command set.
type SetConfig struct {
	Name     string
	Commands []string
	Labels   grammar.LabelMap
	Map      map[string]string
}

// CommandSet adapts the configured set to the commandset capability.
func (s SetConfig) CommandSet() commandset.Static {
	return commandset.Static{
		SetName:     s.Name,
		CommandList: s.Commands,
		LabelDefs:   s.Labels,
		Mapping:     s.Map,
	}
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}

// Format names a supported config file syntax.
type Format string

const (
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// fileConfig is the format-neutral payload produced by each parser.
type fileConfig struct {
	DefaultSet      *string
	ClipboardCmd    *string
	TrailingNewline *bool
	Sets            []fileSet
}

type fileSet struct {
	Name     string
	Commands []string
	Labels   []grammar.Label
	Map      map[string]string
}
