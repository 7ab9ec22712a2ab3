package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	clipboard := "wl-copy --trim-newline"

	return Config{
		DefaultSet: "",
		Clipboard:  CommandConfig{Raw: clipboard, Argv: mustParseArgv(clipboard)},
		Output:     OutputConfig{TrailingNewline: true},
		Sets:       nil,
	}
}
