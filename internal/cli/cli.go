// Package cli parses cmdgram command-line arguments.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandCompile Command = "compile"
	CommandCheck   Command = "check"
	CommandMatch   Command = "match"
	CommandResolve Command = "resolve"
	CommandSets    Command = "sets"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandCompile: {},
	CommandCheck:   {},
	CommandMatch:   {},
	CommandResolve: {},
	CommandSets:    {},
	CommandVersion: {},
	CommandHelp:    {},
}

// takesPhrase marks commands whose trailing arguments form one phrase.
var takesPhrase = map[Command]bool{
	CommandMatch:   true,
	CommandResolve: true,
}

type Parsed struct {
	Command    Command
	ConfigPath string
	SetName    string
	OutputPath string
	Copy       bool
	Phrase     string
	ShowHelp   bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--config", "--set", "--output":
			i++
			if i >= len(args) || strings.TrimSpace(args[i]) == "" {
				return Parsed{}, fmt.Errorf("%s requires a value", arg)
			}
			switch arg {
			case "--config":
				parsed.ConfigPath = args[i]
			case "--set":
				parsed.SetName = args[i]
			default:
				parsed.OutputPath = args[i]
			}
		case "--copy":
			parsed.Copy = true
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
			rest := args[i+1:]
			if takesPhrase[cmd] {
				parsed.Phrase = strings.TrimSpace(strings.Join(rest, " "))
				if parsed.Phrase == "" {
					return Parsed{}, fmt.Errorf("%s requires a phrase", arg)
				}
				return finish(parsed)
			}
			if len(rest) > 0 {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}
			return finish(parsed)
		}
	}

	return finish(parsed)
}

// finish rejects flag combinations that only make sense for compile.
func finish(parsed Parsed) (Parsed, error) {
	if parsed.ShowHelp || parsed.Command == CommandVersion {
		return parsed, nil
	}
	if parsed.OutputPath != "" && parsed.Command != CommandCompile {
		return Parsed{}, errors.New("--output is only valid with compile")
	}
	if parsed.Copy && parsed.Command != CommandCompile && parsed.Command != CommandCheck {
		return Parsed{}, errors.New("--copy is only valid with compile or check")
	}
	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [--set NAME] [--output PATH] [--copy] <command> [phrase...]

Commands:
  compile   Print the compiled grammar for the selected set
  check     Run authoring checks for the selected set
  match     Report whether a phrase is accepted by the selected set
  resolve   Map a recognized phrase onto its canonical output
  sets      List available command sets
  version   Print version information
  help      Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/cmdgram/config.jsonc)
  --set NAME      Command set to use (default: config default_set, else demo)
  --output PATH   Write the compiled grammar to PATH instead of stdout
  --copy          Also pipe the compiled grammar into clipboard_cmd
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
