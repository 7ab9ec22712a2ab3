package config

import (
	"fmt"
	"strings"
	"unicode"
)

type argvState int

const (
	argvBetween argvState = iota
	argvBare
	argvSingle
	argvDouble
)

// argvLexer splits clipboard_cmd the way a POSIX shell splits a simple
// command: single quotes are literal, double quotes honor `\"` and `\\`, and
// an unquoted backslash escapes any rune.
type argvLexer struct {
	state   argvState
	word    strings.Builder
	started bool
	argv    []string
}

func (l *argvLexer) emit() {
	if !l.started {
		return
	}
	l.argv = append(l.argv, l.word.String())
	l.word.Reset()
	l.started = false
}

func (l *argvLexer) write(r rune) {
	l.word.WriteRune(r)
	l.started = true
}

// parseArgv returns nil for an empty or `#`-disabled command.
func parseArgv(input string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.HasPrefix(input, "#") {
		return nil, nil
	}

	l := &argvLexer{}
	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch l.state {
		case argvSingle:
			if r == '\'' {
				l.state = argvBare
				continue
			}
			l.write(r)
		case argvDouble:
			switch {
			case r == '"':
				l.state = argvBare
			case r == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\'):
				i++
				l.write(runes[i])
			default:
				l.write(r)
			}
		default:
			switch {
			case unicode.IsSpace(r):
				l.emit()
				l.state = argvBetween
			case r == '\\':
				if i+1 == len(runes) {
					return nil, fmt.Errorf("unterminated escape sequence in command: %q", input)
				}
				i++
				l.write(runes[i])
				l.state = argvBare
			case r == '\'':
				l.started = true
				l.state = argvSingle
			case r == '"':
				l.started = true
				l.state = argvDouble
			default:
				l.write(r)
				l.state = argvBare
			}
		}
	}

	if l.state == argvSingle || l.state == argvDouble {
		return nil, fmt.Errorf("unterminated quote in command: %q", input)
	}
	l.emit()
	return l.argv, nil
}

func mustParseArgv(input string) []string {
	argv, err := parseArgv(input)
	if err != nil {
		panic(err)
	}
	return argv
}
