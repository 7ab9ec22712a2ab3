package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rbright/cmdgram/internal/grammar"
)

type jsoncConfig struct {
	DefaultSet   *string      `json:"default_set"`
	ClipboardCmd *string      `json:"clipboard_cmd"`
	Output       *jsoncOutput `json:"output"`
	Sets         *jsoncSets   `json:"sets"`
}

type jsoncOutput struct {
	TrailingNewline *bool `json:"trailing_newline"`
}

type jsoncSet struct {
	Commands jsoncCommandList  `json:"commands"`
	Labels   jsoncLabels       `json:"labels"`
	Map      map[string]string `json:"map"`
}

// jsoncSets keeps set definitions in document order.
type jsoncSets []fileSet

func (s *jsoncSets) UnmarshalJSON(data []byte) error {
	sets := make([]fileSet, 0)
	err := decodeOrderedObject(data, func(name string, raw json.RawMessage) error {
		var payload jsoncSet
		if err := decodeStrict(raw, &payload); err != nil {
			return fmt.Errorf("sets.%s: %w", name, err)
		}
		sets = append(sets, fileSet{
			Name:     name,
			Commands: payload.Commands,
			Labels:   payload.Labels,
			Map:      payload.Map,
		})
		return nil
	})
	if err != nil {
		return err
	}
	*s = sets
	return nil
}

// jsoncLabels keeps label definitions in document order.
type jsoncLabels []grammar.Label

func (l *jsoncLabels) UnmarshalJSON(data []byte) error {
	labels := make([]grammar.Label, 0)
	err := decodeOrderedObject(data, func(name string, raw json.RawMessage) error {
		var subs jsoncCommandList
		if err := json.Unmarshal(raw, &subs); err != nil {
			return fmt.Errorf("labels.%s: %w", name, err)
		}
		labels = append(labels, grammar.Label{Name: name, Substitutions: subs})
		return nil
	})
	if err != nil {
		return err
	}
	*l = labels
	return nil
}

// jsoncCommandList accepts either a string array or a single command string.
type jsoncCommandList []string

func (l *jsoncCommandList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = []string{single}
		return nil
	}

	return fmt.Errorf("expected string array or command string")
}

func parseJSONC(content string) (fileConfig, error) {
	normalized, err := normalizeJSONC(content)
	if err != nil {
		return fileConfig{}, err
	}

	decoder := json.NewDecoder(strings.NewReader(normalized))
	decoder.DisallowUnknownFields()

	var payload jsoncConfig
	if err := decoder.Decode(&payload); err != nil {
		return fileConfig{}, wrapJSONDecodeError(normalized, err)
	}
	if err := ensureSingleJSONValue(decoder); err != nil {
		return fileConfig{}, wrapJSONDecodeError(normalized, err)
	}

	out := fileConfig{
		DefaultSet:   payload.DefaultSet,
		ClipboardCmd: payload.ClipboardCmd,
	}
	if payload.Output != nil {
		out.TrailingNewline = payload.Output.TrailingNewline
	}
	if payload.Sets != nil {
		out.Sets = append([]fileSet{}, (*payload.Sets)...)
	}
	return out, nil
}

// decodeOrderedObject walks a JSON object and calls visit for each member in order.
func decodeOrderedObject(data []byte, visit func(key string, raw json.RawMessage) error) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	tok, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object")
	}

	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key")
		}

		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return err
		}
		if err := visit(key, raw); err != nil {
			return err
		}
	}

	_, err = decoder.Token()
	return err
}

func decodeStrict(raw json.RawMessage, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// normalizeJSONC blanks out comments and drops trailing commas so the result
// is plain JSON with byte offsets preserved for comment text.
func normalizeJSONC(content string) (string, error) {
	var out strings.Builder
	out.Grow(len(content))

	const (
		stateCode = iota
		stateString
		stateEscape
		stateLineComment
		stateBlockComment
	)
	state := stateCode

	for i := 0; i < len(content); i++ {
		ch := content[i]

		switch state {
		case stateString:
			out.WriteByte(ch)
			switch ch {
			case '\\':
				state = stateEscape
			case '"':
				state = stateCode
			}
		case stateEscape:
			out.WriteByte(ch)
			state = stateString
		case stateLineComment:
			if ch == '\n' || ch == '\r' {
				out.WriteByte(ch)
				state = stateCode
				continue
			}
			out.WriteByte(' ')
		case stateBlockComment:
			if ch == '*' && i+1 < len(content) && content[i+1] == '/' {
				out.WriteString("  ")
				i++
				state = stateCode
				continue
			}
			if ch == '\n' || ch == '\r' || ch == '\t' {
				out.WriteByte(ch)
			} else {
				out.WriteByte(' ')
			}
		default:
			switch {
			case ch == '"':
				out.WriteByte(ch)
				state = stateString
			case ch == '/' && i+1 < len(content) && content[i+1] == '/':
				out.WriteString("  ")
				i++
				state = stateLineComment
			case ch == '/' && i+1 < len(content) && content[i+1] == '*':
				out.WriteString("  ")
				i++
				state = stateBlockComment
			case ch == ',' && closesAfterComma(content, i+1):
				out.WriteByte(' ')
			default:
				out.WriteByte(ch)
			}
		}
	}

	if state == stateBlockComment {
		return "", fmt.Errorf("unterminated block comment in JSONC")
	}
	return out.String(), nil
}

// closesAfterComma reports whether the next significant byte from start closes
// an object or array, skipping whitespace and comments.
func closesAfterComma(content string, start int) bool {
	for j := start; j < len(content); j++ {
		switch ch := content[j]; {
		case isJSONWhitespace(ch):
			continue
		case ch == '/' && j+1 < len(content) && content[j+1] == '/':
			next := strings.IndexAny(content[j:], "\r\n")
			if next < 0 {
				return false
			}
			j += next
		case ch == '/' && j+1 < len(content) && content[j+1] == '*':
			end := strings.Index(content[j+2:], "*/")
			if end < 0 {
				return false
			}
			j += end + 3
		default:
			return ch == '}' || ch == ']'
		}
	}
	return false
}

func isJSONWhitespace(ch byte) bool {
	switch ch {
	case ' ', '\n', '\r', '\t':
		return true
	default:
		return false
	}
}

func ensureSingleJSONValue(decoder *json.Decoder) error {
	var extra struct{}
	err := decoder.Decode(&extra)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		return fmt.Errorf("multiple JSON values are not allowed")
	}
	return err
}

func wrapJSONDecodeError(content string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(content, syntaxErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(content, typeErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	return err
}

func offsetToLineCol(content string, offset int64) (int, int) {
	if offset <= 0 {
		return 1, 1
	}

	limit := int(offset)
	if limit > len(content) {
		limit = len(content)
	}

	line := 1
	col := 1
	for i := 0; i < limit-1; i++ {
		if content[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
