package grammar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rbright/cmdgram/internal/phrase"
)

var (
	numberPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?`)
	wordPattern   = regexp.MustCompile(`^[A-Za-z][A-Za-z'-]*`)
)

var reservedFragments = map[string]string{
	LabelInteger: ` [+-]?[0-9]+`,
	LabelReal:    ` [+-]?[0-9]+(?:\.[0-9]+)?`,
	LabelDigit:   ` [0-9]`,
}

// Matcher tests text phrases against a command list with labels expanded.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	pattern *regexp.Regexp
	entries []matcherEntry
}

type matcherEntry struct {
	index   int
	pattern *regexp.Regexp
}

// NewMatcher expands every label and command into an anchored,
// case-insensitive expression. Unlike Compile it parses each command, so it
// reports syntax errors and label cycles.
func NewMatcher(commands []string, labels LabelMap) (*Matcher, error) {
	b := &expander{labels: labels, fragments: make(map[string]string)}

	for _, entry := range labels.entries {
		if err := validateDefinition(entry); err != nil {
			return nil, err
		}
		if _, err := b.label(entry.Name); err != nil {
			return nil, err
		}
	}

	m := &Matcher{}
	alternatives := make([]string, 0, len(commands))
	for i, command := range commands {
		if strings.TrimSpace(command) == "" {
			continue
		}
		fragment, err := b.command(command, "")
		if err != nil {
			return nil, err
		}
		if fragment == "" {
			continue
		}
		re, err := anchored(fragment)
		if err != nil {
			return nil, fmt.Errorf("compile matcher for %q: %w", command, err)
		}
		m.entries = append(m.entries, matcherEntry{index: i, pattern: re})
		alternatives = append(alternatives, fragment)
	}

	re, err := anchored(strings.Join(alternatives, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile matcher: %w", err)
	}
	m.pattern = re
	return m, nil
}

// Match reports whether text is an utterance accepted by the command list.
func (m *Matcher) Match(text string) bool {
	if len(m.entries) == 0 {
		return false
	}
	return m.pattern.MatchString(subject(text))
}

// MatchCommand returns the index of the first command entry accepting text.
func (m *Matcher) MatchCommand(text string) (int, bool) {
	s := subject(text)
	for _, entry := range m.entries {
		if entry.pattern.MatchString(s) {
			return entry.index, true
		}
	}
	return -1, false
}

// Pattern returns the expression source used for whole-list matching.
func (m *Matcher) Pattern() string {
	return m.pattern.String()
}

// subject renders text with one leading space per word, the form every
// fragment is built against.
func subject(text string) string {
	normalized := phrase.Normalize(text)
	if normalized == "" {
		return ""
	}
	return " " + normalized
}

func anchored(fragment string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)^(?:` + fragment + `)$`)
}

type expander struct {
	labels    LabelMap
	fragments map[string]string
	visiting  []string
}

func (b *expander) label(name string) (string, error) {
	if fragment, ok := reservedFragments[name]; ok {
		return fragment, nil
	}
	if fragment, ok := b.fragments[name]; ok {
		return fragment, nil
	}

	for i, visiting := range b.visiting {
		if visiting == name {
			cycle := append(append([]string(nil), b.visiting[i:]...), name)
			return "", &LabelCycleError{Cycle: cycle}
		}
	}

	subs, _ := b.labels.Get(name)
	b.visiting = append(b.visiting, name)
	alternatives := make([]string, 0, len(subs))
	for _, sub := range subs {
		if strings.TrimSpace(sub) == "" {
			continue
		}
		fragment, err := b.command(sub, name)
		if err != nil {
			return "", err
		}
		if fragment != "" {
			alternatives = append(alternatives, fragment)
		}
	}
	b.visiting = b.visiting[:len(b.visiting)-1]
	if len(alternatives) == 0 {
		return "", &MalformedLabelDefinitionError{Label: name, Reason: "no substitutions"}
	}

	fragment := "(?:" + strings.Join(alternatives, "|") + ")"
	b.fragments[name] = fragment
	return fragment, nil
}

func (b *expander) command(command string, definition string) (string, error) {
	tokens, err := tokenize(command)
	if err != nil {
		return "", err
	}

	p := &parser{
		expander:   b,
		command:    command,
		definition: definition,
		tokens:     tokens,
	}
	fragment, err := p.expr()
	if err != nil {
		return "", err
	}
	if tok, ok := p.peek(); ok {
		return "", &SyntaxError{Command: command, Offset: tok.offset, Message: "unbalanced ')'"}
	}
	return fragment, nil
}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenNumber
	tokenLabel
	tokenOpen
	tokenClose
	tokenAlt
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

func tokenize(command string) ([]token, error) {
	tokens := make([]token, 0, 8)
	for i := 0; i < len(command); {
		ch := command[i]
		rest := command[i:]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokenOpen, text: "(", offset: i})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokenClose, text: ")", offset: i})
			i++
		case ch == '|' || ch == '\n':
			tokens = append(tokens, token{kind: tokenAlt, text: "|", offset: i})
			i++
		case ch == '$':
			match := labelRefPattern.FindString(rest)
			if match == "" || !strings.HasPrefix(rest, match) {
				return nil, &SyntaxError{Command: command, Offset: i, Message: "invalid label reference"}
			}
			tokens = append(tokens, token{kind: tokenLabel, text: match[1:], offset: i})
			i += len(match)
		case ch == '+' || ch == '-' || isDigit(ch):
			match := numberPattern.FindString(rest)
			if match == "" {
				return nil, &SyntaxError{Command: command, Offset: i, Message: "sign must be followed by a number"}
			}
			tokens = append(tokens, token{kind: tokenNumber, text: match, offset: i})
			i += len(match)
		case ch == '.':
			i++
		case isLetter(ch):
			match := wordPattern.FindString(rest)
			tokens = append(tokens, token{kind: tokenWord, text: match, offset: i})
			i += len(match)
		default:
			return nil, &SyntaxError{Command: command, Offset: i, Message: fmt.Sprintf("unexpected character %q", ch)}
		}
	}
	return tokens, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

type parser struct {
	expander   *expander
	command    string
	definition string
	tokens     []token
	pos        int
	depth      int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

// expr parses sequence ('|' sequence)*. Outside any group an empty sequence
// is dropped, as Compile drops blank pipe parts; inside a group it stays and
// makes the group optional.
func (p *parser) expr() (string, error) {
	alternatives := make([]string, 0, 1)
	for {
		seq, err := p.sequence()
		if err != nil {
			return "", err
		}
		if seq != "" || p.depth > 0 {
			alternatives = append(alternatives, seq)
		}

		tok, ok := p.peek()
		if !ok || tok.kind != tokenAlt {
			break
		}
		p.pos++
	}

	switch len(alternatives) {
	case 0:
		return "", nil
	case 1:
		return alternatives[0], nil
	}
	return "(?:" + strings.Join(alternatives, "|") + ")", nil
}

func (p *parser) sequence() (string, error) {
	var b strings.Builder
	for {
		tok, ok := p.peek()
		if !ok || tok.kind == tokenAlt || tok.kind == tokenClose {
			return b.String(), nil
		}
		p.pos++

		switch tok.kind {
		case tokenWord, tokenNumber:
			b.WriteString(" " + regexp.QuoteMeta(tok.text))
		case tokenLabel:
			fragment, err := p.reference(tok)
			if err != nil {
				return "", err
			}
			b.WriteString(fragment)
		case tokenOpen:
			p.depth++
			inner, err := p.expr()
			p.depth--
			if err != nil {
				return "", err
			}
			closing, ok := p.peek()
			if !ok || closing.kind != tokenClose {
				return "", &SyntaxError{Command: p.command, Offset: tok.offset, Message: "missing ')'"}
			}
			p.pos++
			b.WriteString("(?:" + inner + ")")
		}
	}
}

func (p *parser) reference(tok token) (string, error) {
	if !IsReserved(tok.text) && !p.expander.labels.Has(tok.text) {
		return "", &UndefinedLabelError{
			Label:      tok.text,
			Command:    p.command,
			Definition: p.definition,
			Suggestion: suggestLabel(tok.text, p.expander.labels),
		}
	}
	return p.expander.label(tok.text)
}
