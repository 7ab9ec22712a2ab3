package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// UndefinedLabelError reports a `$name` reference with no matching definition.
type UndefinedLabelError struct {
	Label      string
	Command    string
	Definition string
	Suggestion string
}

func (e *UndefinedLabelError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "label $%s is not defined", e.Label)
	if e.Definition != "" {
		fmt.Fprintf(&b, " (referenced by label $%s in %q)", e.Definition, e.Command)
	} else {
		fmt.Fprintf(&b, " (referenced by command %q)", e.Command)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "; did you mean $%s?", e.Suggestion)
	}
	return b.String()
}

// MalformedLabelDefinitionError reports a label entry that cannot be emitted.
type MalformedLabelDefinitionError struct {
	Label  string
	Reason string
}

func (e *MalformedLabelDefinitionError) Error() string {
	return fmt.Sprintf("label %q is not defined correctly: %s", e.Label, e.Reason)
}

// SyntaxError reports a command the phrase matcher cannot tokenize or parse.
type SyntaxError struct {
	Command string
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("command %q offset %d: %s", e.Command, e.Offset, e.Message)
}

// LabelCycleError reports labels that expand into themselves.
type LabelCycleError struct {
	Cycle []string
}

func (e *LabelCycleError) Error() string {
	parts := make([]string, 0, len(e.Cycle))
	for _, name := range e.Cycle {
		parts = append(parts, "$"+name)
	}
	return "label cycle: " + strings.Join(parts, " -> ")
}

// suggestLabel returns the closest defined label name, or "" when nothing is close.
func suggestLabel(name string, labels LabelMap) string {
	candidates := labels.Names()
	if len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		// the typo may be longer than the target, so try the other direction
		for _, candidate := range candidates {
			if fuzzy.MatchFold(candidate, name) {
				return candidate
			}
		}
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
