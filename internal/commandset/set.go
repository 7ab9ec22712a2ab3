// Package commandset defines voice command sets, the built-in reference sets,
// and post-recognition output mapping.
package commandset

import (
	"sort"

	"github.com/rbright/cmdgram/internal/grammar"
	"github.com/rbright/cmdgram/internal/phrase"
)

// CommandSet is one grammar source: top-level commands, label definitions,
// and the optional mapping of recognized phrases onto canonical outputs.
type CommandSet interface {
	Name() string
	Commands() []string
	Labels() grammar.LabelMap
	OutputMapping() map[string]string
}

// Static is a CommandSet backed by in-memory data.
type Static struct {
	SetName     string
	CommandList []string
	LabelDefs   grammar.LabelMap
	Mapping     map[string]string
}

func (s Static) Name() string { return s.SetName }

func (s Static) Commands() []string { return append([]string(nil), s.CommandList...) }

func (s Static) Labels() grammar.LabelMap { return s.LabelDefs }

func (s Static) OutputMapping() map[string]string {
	if len(s.Mapping) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.Mapping))
	for k, v := range s.Mapping {
		out[k] = v
	}
	return out
}

// Build compiles the recognizer grammar for set.
func Build(set CommandSet) (string, error) {
	return grammar.Compile(set.Commands(), set.Labels())
}

// NewMatcher builds a phrase matcher for set.
func NewMatcher(set CommandSet) (*grammar.Matcher, error) {
	return grammar.NewMatcher(set.Commands(), set.Labels())
}

// Resolve maps a recognized phrase onto the canonical output for set.
// Lookup ignores case and separator differences. When several raw phrases
// share that form, the lexically smallest one wins. Unmapped phrases are
// returned normalized.
func Resolve(set CommandSet, recognized string) string {
	normalized := phrase.Normalize(recognized)
	mapping := set.OutputMapping()
	if len(mapping) == 0 {
		return normalized
	}

	key := phrase.Key(normalized)
	if out, ok := mapping[normalized]; ok {
		return out
	}
	raws := make([]string, 0, len(mapping))
	for raw := range mapping {
		raws = append(raws, raw)
	}
	sort.Strings(raws)
	for _, raw := range raws {
		if phrase.Key(raw) == key {
			return mapping[raw]
		}
	}
	return normalized
}
