// Package grammar compiles voice command lists and label definitions into
// recognizer grammar strings.
package grammar

import "regexp"

// Reserved label names are built into the recognizer and never defined in a LabelMap.
const (
	LabelInteger = "integer"
	LabelReal    = "real"
	LabelDigit   = "digit"
)

var (
	labelRefPattern  = regexp.MustCompile(`\$[A-Za-z][A-Za-z0-9'_-]*`)
	labelNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9'_-]*$`)
)

// IsReserved reports whether name is one of the recognizer's built-in labels.
func IsReserved(name string) bool {
	switch name {
	case LabelInteger, LabelReal, LabelDigit:
		return true
	default:
		return false
	}
}

// Label is one named placeholder and its allowed substitutions.
type Label struct {
	Name          string
	Substitutions []string
}

// LabelMap is an insertion-ordered mapping of label name to substitutions.
// The zero value is an empty map ready for use. LabelMap values may be copied
// freely: Set never writes through storage shared with a copy.
type LabelMap struct {
	entries []Label
	index   map[string]int
}

// NewLabelMap builds a LabelMap from labels in order.
func NewLabelMap(labels ...Label) LabelMap {
	m := LabelMap{
		entries: make([]Label, 0, len(labels)),
		index:   make(map[string]int, len(labels)),
	}
	for _, label := range labels {
		m.put(label.Name, label.Substitutions)
	}
	return m
}

// Set defines or replaces a label. A replaced label keeps its original position.
func (m *LabelMap) Set(name string, substitutions ...string) {
	*m = m.clone()
	m.put(name, substitutions)
}

// put writes into storage m owns exclusively.
func (m *LabelMap) put(name string, substitutions []string) {
	subs := append([]string(nil), substitutions...)
	if i, ok := m.index[name]; ok {
		m.entries[i].Substitutions = subs
		return
	}
	m.index[name] = len(m.entries)
	m.entries = append(m.entries, Label{Name: name, Substitutions: subs})
}

func (m LabelMap) clone() LabelMap {
	out := LabelMap{
		entries: make([]Label, len(m.entries), len(m.entries)+1),
		index:   make(map[string]int, len(m.index)+1),
	}
	copy(out.entries, m.entries)
	for name, i := range m.index {
		out.index[name] = i
	}
	return out
}

// Get returns a copy of the substitutions for name.
func (m LabelMap) Get(name string) ([]string, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), m.entries[i].Substitutions...), true
}

// Has reports whether name is defined.
func (m LabelMap) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Len returns the number of defined labels.
func (m LabelMap) Len() int {
	return len(m.entries)
}

// Names returns label names in insertion order.
func (m LabelMap) Names() []string {
	names := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		names = append(names, entry.Name)
	}
	return names
}

// Labels returns a copy of the entries in insertion order.
func (m LabelMap) Labels() []Label {
	out := make([]Label, 0, len(m.entries))
	for _, entry := range m.entries {
		out = append(out, Label{
			Name:          entry.Name,
			Substitutions: append([]string(nil), entry.Substitutions...),
		})
	}
	return out
}

// References returns the label names referenced by command, in order of
// appearance, without the leading `$`. Duplicates are kept.
func References(command string) []string {
	matches := labelRefPattern.FindAllString(command, -1)
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match[1:])
	}
	return names
}
