package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rbright/cmdgram/internal/phrase"
)

var setNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Validate enforces config invariants and returns non-fatal warnings.
// Label definitions are checked by the grammar compiler, not here.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if len(cfg.Clipboard.Argv) == 0 {
		return nil, fmt.Errorf("clipboard_cmd must not be empty")
	}
	if cfg.DefaultSet != "" && !setNamePattern.MatchString(cfg.DefaultSet) {
		return nil, fmt.Errorf("default_set %q is not a valid set name", cfg.DefaultSet)
	}

	for _, set := range cfg.Sets {
		if !setNamePattern.MatchString(set.Name) {
			return nil, fmt.Errorf("set name %q must start with a letter or digit followed by letters, digits, _ or -", set.Name)
		}

		hasCommand := false
		for _, command := range set.Commands {
			if strings.TrimSpace(command) != "" {
				hasCommand = true
				break
			}
		}
		if !hasCommand {
			return nil, fmt.Errorf("sets.%s.commands must contain at least one command", set.Name)
		}

		mapWarnings, err := validateMap(set)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, mapWarnings...)
	}

	return warnings, nil
}

// validateMap rejects empty mapping entries and warns when two raw phrases
// collapse onto the same lookup key.
func validateMap(set SetConfig) ([]Warning, error) {
	warnings := make([]Warning, 0)
	seen := make(map[string]string, len(set.Map))

	for raw, out := range set.Map {
		if strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("sets.%s.map contains an empty phrase", set.Name)
		}
		if strings.TrimSpace(out) == "" {
			return nil, fmt.Errorf("sets.%s.map[%q] must not be empty", set.Name, raw)
		}

		key := phrase.Key(raw)
		if other, ok := seen[key]; ok {
			first, second := other, raw
			if second < first {
				first, second = second, first
			}
			warnings = append(warnings, Warning{Message: fmt.Sprintf("sets.%s.map phrases %q and %q are equivalent", set.Name, first, second)})
			continue
		}
		seen[key] = raw
	}
	return warnings, nil
}
