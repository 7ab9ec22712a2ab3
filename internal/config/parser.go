package config

import (
	"fmt"
	"strings"

	"github.com/rbright/cmdgram/internal/grammar"
)

// Parse reads configuration content in the given format on top of base.
func Parse(content string, format Format, base Config) (Config, []Warning, error) {
	if strings.TrimSpace(content) == "" {
		validatedWarnings, err := Validate(base)
		if err != nil {
			return Config{}, nil, err
		}
		return base, validatedWarnings, nil
	}

	var (
		payload fileConfig
		err     error
	)
	switch format {
	case FormatJSONC:
		payload, err = parseJSONC(content)
	case FormatYAML:
		payload, err = parseYAML(content)
	case FormatTOML:
		payload, err = parseTOML(content)
	default:
		return Config{}, nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return Config{}, nil, err
	}

	cfg := base
	warnings, err := payload.applyTo(&cfg)
	if err != nil {
		return Config{}, nil, err
	}

	validatedWarnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	warnings = append(warnings, validatedWarnings...)
	return cfg, warnings, nil
}

func (payload fileConfig) applyTo(cfg *Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if payload.DefaultSet != nil {
		cfg.DefaultSet = strings.TrimSpace(*payload.DefaultSet)
	}

	if payload.ClipboardCmd != nil {
		raw := *payload.ClipboardCmd
		argv, err := parseArgv(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid clipboard_cmd: %w", err)
		}
		cfg.Clipboard = CommandConfig{Raw: raw, Argv: argv}
	}

	if payload.TrailingNewline != nil {
		cfg.Output.TrailingNewline = *payload.TrailingNewline
	}

	if payload.Sets == nil {
		return warnings, nil
	}

	sets := make([]SetConfig, 0, len(payload.Sets))
	index := make(map[string]int, len(payload.Sets))
	for _, set := range payload.Sets {
		name := strings.TrimSpace(set.Name)
		if name == "" {
			return nil, fmt.Errorf("sets contains an empty set name")
		}

		entry := SetConfig{
			Name:     name,
			Commands: append([]string(nil), set.Commands...),
			Labels:   grammar.NewLabelMap(set.Labels...),
		}
		if len(set.Map) > 0 {
			entry.Map = make(map[string]string, len(set.Map))
			for k, v := range set.Map {
				entry.Map[k] = v
			}
		}

		if i, ok := index[name]; ok {
			warnings = append(warnings, Warning{Message: fmt.Sprintf("set %q defined more than once; last definition wins", name)})
			sets[i] = entry
			continue
		}
		index[name] = len(sets)
		sets = append(sets, entry)
	}
	cfg.Sets = sets

	return warnings, nil
}
