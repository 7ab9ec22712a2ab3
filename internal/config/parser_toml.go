package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rbright/cmdgram/internal/grammar"
)

type tomlConfig struct {
	DefaultSet   *string            `toml:"default_set"`
	ClipboardCmd *string            `toml:"clipboard_cmd"`
	Output       *tomlOutput        `toml:"output"`
	Sets         map[string]tomlSet `toml:"sets"`
}

type tomlOutput struct {
	TrailingNewline *bool `toml:"trailing_newline"`
}

type tomlSet struct {
	Commands []string            `toml:"commands"`
	Labels   map[string][]string `toml:"labels"`
	Map      map[string]string   `toml:"map"`
}

// parseTOML decodes content and restores set and label order from the
// metadata key sequence, since TOML tables decode into unordered maps.
func parseTOML(content string) (fileConfig, error) {
	var payload tomlConfig
	meta, err := toml.Decode(content, &payload)
	if err != nil {
		return fileConfig{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	out := fileConfig{
		DefaultSet:   payload.DefaultSet,
		ClipboardCmd: payload.ClipboardCmd,
	}
	if payload.Output != nil {
		out.TrailingNewline = payload.Output.TrailingNewline
	}
	if payload.Sets == nil {
		return out, nil
	}

	setOrder, labelOrder := tomlKeyOrder(meta.Keys())
	out.Sets = make([]fileSet, 0, len(payload.Sets))
	for _, name := range setOrder {
		set, ok := payload.Sets[name]
		if !ok {
			continue
		}

		labels := make([]grammar.Label, 0, len(set.Labels))
		for _, label := range labelOrder[name] {
			if subs, ok := set.Labels[label]; ok {
				labels = append(labels, grammar.Label{Name: label, Substitutions: subs})
			}
		}

		out.Sets = append(out.Sets, fileSet{
			Name:     name,
			Commands: set.Commands,
			Labels:   labels,
			Map:      set.Map,
		})
	}
	return out, nil
}

// tomlKeyOrder returns set names and per-set label names by first appearance.
func tomlKeyOrder(keys []toml.Key) ([]string, map[string][]string) {
	var sets []string
	seenSets := make(map[string]bool)
	labels := make(map[string][]string)
	seenLabels := make(map[string]bool)

	for _, key := range keys {
		if len(key) < 2 || key[0] != "sets" {
			continue
		}
		name := key[1]
		if !seenSets[name] {
			seenSets[name] = true
			sets = append(sets, name)
		}
		if len(key) < 4 || key[2] != "labels" {
			continue
		}
		id := name + "\x00" + key[3]
		if !seenLabels[id] {
			seenLabels[id] = true
			labels[name] = append(labels[name], key[3])
		}
	}
	return sets, labels
}
