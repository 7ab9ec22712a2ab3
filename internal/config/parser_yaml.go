package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rbright/cmdgram/internal/grammar"
)

type yamlConfig struct {
	DefaultSet   *string     `yaml:"default_set"`
	ClipboardCmd *string     `yaml:"clipboard_cmd"`
	Output       *yamlOutput `yaml:"output"`
	Sets         *yamlSets   `yaml:"sets"`
}

type yamlOutput struct {
	TrailingNewline *bool `yaml:"trailing_newline"`
}

type yamlSet struct {
	Commands yamlCommandList   `yaml:"commands"`
	Labels   yamlLabels        `yaml:"labels"`
	Map      map[string]string `yaml:"map"`
}

// yamlSets keeps set definitions in document order.
type yamlSets []fileSet

func (s *yamlSets) UnmarshalYAML(value *yaml.Node) error {
	sets := make([]fileSet, 0)
	err := walkMapping(value, func(key *yaml.Node, node *yaml.Node) error {
		var payload yamlSet
		if err := decodeYAMLSet(node, &payload); err != nil {
			return fmt.Errorf("sets.%s: %w", key.Value, err)
		}
		sets = append(sets, fileSet{
			Name:     key.Value,
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

// yamlLabels keeps label definitions in document order.
type yamlLabels []grammar.Label

func (l *yamlLabels) UnmarshalYAML(value *yaml.Node) error {
	labels := make([]grammar.Label, 0)
	err := walkMapping(value, func(key *yaml.Node, node *yaml.Node) error {
		var subs yamlCommandList
		if err := node.Decode(&subs); err != nil {
			return fmt.Errorf("labels.%s: %w", key.Value, err)
		}
		labels = append(labels, grammar.Label{Name: key.Value, Substitutions: subs})
		return nil
	})
	if err != nil {
		return err
	}
	*l = labels
	return nil
}

// yamlCommandList accepts either a sequence or a single command scalar.
type yamlCommandList []string

func (l *yamlCommandList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	case yaml.ScalarNode:
		*l = []string{value.Value}
		return nil
	default:
		return fmt.Errorf("line %d: expected sequence or command string", value.Line)
	}
}

func parseYAML(content string) (fileConfig, error) {
	decoder := yaml.NewDecoder(strings.NewReader(content))
	decoder.KnownFields(true)

	var payload yamlConfig
	if err := decoder.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, err
	}

	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return fileConfig{}, err
		}
		return fileConfig{}, fmt.Errorf("multiple YAML documents are not allowed")
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

// walkMapping visits key/value pairs of a mapping node in document order.
func walkMapping(value *yaml.Node, visit func(key *yaml.Node, node *yaml.Node) error) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		if err := visit(value.Content[i], value.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// decodeYAMLSet rejects unknown set fields, which Node.Decode does not check.
func decodeYAMLSet(node *yaml.Node, set *yamlSet) error {
	if node.Kind == yaml.MappingNode {
		allowed := map[string]bool{"commands": true, "labels": true, "map": true}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if !allowed[key.Value] {
				return fmt.Errorf("line %d: field %s not found", key.Line, key.Value)
			}
		}
	}
	return node.Decode(set)
}
