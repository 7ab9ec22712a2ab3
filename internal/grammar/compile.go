package grammar

import (
	"fmt"
	"strings"
)

// Compile builds the recognizer grammar for commands: one `[$name: ...]` line
// per label in map order, followed by the body alternation.
//
// Compile is pure and safe for concurrent use. On error no grammar is returned.
func Compile(commands []string, labels LabelMap) (string, error) {
	labelSection, err := buildLabelSection(labels)
	if err != nil {
		return "", err
	}

	body, err := buildBody(commands, labels, "")
	if err != nil {
		return "", err
	}

	return labelSection + body, nil
}

func buildLabelSection(labels LabelMap) (string, error) {
	var b strings.Builder
	for _, entry := range labels.entries {
		if err := validateDefinition(entry); err != nil {
			return "", err
		}

		body, err := buildBody(entry.Substitutions, labels, entry.Name)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "[$%s: %s]\n", entry.Name, body)
	}
	return b.String(), nil
}

func validateDefinition(entry Label) error {
	switch {
	case entry.Name == "":
		return &MalformedLabelDefinitionError{Label: entry.Name, Reason: "empty label name"}
	case IsReserved(entry.Name):
		return &MalformedLabelDefinitionError{Label: entry.Name, Reason: "reserved label name"}
	case !labelNamePattern.MatchString(entry.Name):
		return &MalformedLabelDefinitionError{Label: entry.Name, Reason: "label name must start with a letter followed by letters, digits, ', _ or -"}
	}

	for _, sub := range entry.Substitutions {
		if len(entryParts(sub)) > 0 {
			return nil
		}
	}
	return &MalformedLabelDefinitionError{Label: entry.Name, Reason: "no substitutions"}
}

// entryParts splits an entry on `|` and drops parts that are blank after
// trimming. An entry without `|` is kept whole unless it is blank.
func entryParts(entry string) []string {
	if strings.TrimSpace(entry) == "" {
		return nil
	}
	if !strings.Contains(entry, "|") {
		return []string{entry}
	}

	parts := make([]string, 0, strings.Count(entry, "|")+1)
	for _, part := range strings.Split(entry, "|") {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// buildBody formats each non-blank entry part and joins the results with `|`.
// definition names the enclosing label when compiling substitutions.
func buildBody(commands []string, labels LabelMap, definition string) (string, error) {
	parts := make([]string, 0, len(commands))
	for _, command := range commands {
		for _, part := range entryParts(command) {
			formatted, err := formatCommand(part, labels, definition)
			if err != nil {
				return "", err
			}
			parts = append(parts, formatted)
		}
	}
	return strings.Join(parts, "|"), nil
}

// formatCommand validates label references and wraps command in parentheses
// unless it is already enclosed.
func formatCommand(command string, labels LabelMap, definition string) (string, error) {
	for _, name := range References(command) {
		if IsReserved(name) || labels.Has(name) {
			continue
		}
		return "", &UndefinedLabelError{
			Label:      name,
			Command:    command,
			Definition: definition,
			Suggestion: suggestLabel(name, labels),
		}
	}

	if strings.HasPrefix(command, "(") && strings.HasSuffix(command, ")") {
		return command, nil
	}
	return "(" + strings.TrimSpace(command) + ")", nil
}
