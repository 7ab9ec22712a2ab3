// Package doctor runs authoring diagnostics for a command set and its runtime config.
package doctor

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/rbright/cmdgram/internal/commandset"
	"github.com/rbright/cmdgram/internal/config"
	"github.com/rbright/cmdgram/internal/grammar"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// Options toggles checks that only matter for some invocations.
type Options struct {
	Copy bool
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes config and grammar checks for set.
func Run(cfg config.Loaded, set commandset.CommandSet, opts Options) Report {
	checks := []Check{checkConfig(cfg)}

	labels := set.Labels()
	checks = append(checks, Check{
		Name:    "set",
		Pass:    true,
		Message: fmt.Sprintf("%q has %d commands and %d labels", set.Name(), len(set.Commands()), labels.Len()),
	})

	checks = append(checks, checkCompile(set))

	matcher, matchCheck := checkMatcher(set)
	checks = append(checks, matchCheck)

	if labels.Len() > 0 {
		checks = append(checks, checkUnusedLabels(set))
	}
	if len(set.OutputMapping()) > 0 {
		checks = append(checks, checkMappingReachable(set, matcher))
	}

	if opts.Copy {
		checks = append(checks, checkCommand(cfg.Config.Clipboard.Argv, "clipboard_cmd"))
	}

	return Report{Checks: checks}
}

func checkConfig(cfg config.Loaded) Check {
	if !cfg.Exists {
		return Check{Name: "config", Pass: true, Message: fmt.Sprintf("no file at %q; using defaults", cfg.Path)}
	}
	return Check{Name: "config", Pass: true, Message: fmt.Sprintf("loaded %q (%s)", cfg.Path, cfg.Format)}
}

// checkCompile runs the grammar compiler exactly as `compile` would.
func checkCompile(set commandset.CommandSet) Check {
	compiled, err := commandset.Build(set)
	if err != nil {
		return Check{Name: "grammar.compile", Pass: false, Message: err.Error()}
	}
	return Check{Name: "grammar.compile", Pass: true, Message: fmt.Sprintf("compiled %d bytes", len(compiled))}
}

// checkMatcher expands labels to surface syntax errors and label cycles the
// compiler passes through.
func checkMatcher(set commandset.CommandSet) (*grammar.Matcher, Check) {
	matcher, err := commandset.NewMatcher(set)
	if err != nil {
		return nil, Check{Name: "grammar.expand", Pass: false, Message: err.Error()}
	}
	return matcher, Check{Name: "grammar.expand", Pass: true, Message: "commands parse and labels expand"}
}

// checkUnusedLabels lists labels never referenced; unused labels are legal.
func checkUnusedLabels(set commandset.CommandSet) Check {
	labels := set.Labels()
	used := make(map[string]bool)
	for _, command := range set.Commands() {
		for _, name := range grammar.References(command) {
			used[name] = true
		}
	}
	for _, label := range labels.Labels() {
		for _, sub := range label.Substitutions {
			for _, name := range grammar.References(sub) {
				if name != label.Name {
					used[name] = true
				}
			}
		}
	}

	var unused []string
	for _, name := range labels.Names() {
		if !used[name] {
			unused = append(unused, "$"+name)
		}
	}
	if len(unused) == 0 {
		return Check{Name: "labels.unused", Pass: true, Message: "every label is referenced"}
	}
	return Check{Name: "labels.unused", Pass: true, Message: "not referenced: " + strings.Join(unused, ", ")}
}

// checkMappingReachable verifies every output-mapping phrase can be recognized.
func checkMappingReachable(set commandset.CommandSet, matcher *grammar.Matcher) Check {
	if matcher == nil {
		return Check{Name: "mapping.reachable", Pass: false, Message: "grammar does not expand; mapping not checked"}
	}

	var unreachable []string
	for raw := range set.OutputMapping() {
		if !matcher.Match(raw) {
			unreachable = append(unreachable, fmt.Sprintf("%q", raw))
		}
	}
	if len(unreachable) > 0 {
		sort.Strings(unreachable)
		return Check{Name: "mapping.reachable", Pass: false, Message: "not produced by any command: " + strings.Join(unreachable, ", ")}
	}
	return Check{Name: "mapping.reachable", Pass: true, Message: fmt.Sprintf("%d phrases reachable", len(set.OutputMapping()))}
}

// checkCommand validates that argv contains a runnable command.
func checkCommand(argv []string, name string) Check {
	if len(argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	return checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}
