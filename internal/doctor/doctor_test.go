package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rbright/cmdgram/internal/commandset"
	"github.com/rbright/cmdgram/internal/config"
	"github.com/rbright/cmdgram/internal/grammar"
	"github.com/stretchr/testify/require"
)

func findCheck(t *testing.T, report Report, name string) Check {
	t.Helper()
	for _, check := range report.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %q not found in %v", name, report.Checks)
	return Check{}
}

func loadedDefaults() config.Loaded {
	return config.Loaded{Path: "/tmp/config.jsonc", Config: config.Default()}
}

func TestReportOKAndString(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "one", Pass: true, Message: "good"},
		{Name: "two", Pass: false, Message: "bad"},
	}}

	require.False(t, report.OK())
	text := report.String()
	require.Contains(t, text, "[OK] one: good")
	require.Contains(t, text, "[FAIL] two: bad")
}

func TestReportOKAllPassing(t *testing.T) {
	report := Report{Checks: []Check{{Name: "one", Pass: true}, {Name: "two", Pass: true}}}
	require.True(t, report.OK())
}

func TestRunBuiltinSetsPass(t *testing.T) {
	for _, set := range commandset.Builtin().Sets() {
		report := Run(loadedDefaults(), set, Options{})
		require.True(t, report.OK(), report.String())
		require.Contains(t, findCheck(t, report, "config").Message, "using defaults")
	}
}

func TestRunReportsUndefinedLabel(t *testing.T) {
	set := commandset.Static{SetName: "broken", CommandList: []string{"Say $foo"}}

	report := Run(loadedDefaults(), set, Options{})
	require.False(t, report.OK())
	require.False(t, findCheck(t, report, "grammar.compile").Pass)
	require.Contains(t, findCheck(t, report, "grammar.compile").Message, "$foo")
}

func TestRunReportsLabelCycleThatCompiles(t *testing.T) {
	set := commandset.Static{
		SetName:     "loop",
		CommandList: []string{"$a"},
		LabelDefs: grammar.NewLabelMap(
			grammar.Label{Name: "a", Substitutions: []string{"x $b"}},
			grammar.Label{Name: "b", Substitutions: []string{"y $a"}},
		),
	}

	report := Run(loadedDefaults(), set, Options{})
	require.True(t, findCheck(t, report, "grammar.compile").Pass)
	expand := findCheck(t, report, "grammar.expand")
	require.False(t, expand.Pass)
	require.Contains(t, expand.Message, "label cycle")
}

func TestRunListsUnusedLabels(t *testing.T) {
	set := commandset.Static{
		SetName:     "extra",
		CommandList: []string{"pet $pet"},
		LabelDefs: grammar.NewLabelMap(
			grammar.Label{Name: "pet", Substitutions: []string{"dog"}},
			grammar.Label{Name: "vehicle", Substitutions: []string{"car"}},
		),
	}

	report := Run(loadedDefaults(), set, Options{})
	require.True(t, report.OK(), report.String())
	require.Equal(t, "not referenced: $vehicle", findCheck(t, report, "labels.unused").Message)
}

func TestRunReportsUnreachableMapping(t *testing.T) {
	set := commandset.Static{
		SetName:     "mapped",
		CommandList: []string{"ALPHA"},
		Mapping:     map[string]string{"AL FA": "ALPHA", "alpha": "ALPHA"},
	}

	report := Run(loadedDefaults(), set, Options{})
	check := findCheck(t, report, "mapping.reachable")
	require.False(t, check.Pass)
	require.Equal(t, `not produced by any command: "AL FA"`, check.Message)
}

func TestRunMappingSkippedWhenGrammarDoesNotExpand(t *testing.T) {
	set := commandset.Static{
		SetName:     "bad",
		CommandList: []string{"ALPHA #"},
		Mapping:     map[string]string{"ALPHA": "A"},
	}

	report := Run(loadedDefaults(), set, Options{})
	require.False(t, findCheck(t, report, "mapping.reachable").Pass)
	require.Contains(t, findCheck(t, report, "mapping.reachable").Message, "not checked")
}

func TestRunChecksClipboardOnlyWhenCopying(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fake-copy"), []byte("#!/usr/bin/env sh\nexit 0\n"), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))

	loaded := loadedDefaults()
	loaded.Config.Clipboard = config.CommandConfig{Raw: "fake-copy", Argv: []string{"fake-copy"}}

	without := Run(loaded, commandset.Demo(), Options{})
	for _, check := range without.Checks {
		require.NotEqual(t, "fake-copy", check.Name)
	}

	with := Run(loaded, commandset.Demo(), Options{Copy: true})
	check := findCheck(t, with, "fake-copy")
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "clipboard_cmd command is available")
}

func TestCheckCommandEmpty(t *testing.T) {
	check := checkCommand(nil, "clipboard_cmd")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "command is empty")
}

func TestCheckBinaryMissing(t *testing.T) {
	check := checkBinary("definitely-not-a-real-binary", "unused")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "binary not found")
}
