package commandset

import (
	"strings"
	"testing"

	"github.com/rbright/cmdgram/internal/grammar"
	"github.com/stretchr/testify/require"
)

func TestBuildDemoHasNoLabelSection(t *testing.T) {
	t.Parallel()

	got, err := Build(Demo())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, "(ALPHA)|(BRAVO)|(CHARLIE)"))
	require.True(t, strings.HasSuffix(got, "(SWITCH GRAMMAR)|(STOP SPEAR)|(SWITCH LABEL GRAMMAR)"))
	require.NotContains(t, got, "[$")
	require.Equal(t, len(Demo().Commands())-1, strings.Count(got, "|"))
}

func TestBuildLabeled(t *testing.T) {
	t.Parallel()

	got, err := Build(Labeled())
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"[$pet: (dog)|(cat)|(rabbit)|(bird)]",
		"[$vehicle: (bicycle)|(ship)|(car)|(plane)]",
		"[$action1: (turn on)|(turn off)]",
		"[$action2: (volumn up)|(volumn off)]",
		"(I.have.a.$pet)|($action1 light)|($action2)|(My $pet weight 24.5 lb)|(Her $vehicle values $integer dollars)|(CLE stands for cleveland)|(STOP SPEAR)",
	}, "\n"), got)
}

func TestResolveMapsVariantsOntoCanonicalOutput(t *testing.T) {
	t.Parallel()

	demo := Demo()
	require.Equal(t, "QUEBEC", Resolve(demo, "KWA BEK"))
	require.Equal(t, "QUEBEC", Resolve(demo, " kei   bek "))
	require.Equal(t, "ALPHA", Resolve(demo, "ALPHA"))
	require.Equal(t, "STOP SPEAR", Resolve(demo, "STOP.SPEAR"))
}

func TestResolveEquivalentPhrasesPickFirstSortedKey(t *testing.T) {
	t.Parallel()

	set := Static{
		SetName:     "dup",
		CommandList: []string{"KWA BEK"},
		Mapping: map[string]string{
			"kwa bek":  "LOWER",
			"KWA BEK.": "UPPER",
			"Kwa  Bek": "MIXED",
		},
	}
	for i := 0; i < 20; i++ {
		require.Equal(t, "UPPER", Resolve(set, "kWa bEk"))
	}
	require.Equal(t, "LOWER", Resolve(set, "kwa bek"))
}

func TestResolveWithoutMappingNormalizes(t *testing.T) {
	t.Parallel()

	require.Equal(t, "I have a dog", Resolve(Labeled(), "I.have.a.dog"))
}

func TestDemoMappingKeysAreReachable(t *testing.T) {
	t.Parallel()

	for _, set := range Builtin().Sets() {
		m, err := NewMatcher(set)
		require.NoError(t, err, set.Name())
		for key := range set.OutputMapping() {
			require.True(t, m.Match(key), "%s: %s", set.Name(), key)
		}
	}
}

func TestStaticReturnsCopies(t *testing.T) {
	t.Parallel()

	set := Static{SetName: "x", CommandList: []string{"A"}, Mapping: map[string]string{"B": "A"}}
	commands := set.Commands()
	commands[0] = "mutated"
	mapping := set.OutputMapping()
	mapping["B"] = "mutated"

	require.Equal(t, []string{"A"}, set.Commands())
	require.Equal(t, "A", set.OutputMapping()["B"])
	require.Nil(t, Static{}.OutputMapping())
}

func TestRegistryOrderLookupAndReplace(t *testing.T) {
	t.Parallel()

	r := Builtin()
	require.Equal(t, []string{DemoName, LabeledName}, r.Names())

	replaced := r.Register(Static{SetName: DemoName, CommandList: []string{"ONLY"}})
	require.True(t, replaced)
	require.False(t, r.Register(Static{SetName: "home", CommandList: []string{"$x"}, LabelDefs: grammar.NewLabelMap(grammar.Label{Name: "x", Substitutions: []string{"on"}})}))
	require.Equal(t, []string{DemoName, LabeledName, "home"}, r.Names())

	set, err := r.Lookup(" demo ")
	require.NoError(t, err)
	require.Equal(t, []string{"ONLY"}, set.Commands())

	_, err = r.Lookup("missing")
	require.ErrorIs(t, err, ErrUnknownSet)
	require.Contains(t, err.Error(), "demo, label, home")
}
