package phrase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssembleCollapsesWhitespaceAndPeriods(t *testing.T) {
	t.Parallel()

	got := Assemble([]string{" turn", "on.", "\nthe\tlights."}, Options{})
	require.Equal(t, "turn on the lights", got)
}

func TestAssembleUpperCase(t *testing.T) {
	t.Parallel()

	got := Assemble([]string{"kwa", "bek"}, Options{UpperCase: true})
	require.Equal(t, "KWA BEK", got)
}

func TestAssembleEmptyInput(t *testing.T) {
	t.Parallel()

	require.Empty(t, Assemble(nil, Options{UpperCase: true}))
	require.Empty(t, Assemble([]string{"  ", "\n\t", "..."}, Options{}))
}

func TestWordsKeepsDecimalPoint(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"set", "volume", "to", "2.5"}, Words("set volume to 2.5"))
	require.Equal(t, []string{"version", "2"}, Words("version 2."))
	require.Equal(t, []string{"5", "dollars"}, Words("5.dollars"))
}

func TestKeyIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	require.Equal(t, Key("Kwa  Bek."), Key("KWA BEK"))
	require.Equal(t, "KEI BEK", Key(" kei bek "))
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	first := Normalize("  Her car.  values 12 dollars ")
	require.Equal(t, "Her car values 12 dollars", first)
	require.Equal(t, first, Normalize(first))
}
