package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArgv(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr string
	}{
		{name: "empty", input: "", want: nil},
		{name: "simple", input: "wl-copy --trim-newline", want: []string{"wl-copy", "--trim-newline"}},
		{name: "quoted spaces", input: `xclip -selection "clip board"`, want: []string{"xclip", "-selection", "clip board"}},
		{name: "single quote", input: `pbcopy 'a b'`, want: []string{"pbcopy", "a b"}},
		{name: "escaped space", input: `mycmd hello\ world`, want: []string{"mycmd", "hello world"}},
		{name: "empty quoted argument", input: `mycmd ""`, want: []string{"mycmd", ""}},
		{name: "single quotes are literal", input: `mycmd 'a\b'`, want: []string{"mycmd", `a\b`}},
		{name: "escaped double quote", input: `mycmd "say \"hi\""`, want: []string{"mycmd", `say "hi"`}},
		{name: "backslash kept in double quotes", input: `mycmd "C:\tmp"`, want: []string{"mycmd", `C:\tmp`}},
		{name: "adjacent quoted parts join", input: `mycmd a"b c"'d'`, want: []string{"mycmd", "ab cd"}},
		{name: "tabs and repeated spaces", input: "mycmd \t  --flag   x", want: []string{"mycmd", "--flag", "x"}},
		{name: "leading comment", input: `# wl-copy --trim-newline`, want: nil},
		{name: "unterminated quote", input: `mycmd "oops`, wantErr: "unterminated quote"},
		{name: "unterminated escape", input: `mycmd hello\`, wantErr: "unterminated escape"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseArgv(tc.input)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMustParseArgvPanicsOnInvalidInput(t *testing.T) {
	require.Panics(t, func() {
		_ = mustParseArgv(`mycmd "unterminated`)
	})
}
