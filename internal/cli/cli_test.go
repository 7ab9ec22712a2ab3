package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.True(t, parsed.ShowHelp)
	require.Equal(t, CommandHelp, parsed.Command)
}

func TestParseCompileWithFlags(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/cmdgram.jsonc", "--set", "label", "--output", "/tmp/grammar.txt", "--copy", "compile"})
	require.NoError(t, err)
	require.Equal(t, CommandCompile, parsed.Command)
	require.Equal(t, "/tmp/cmdgram.jsonc", parsed.ConfigPath)
	require.Equal(t, "label", parsed.SetName)
	require.Equal(t, "/tmp/grammar.txt", parsed.OutputPath)
	require.True(t, parsed.Copy)
	require.False(t, parsed.ShowHelp)
}

func TestParsePhraseCommandsJoinTrailingArgs(t *testing.T) {
	parsed, err := Parse([]string{"--set", "demo", "resolve", "KWA", "BEK"})
	require.NoError(t, err)
	require.Equal(t, CommandResolve, parsed.Command)
	require.Equal(t, "KWA BEK", parsed.Phrase)

	parsed, err = Parse([]string{"match", "--set", "x"})
	require.NoError(t, err)
	require.Equal(t, "--set x", parsed.Phrase)
	require.Empty(t, parsed.SetName)
}

func TestParseArgMatrix(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantCmd  Command
		wantHelp bool
	}{
		{name: "help short flag", args: []string{"-h"}, wantCmd: CommandHelp, wantHelp: true},
		{name: "help long flag", args: []string{"--help"}, wantCmd: CommandHelp, wantHelp: true},
		{name: "version flag", args: []string{"--version"}, wantCmd: CommandVersion},
		{name: "version command", args: []string{"version"}, wantCmd: CommandVersion},
		{name: "check", args: []string{"check", "--copy"}, wantErr: "unexpected arguments after command"},
		{name: "check copy", args: []string{"--copy", "check"}, wantCmd: CommandCheck},
		{name: "sets", args: []string{"sets"}, wantCmd: CommandSets},
		{name: "flag after command", args: []string{"compile", "--set", "demo"}, wantErr: "unexpected arguments after command"},
		{name: "missing config path", args: []string{"--config"}, wantErr: "--config requires a value"},
		{name: "empty set name", args: []string{"--set", " ", "compile"}, wantErr: "--set requires a value"},
		{name: "missing phrase", args: []string{"match"}, wantErr: "match requires a phrase"},
		{name: "blank phrase", args: []string{"resolve", " "}, wantErr: "resolve requires a phrase"},
		{name: "output without compile", args: []string{"--output", "/tmp/x", "sets"}, wantErr: "--output is only valid with compile"},
		{name: "copy with match", args: []string{"--copy", "match", "ALPHA"}, wantErr: "--copy is only valid"},
		{name: "unknown flag", args: []string{"--nope"}, wantErr: "unknown flag"},
		{name: "unknown command", args: []string{"frobnicate"}, wantErr: "unknown command"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantCmd, parsed.Command)
			require.Equal(t, tc.wantHelp, parsed.ShowHelp)
		})
	}
}

func TestHelpTextListsCommands(t *testing.T) {
	text := HelpText("cmdgram")
	for cmd := range validCommands {
		require.Contains(t, text, "  "+string(cmd)+" ")
	}
	require.Contains(t, text, "Usage:\n  cmdgram")
}
