// Package app wires CLI parsing, config, command sets, and output into one run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rbright/cmdgram/internal/cli"
	"github.com/rbright/cmdgram/internal/commandset"
	"github.com/rbright/cmdgram/internal/config"
	"github.com/rbright/cmdgram/internal/doctor"
	"github.com/rbright/cmdgram/internal/grammar"
	"github.com/rbright/cmdgram/internal/logging"
	"github.com/rbright/cmdgram/internal/output"
	"github.com/rbright/cmdgram/internal/version"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("cmdgram"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("cmdgram"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}
	logger = logger.With("run_id", uuid.NewString())

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, w.Message)
		}
		if cfgLoaded.Exists {
			fmt.Fprintf(r.Stderr, "warning: %s\n", msg)
		}
		logger.Warn("config warning", "line", w.Line, "message", w.Message)
	}

	registry := buildRegistry(cfgLoaded.Config, logger)

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	if parsed.Command == cli.CommandSets {
		return r.commandSets(registry, cfgLoaded.Config)
	}

	setName := selectSetName(parsed, cfgLoaded.Config)
	set, err := registry.Lookup(setName)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("select command set failed", "set", setName, "error", err.Error())
		return 1
	}

	switch parsed.Command {
	case cli.CommandCompile:
		return r.commandCompile(ctx, set, cfgLoaded.Config, parsed, logger)
	case cli.CommandCheck:
		report := doctor.Run(cfgLoaded, set, doctor.Options{Copy: parsed.Copy})
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandMatch:
		return r.commandMatch(set, parsed.Phrase, logger)
	case cli.CommandResolve:
		fmt.Fprintln(r.Stdout, commandset.Resolve(set, parsed.Phrase))
		return 0
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// buildRegistry layers configured sets over the built-in ones.
func buildRegistry(cfg config.Config, logger *slog.Logger) *commandset.Registry {
	registry := commandset.Builtin()
	for _, set := range cfg.Sets {
		if registry.Register(set.CommandSet()) {
			logger.Info("config set overrides built-in set", "set", set.Name)
		}
	}
	return registry
}

func selectSetName(parsed cli.Parsed, cfg config.Config) string {
	if name := strings.TrimSpace(parsed.SetName); name != "" {
		return name
	}
	if cfg.DefaultSet != "" {
		return cfg.DefaultSet
	}
	return commandset.DemoName
}

func (r Runner) commandCompile(ctx context.Context, set commandset.CommandSet, cfg config.Config, parsed cli.Parsed, logger *slog.Logger) int {
	compiled, err := commandset.Build(set)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: compile %q: %v\n", set.Name(), err)
		logCompileFailure(logger, set, err)
		return 1
	}

	emitter := output.NewEmitter(cfg, r.Stdout, logger)
	if err := emitter.Emit(ctx, compiled, output.Options{Path: parsed.OutputPath, Copy: parsed.Copy}); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("emit grammar failed", "set", set.Name(), "error", err.Error())
		return 1
	}

	logger.Info("grammar compiled",
		"set", set.Name(),
		"commands", len(set.Commands()),
		"labels", set.Labels().Len(),
		"bytes", len(compiled),
		"output", parsed.OutputPath,
		"copied", parsed.Copy,
	)
	return 0
}

func (r Runner) commandMatch(set commandset.CommandSet, text string, logger *slog.Logger) int {
	matcher, err := commandset.NewMatcher(set)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: expand %q: %v\n", set.Name(), err)
		logger.Error("build matcher failed", "set", set.Name(), "error", err.Error())
		return 1
	}

	index, ok := matcher.MatchCommand(text)
	if !ok {
		fmt.Fprintln(r.Stdout, "no match")
		return 1
	}
	fmt.Fprintf(r.Stdout, "match: %s\n", set.Commands()[index])
	return 0
}

func (r Runner) commandSets(registry *commandset.Registry, cfg config.Config) int {
	defaultName := cfg.DefaultSet
	if defaultName == "" {
		defaultName = commandset.DemoName
	}

	for _, set := range registry.Sets() {
		mark := " "
		if set.Name() == defaultName {
			mark = "*"
		}
		fmt.Fprintf(r.Stdout, "%s %s | commands=%d | labels=%d | mappings=%d\n",
			mark,
			set.Name(),
			len(set.Commands()),
			set.Labels().Len(),
			len(set.OutputMapping()),
		)
	}
	return 0
}

func logCompileFailure(logger *slog.Logger, set commandset.CommandSet, err error) {
	fields := []any{"set", set.Name(), "error", err.Error()}

	var undefined *grammar.UndefinedLabelError
	var malformed *grammar.MalformedLabelDefinitionError
	switch {
	case errors.As(err, &undefined):
		fields = append(fields, "kind", "undefined_label", "label", undefined.Label, "offending_command", undefined.Command)
	case errors.As(err, &malformed):
		fields = append(fields, "kind", "malformed_label", "label", malformed.Label)
	}
	logger.Error("compile failed", fields...)
}
