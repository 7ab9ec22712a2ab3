// Package output emits compiled grammars to stdout, files, and the clipboard.
package output

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rbright/cmdgram/internal/config"
)

// Options selects where a compiled grammar is written.
type Options struct {
	Path string
	Copy bool
}

// Emitter writes compiled grammar text according to runtime config.
type Emitter struct {
	config config.Config
	stdout io.Writer
	logger *slog.Logger
}

// NewEmitter constructs a grammar emitter from runtime config.
func NewEmitter(cfg config.Config, stdout io.Writer, logger *slog.Logger) *Emitter {
	return &Emitter{config: cfg, stdout: stdout, logger: logger}
}

// Emit writes grammar to opts.Path when set, otherwise to stdout, and
// additionally pipes it into the clipboard command when opts.Copy is set.
func (e *Emitter) Emit(ctx context.Context, grammar string, opts Options) error {
	text := grammar
	if e.config.Output.TrailingNewline {
		text += "\n"
	}

	if opts.Path != "" {
		if err := writeFileAtomic(opts.Path, []byte(text)); err != nil {
			return fmt.Errorf("write grammar: %w", err)
		}
		e.logDebug("grammar written", "path", opts.Path, "bytes", len(text))
	} else if _, err := io.WriteString(e.stdout, text); err != nil {
		return fmt.Errorf("write grammar: %w", err)
	}

	if !opts.Copy {
		return nil
	}

	clipboardCtx, clipboardCancel := context.WithTimeout(ctx, 2*time.Second)
	defer clipboardCancel()
	if err := runCommandWithInput(clipboardCtx, e.config.Clipboard.Argv, grammar); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}
	e.logDebug("grammar copied to clipboard", "command", e.config.Clipboard.Raw)
	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// runCommandWithInput executes argv with input on stdin.
func runCommandWithInput(ctx context.Context, argv []string, input string) error {
	if len(argv) == 0 {
		return fmt.Errorf("command argv cannot be empty")
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = bytes.NewBufferString(input)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("run %s: %w: %s", argv[0], err, msg)
		}
		return fmt.Errorf("run %s: %w", argv[0], err)
	}
	return nil
}

func (e *Emitter) logDebug(msg string, args ...any) {
	if e.logger == nil {
		return
	}
	e.logger.Debug(msg, args...)
}
