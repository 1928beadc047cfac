// Package hyprpaper sets the desktop wallpaper through hyprctl's hyprpaper
// IPC commands. The wallpaper is applied to every monitor.
package hyprpaper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
)

const (
	DefaultCommand = "hyprctl"
	DefaultTimeout = 10 * time.Second

	StepPreload   = "preload"
	StepWallpaper = "wallpaper"
)

var ErrExternalTool = errors.New("external tool failed")

// ExternalToolError reports which hyprpaper step failed. Stderr is trimmed;
// Err is the spawn or exit error.
type ExternalToolError struct {
	Step   string
	Stderr string
	Err    error
}

func (e *ExternalToolError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("hyprpaper %s: %s", e.Step, e.Stderr)
	}
	return fmt.Sprintf("hyprpaper %s: %v", e.Step, e.Err)
}

func (e *ExternalToolError) Unwrap() []error {
	return []error{ErrExternalTool, e.Err}
}

// Spawned reports whether the tool ran and exited unsuccessfully, as opposed
// to not starting at all.
func (e *ExternalToolError) Spawned() bool {
	var exitErr *exec.ExitError
	return errors.As(e.Err, &exitErr)
}

// Runner executes a command and returns its stderr.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

type Setter struct {
	command string
	timeout time.Duration
	runner  Runner
}

type Option func(*Setter)

func WithCommand(command string) Option {
	return func(s *Setter) {
		if command != "" {
			s.command = command
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *Setter) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

func WithRunner(runner Runner) Option {
	return func(s *Setter) {
		s.runner = runner
	}
}

func New(opts ...Option) *Setter {
	s := &Setter{
		command: DefaultCommand,
		timeout: DefaultTimeout,
		runner:  execRunner{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set preloads path into hyprpaper and then applies it to all monitors.
// path should already be absolute.
func (s *Setter) Set(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.run(ctx, StepPreload, "hyprpaper", "preload", path); err != nil {
		return err
	}
	if err := s.run(ctx, StepWallpaper, "hyprpaper", "wallpaper", ","+path); err != nil {
		return err
	}

	logging.GetInternalLogger().Debug("Wallpaper applied", "command", s.command, "path", path)
	return nil
}

func (s *Setter) run(ctx context.Context, step string, args ...string) error {
	stderr, err := s.runner.Run(ctx, s.command, args...)
	if err == nil {
		return nil
	}

	toolErr := &ExternalToolError{
		Step:   step,
		Stderr: strings.TrimSpace(string(stderr)),
		Err:    err,
	}
	logging.GetInternalLogger().Error("Wallpaper command failed",
		"command", s.command,
		"args", args,
		"stderr", toolErr.Stderr,
		"error", err)
	return toolErr
}
