// Package setup bootstraps the deployment environment by driving the
// external package manager.
//
// Commands are invoked via os/exec rather than any library binding so
// the behavior matches exactly what an operator would get running the
// same two commands in a terminal. The package manager's own output is
// passed through untouched; this package adds no diagnostics of its own.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// ManifestPath is the dependency manifest consumed by the install step.
// The path is fixed by convention and deliberately not parameterized.
const ManifestPath = "requirements.txt"

// installerBin is the package manager binary, resolved via PATH.
const installerBin = "pip"

// StepError reports a failed setup step together with the exit code of
// the underlying command, so callers can propagate it as the process
// exit status.
type StepError struct {
	Step     string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Commander runs an external command to completion. It exists so tests
// can substitute a fake and assert ordering without invoking real
// binaries.
type Commander interface {
	Run(ctx context.Context, name string, args ...string) error
}

// execCommander runs commands via os/exec with output passed through.
type execCommander struct {
	stdout io.Writer
	stderr io.Writer
}

func (c *execCommander) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	return cmd.Run()
}

// Installer runs the environment setup steps in order, stopping at the
// first failure.
type Installer struct {
	cmd    Commander
	logger *slog.Logger
}

// NewInstaller creates an Installer that invokes the real package
// manager, streaming its output to the process's stdout and stderr.
func NewInstaller(logger *slog.Logger) *Installer {
	return NewInstallerWithCommander(&execCommander{stdout: os.Stdout, stderr: os.Stderr}, logger)
}

// NewInstallerWithCommander creates an Installer with a custom command
// runner.
func NewInstallerWithCommander(cmd Commander, logger *slog.Logger) *Installer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Installer{cmd: cmd, logger: logger}
}

// Run executes the two setup steps in order:
//
//  1. install dependencies from the manifest
//  2. upgrade the package manager itself
//
// If a step exits non-zero the second is never attempted and the
// returned *StepError carries that step's exit code.
func (i *Installer) Run(ctx context.Context) error {
	steps := []struct {
		name string
		args []string
	}{
		{"install dependencies", []string{"install", "-r", ManifestPath}},
		{"upgrade installer", []string{"install", "--upgrade", installerBin}},
	}

	for _, step := range steps {
		i.logger.Debug("running setup step", "step", step.name, "command", installerBin, "args", step.args)
		if err := i.cmd.Run(ctx, installerBin, step.args...); err != nil {
			return &StepError{
				Step:     step.name,
				ExitCode: exitCode(err),
				Err:      err,
			}
		}
	}
	return nil
}

// exitCode extracts the command's exit status, defaulting to 1 when the
// command failed before running (e.g. binary not found).
func exitCode(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 1
}
