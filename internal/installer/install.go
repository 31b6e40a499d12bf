package installer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"setup-lint/internal/logger"
)

// DependencyInstaller installs a list of packages with a package manager.
// The pipeline only depends on this interface, so tests can substitute a
// fake and never spawn a process.
type DependencyInstaller interface {
	Install(ctx context.Context, pm PackageManager, dir string, deps []string) error
}

// InstallError reports a package manager that could not be started or that
// exited with a non-zero status. Args holds the arguments passed to the
// binary, without the binary itself.
type InstallError struct {
	Manager string
	Args    []string
	Stderr  string
	Err     error
}

func (e *InstallError) Error() string {
	msg := fmt.Sprintf("%s install failed: %v", e.Manager, e.Err)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *InstallError) Unwrap() error { return e.Err }

// ExecInstaller runs the real package manager binary.
type ExecInstaller struct{}

// Install runs the package manager in dir and waits for it to exit.
// Stdout is only surfaced in debug logs; stderr is captured into the error.
// There is no timeout: the command runs until it exits or ctx is cancelled.
func (ExecInstaller) Install(ctx context.Context, pm PackageManager, dir string, deps []string) error {
	cmd := exec.CommandContext(ctx, pm.Binary, pm.InstallArgs(deps)...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("[DEBUG] Running command in %s: %s\n", dir, strings.Join(cmd.Args, " "))
	err := cmd.Run()
	logger.Debug("[DEBUG] %s output: %s\n", pm.Name, stdout.String())
	if err != nil {
		return &InstallError{
			Manager: pm.Name,
			Args:    pm.InstallArgs(deps),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return nil
}

// DryRunInstaller prints the install command instead of running it.
// The notice goes to Out (stderr when nil) so a dry run's stdout carries
// nothing but the merged manifest.
type DryRunInstaller struct {
	Out io.Writer
}

// Install logs the command that would have been executed.
func (d DryRunInstaller) Install(_ context.Context, pm PackageManager, dir string, deps []string) error {
	out := d.Out
	if out == nil {
		out = os.Stderr
	}
	logger.InfoTo(out, "[INFO] Would run in %s: %s\n", dir, pm.CommandLine(deps))
	return nil
}

// DryRun reports that nothing is ever installed.
func (DryRunInstaller) DryRun() bool { return true }

// IsDryRun reports whether inst only pretends to install.
func IsDryRun(inst DependencyInstaller) bool {
	d, ok := inst.(interface{ DryRun() bool })
	return ok && d.DryRun()
}
