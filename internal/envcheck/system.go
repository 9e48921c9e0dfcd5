package envcheck

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
)

// Output is what a subprocess printed and how it exited.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes a subprocess. Implementations return an error only when the
// process could not be started or did not finish; a non-zero exit is reported
// through Output.ExitCode.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// System is the host view a Checker inspects.
type System interface {
	LookPath(file string) (string, error)
	Getenv(key string) string
	Stat(name string) (fs.FileInfo, error)
	HomeDir() (string, error)
}

// ExecRunner runs subprocesses with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}

// HostSystem reads the real environment.
type HostSystem struct{}

func (HostSystem) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (HostSystem) Getenv(key string) string { return os.Getenv(key) }

func (HostSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (HostSystem) HomeDir() (string, error) { return os.UserHomeDir() }
