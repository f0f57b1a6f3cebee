package nrfjprog

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Commander runs a prepared command and returns its standard output.
type Commander interface {
	Exec(*exec.Cmd) ([]byte, error)
}

// ExecCommander runs commands on the host.
type ExecCommander struct{}

// Exec runs cmd. A non-zero exit status is returned as an error that carries
// the command's stderr.
func (ExecCommander) Exec(cmd *exec.Cmd) ([]byte, error) {
	var stderr bytes.Buffer
	if cmd.Stderr == nil {
		cmd.Stderr = &stderr
	}
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && msg != "" {
			return out, fmt.Errorf("%w: %s", err, msg)
		}
		return out, err
	}
	return out, nil
}

// FakeCommander returns canned results for tests.
type FakeCommander struct {
	CmdOutput string
	Err       error
	FakeFn    func(*exec.Cmd) ([]byte, error)

	// Calls records the argument lists of every executed command.
	Calls [][]string
}

// Exec records the call and returns the configured result.
func (f *FakeCommander) Exec(in *exec.Cmd) ([]byte, error) {
	f.Calls = append(f.Calls, append([]string(nil), in.Args[1:]...))
	if f.FakeFn != nil {
		return f.FakeFn(in)
	}
	return []byte(f.CmdOutput), f.Err
}
