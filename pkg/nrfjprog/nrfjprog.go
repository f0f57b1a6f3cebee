// Package nrfjprog drives the Nordic nrfjprog command line tool.
package nrfjprog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// DefaultPath is the tool looked up on PATH when NRFJPROG is not set.
const DefaultPath = "nrfjprog"

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 2 * time.Minute

// ErrRecoverFailed is returned when nrfjprog --recover does not succeed.
var ErrRecoverFailed = errors.New("recover failed")

// PathFromEnv returns $NRFJPROG or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv("NRFJPROG"); p != "" {
		return p
	}
	return DefaultPath
}

// Tool invokes nrfjprog for a single board at a time.
type Tool struct {
	// Path of the nrfjprog executable.
	Path string
	// Timeout bounds each call; zero waits indefinitely.
	Timeout time.Duration
	// Commander runs the commands; nil uses ExecCommander.
	Commander Commander
}

// New returns a Tool that runs the executable at path on the host.
func New(path string, timeout time.Duration) *Tool {
	return &Tool{Path: path, Timeout: timeout, Commander: ExecCommander{}}
}

func (t *Tool) run(ctx context.Context, args ...string) ([]byte, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	path := t.Path
	if path == "" {
		path = DefaultPath
	}
	commander := t.Commander
	if commander == nil {
		commander = ExecCommander{}
	}
	return commander.Exec(exec.CommandContext(ctx, path, args...))
}

// DeviceVersion returns the raw device version reported for the board with
// serial number snr.
func (t *Tool) DeviceVersion(ctx context.Context, snr string) (string, error) {
	out, err := t.run(ctx, "--deviceversion", "--snr", snr)
	if err != nil {
		return "", fmt.Errorf("nrfjprog --deviceversion --snr %s: %w", snr, err)
	}
	return string(out), nil
}

// Family returns the chip family of the board with serial number snr.
func (t *Tool) Family(ctx context.Context, snr string) (string, error) {
	v, err := t.DeviceVersion(ctx, snr)
	if err != nil {
		return "", err
	}
	return ParseFamily(v), nil
}

// Recover erases and unlocks the board so it can be programmed.
func (t *Tool) Recover(ctx context.Context, snr string) error {
	if _, err := t.run(ctx, "--recover", "--snr", snr); err != nil {
		return fmt.Errorf("%w: board %s: %v", ErrRecoverFailed, snr, err)
	}
	return nil
}
