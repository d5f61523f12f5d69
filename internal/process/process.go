// Package process runs external tools (the stylesheet compiler) so that
// cancelling the build also stops the tool and every child it spawned.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCommandFailed indicates the external command exited unsuccessfully.
var ErrCommandFailed = errors.New("external command failed")

// Run executes name with args and returns its combined output.
// On context cancellation the whole process group is killed.
func Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return out.Bytes(), ctx.Err()
		}
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			return out.Bytes(), fmt.Errorf("%w: %s: %v", ErrCommandFailed, name, err)
		}
		return out.Bytes(), fmt.Errorf("%w: %s: %v: %s", ErrCommandFailed, name, err, msg)
	}
	return out.Bytes(), nil
}
