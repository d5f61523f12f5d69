package process

// Notes:
// - KillProcessGroup is only exercised with an invalid PID. Real group kills
//   are covered by TestRun_Cancelled, which cancels a running sleep.
// - Run tests rely on POSIX tools (sh, sleep) and skip on Windows.

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	// Must not panic. PID 0 or real PIDs cannot be tested safely.
	KillProcessGroup(999999999)
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires POSIX shell")
	}
}

func TestRun_Success(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	out, err := Run(context.Background(), "sh", "-c", "echo compiled")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "compiled" {
		t.Errorf("output = %q, want %q", out, "compiled")
	}
}

func TestRun_Failure(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	_, err := Run(context.Background(), "sh", "-c", "echo broken scss >&2; exit 3")
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("error = %v, want ErrCommandFailed", err)
	}
	if !strings.Contains(err.Error(), "broken scss") {
		t.Errorf("error %q should include command output", err)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), "definitely-not-a-real-compiler-xyz")
	if !errors.Is(err, ErrCommandFailed) {
		t.Errorf("error = %v, want ErrCommandFailed", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Run(ctx, "sh", "-c", "sleep 10")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Run did not stop promptly after cancellation")
	}
}
