package signalhandler

import (
	"os"
	"syscall"
	"testing"
)

func TestExitCode(t *testing.T) {
	if got := ExitCode(syscall.SIGINT); got != 130 {
		t.Fatalf("SIGINT exit code = %d, want 130", got)
	}
	if got := ExitCode(syscall.SIGTERM); got != 143 {
		t.Fatalf("SIGTERM exit code = %d, want 143", got)
	}
	if got := ExitCode(os.Interrupt); got != 130 {
		t.Fatalf("os.Interrupt exit code = %d, want 130", got)
	}
}
