package signalhandler

import (
	"os"
	"os/signal"
	"syscall"

	"snapdedup/logging"
)

// SetupHandler terminates the process on SIGINT/SIGTERM.
// OpenCV calls run in cgo and cannot be interrupted, so a run is never
// cancelled cooperatively; files already moved stay moved.
func SetupHandler() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logging.LogWarning("Received %v, stopping", sig)
		logging.CloseLogger()
		os.Exit(ExitCode(sig))
	}()
}

// ExitCode maps a terminating signal to the conventional shell status
func ExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
