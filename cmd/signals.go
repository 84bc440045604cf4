package cmd

import (
	"os"
	"syscall"
)

// TerminationSignals are those signals which namei considers to be requesting
// termination. Certain other signals that also request termination (such as
// SIGABRT) are intentionally ignored because they're handled by the Go runtime
// and have special behavior (such as dumping a stack trace).
var TerminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}
