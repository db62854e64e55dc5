//go:build !windows

package cmd

import (
	"os/signal"
	"syscall"
)

// coreuInit stands in for the original library's process-wide init call:
// on POSIX it ignores SIGPIPE so a peer closing a socket mid-write reports
// through a normal error return instead of killing the process, matching
// the behavior socket.Socket already assumes when SO_NOSIGPIPE isn't
// available.
func coreuInit() func() {
	signal.Ignore(syscall.SIGPIPE)
	return func() {}
}
