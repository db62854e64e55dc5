//go:build windows

package cmd

// coreuInit stands in for the original library's process-wide init call.
// Windows needs no SIGPIPE handling and Winsock is initialized lazily by
// golang.org/x/sys/windows itself, so this is a no-op kept only so both
// platforms share one call site in main.
func coreuInit() func() {
	return func() {}
}
