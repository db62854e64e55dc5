// coreu is a demo CLI over the named-semaphore, shared-memory, ring-buffer,
// socket, dynamic-loader, and INI-parser primitives of the coreu library.
//
// Commands:
//
//	sema acquire  - create/open a named semaphore, acquire then release it
//	shm write     - create/open a shared-memory segment and write into it
//	shm read      - open a shared-memory segment and print its contents
//	ring write    - create/open a ring buffer and write into it
//	ring read     - open a ring buffer and drain its contents
//	socket listen - bind, listen, accept one connection, echo received lines
//	socket send   - connect and send one line of text
//	dl            - load a shared library and resolve a symbol
//	ini           - parse an INI file and print its sections and keys
//	version       - print version information
package main

import (
	"fmt"
	"os"

	"coreu/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
