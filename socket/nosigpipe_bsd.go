//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package socket

import "golang.org/x/sys/unix"

const soNoSigpipe = unix.SO_NOSIGPIPE
