//go:build freebsd || netbsd || openbsd || dragonfly

package platform

import "runtime"

func init() {
	switch runtime.GOOS {
	case "freebsd":
		osFamily = FreeBSD
	case "netbsd":
		osFamily = NetBSD
	case "openbsd":
		osFamily = OpenBSD
	case "dragonfly":
		osFamily = DragonFly
	}
	features = FeatureSet{
		HasPosixScheduling:     true,
		SockaddrIn6HasFlowInfo: true,
		HasGetAddrInfo:         true,
		HasSockCloexec:         true,
		HasSoNoSigpipe:         true,
		HasSoReuseport:         runtime.GOOS == "freebsd",
		HasPoll:                true,
	}
}
