//go:build linux

package platform

func init() {
	osFamily = Linux
	features = FeatureSet{
		HasPosixScheduling:     true,
		SockaddrIn6HasFlowInfo: true,
		HasGetAddrInfo:         true,
		HasSockCloexec:         true,
		HasSoNoSigpipe:         false, // Linux has no SO_NOSIGPIPE; sends do not pass MSG_NOSIGNAL either.
		HasSoReuseport:         true,
		HasPoll:                true,
	}
}
