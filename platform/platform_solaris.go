//go:build solaris || illumos

package platform

func init() {
	osFamily = Solaris
	features = FeatureSet{
		HasPosixScheduling:     true,
		SockaddrIn6HasFlowInfo: true,
		HasGetAddrInfo:         true,
		HasSockCloexec:         false,
		HasSoNoSigpipe:         false,
		HasSoReuseport:         false,
		HasPoll:                true,
	}
}
