//go:build aix

package platform

func init() {
	osFamily = AIX
	features = FeatureSet{
		HasPosixScheduling:     true,
		SockaddrIn6HasFlowInfo: false,
		HasGetAddrInfo:         true,
		HasSockCloexec:         false,
		HasSoNoSigpipe:         false,
		HasSoReuseport:         false,
		HasPoll:                true,
	}
}
