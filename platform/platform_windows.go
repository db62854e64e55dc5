//go:build windows

package platform

func init() {
	osFamily = Windows
	features = FeatureSet{
		HasPosixScheduling:     false,
		SockaddrIn6HasFlowInfo: true,
		HasGetAddrInfo:         true,
		HasSockCloexec:         false,
		HasSoNoSigpipe:         false,
		HasSoReuseport:         false,
		HasPoll:                false, // WSAEventSelect backend per spec.md section 4.6.
	}
}
