//go:build darwin

package platform

func init() {
	osFamily = Darwin
	features = FeatureSet{
		HasPosixScheduling:     true,
		SockaddrIn6HasFlowInfo: true,
		HasGetAddrInfo:         true,
		HasSockCloexec:         false, // Darwin has no SOCK_CLOEXEC; FD_CLOEXEC is set explicitly.
		HasSoNoSigpipe:         true,
		HasSoReuseport:         true,
		HasPoll:                false, // select(2) backend per spec.md section 4.6.
	}
}
