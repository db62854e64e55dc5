//go:build s390x

package platform

import "encoding/binary"

func init() {
	cpuFamily = S390X
	wordSize = 64
	nativeByteOrder = binary.BigEndian
}
