//go:build amd64

package platform

import "encoding/binary"

func init() {
	cpuFamily = X86_64
	wordSize = 64
	nativeByteOrder = binary.LittleEndian
}
