//go:build 386

package platform

import "encoding/binary"

func init() {
	cpuFamily = X86_32
	wordSize = 32
	nativeByteOrder = binary.LittleEndian
}
