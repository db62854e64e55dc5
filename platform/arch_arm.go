//go:build arm

package platform

import "encoding/binary"

func init() {
	cpuFamily = ARM32
	wordSize = 32
	nativeByteOrder = binary.LittleEndian
}
