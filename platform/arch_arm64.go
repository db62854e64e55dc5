//go:build arm64

package platform

import "encoding/binary"

func init() {
	cpuFamily = ARM64
	wordSize = 64
	nativeByteOrder = binary.LittleEndian
}
