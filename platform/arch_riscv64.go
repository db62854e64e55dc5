//go:build riscv64

package platform

import "encoding/binary"

func init() {
	cpuFamily = RISCV64
	wordSize = 64
	nativeByteOrder = binary.LittleEndian
}
