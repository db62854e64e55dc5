//go:build ppc64 || ppc64le

package platform

import (
	"encoding/binary"
	"runtime"
)

func init() {
	cpuFamily = PPC64
	wordSize = 64
	if runtime.GOARCH == "ppc64le" {
		nativeByteOrder = binary.LittleEndian
	} else {
		nativeByteOrder = binary.BigEndian
	}
}
