//go:build !amd64 && !386 && !arm64 && !arm && !mips && !mipsle && !mips64 && !mips64le && !ppc64 && !ppc64le && !riscv64 && !s390x

package platform

import (
	"encoding/binary"
	"runtime"
)

// Fallback cell for any GOARCH this library has not been taught yet.
// wordSize still reflects the real pointer width via runtime.GOARCH's
// *64 suffix convention so callers get a sane value even for an
// unclassified CPUFamily.
func init() {
	cpuFamily = CPUUnknown
	wordSize = 32
	if len(runtime.GOARCH) >= 2 && runtime.GOARCH[len(runtime.GOARCH)-2:] == "64" {
		wordSize = 64
	}
	nativeByteOrder = binary.LittleEndian
}
