//go:build mips || mipsle || mips64 || mips64le

package platform

import (
	"encoding/binary"
	"runtime"
)

func init() {
	switch runtime.GOARCH {
	case "mips", "mipsle":
		cpuFamily = MIPS32
		wordSize = 32
	case "mips64", "mips64le":
		cpuFamily = MIPS64
		wordSize = 64
	}
	if runtime.GOARCH == "mipsle" || runtime.GOARCH == "mips64le" {
		nativeByteOrder = binary.LittleEndian
	} else {
		nativeByteOrder = binary.BigEndian
	}
}
