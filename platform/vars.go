package platform

import "encoding/binary"

// These package-level variables are populated by exactly one build-tag
// gated init() per (OS, width) cell — see platform_*.go and arch_*.go.
// A host Go cannot target collapses to the zero values (Unknown,
// CPUUnknown), set explicitly by platform_other.go / arch_other.go so the
// "every host lands in exactly one family" contract holds by construction
// rather than by omission.
var (
	osFamily        OSFamily
	cpuFamily       CPUFamily
	wordSize        int
	nativeByteOrder binary.ByteOrder = binary.LittleEndian
	features        FeatureSet
)
