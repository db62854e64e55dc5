// Package platform is the compile-time classification layer every other
// coreu component reads to decide which backend to compile against: OS
// family, CPU family, word size, byte order, and a handful of availability
// flags. Each (OSFamily, CPUFamily) cell is resolved by exactly one
// build-tag-gated file, mirroring the one-translation-unit-per-platform
// idiom used throughout the original C library and, in this Go rendition,
// the per-GOOS/GOARCH runtime files of the toolchain this pattern was
// learned from.
package platform

import "encoding/binary"

// OSFamily is the operating-system family a host belongs to. Every
// Go-buildable host lands in exactly one family; hosts spec.md names that
// Go cannot target (OS/2, BeOS/Haiku, OpenVMS, Syllable, HP-UX, IRIX, QNX,
// Tru64) collapse to Unknown rather than being silently misclassified.
type OSFamily int

const (
	Unknown OSFamily = iota
	Windows
	Linux
	Darwin
	FreeBSD
	NetBSD
	OpenBSD
	DragonFly
	Solaris
	AIX
)

func (f OSFamily) String() string {
	switch f {
	case Windows:
		return "windows"
	case Linux:
		return "linux"
	case Darwin:
		return "darwin"
	case FreeBSD:
		return "freebsd"
	case NetBSD:
		return "netbsd"
	case OpenBSD:
		return "openbsd"
	case DragonFly:
		return "dragonfly"
	case Solaris:
		return "solaris"
	case AIX:
		return "aix"
	default:
		return "unknown"
	}
}

// IsUnix reports whether the family is implied by "any non-Windows/OS2/BeOS/
// Haiku/VMS family" per spec.md section 4.11 — every family in this closed
// enum other than Windows and Unknown is a UNIX.
func (f OSFamily) IsUnix() bool {
	return f != Windows && f != Unknown
}

// CPUFamily is the CPU architecture family a host belongs to, with
// sub-levels (32/64-bit) folded into distinct constants the way the
// original library's ARM/MIPS/x86 sub-levels are.
type CPUFamily int

const (
	CPUUnknown CPUFamily = iota
	X86_32
	X86_64
	ARM32
	ARM64
	MIPS32
	MIPS64
	PPC64
	RISCV64
	S390X
)

func (c CPUFamily) String() string {
	switch c {
	case X86_32:
		return "x86_32"
	case X86_64:
		return "x86_64"
	case ARM32:
		return "arm32"
	case ARM64:
		return "arm64"
	case MIPS32:
		return "mips32"
	case MIPS64:
		return "mips64"
	case PPC64:
		return "ppc64"
	case RISCV64:
		return "riscv64"
	case S390X:
		return "s390x"
	default:
		return "unknown"
	}
}

// FeatureSet is the set of availability flags the rest of coreu gates
// backend choices on, per spec.md section 2 row 1.
type FeatureSet struct {
	// HasPosixScheduling reports whether sched_* POSIX scheduling calls
	// are available.
	HasPosixScheduling bool
	// SockaddrIn6HasFlowInfo reports whether sockaddr_in6 exposes
	// sin6_flowinfo/sin6_scope_id.
	SockaddrIn6HasFlowInfo bool
	// HasGetAddrInfo reports whether getaddrinfo is usable for address
	// resolution.
	HasGetAddrInfo bool
	// HasSockCloexec reports whether SOCK_CLOEXEC can be OR'd into the
	// socket() type argument directly.
	HasSockCloexec bool
	// HasSoNoSigpipe reports whether SO_NOSIGPIPE is a settable socket
	// option (BSD family) as opposed to requiring MSG_NOSIGNAL per-call.
	HasSoNoSigpipe bool
	// HasSoReuseport reports whether SO_REUSEPORT is defined.
	HasSoReuseport bool
	// HasPoll reports whether the poll(2)-based io_condition_wait backend
	// should be used in preference to select(2).
	HasPoll bool
}

// OS returns the OS family of the host this binary was built for.
func OS() OSFamily { return osFamily }

// CPU returns the CPU family of the host this binary was built for.
func CPU() CPUFamily { return cpuFamily }

// WordSize returns the native pointer width in bits (32 or 64).
func WordSize() int { return wordSize }

// ByteOrder returns the host's native byte order.
func ByteOrder() binary.ByteOrder { return nativeByteOrder }

// Features returns the availability flags for the host this binary was
// built for.
func Features() FeatureSet { return features }
