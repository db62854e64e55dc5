// Package sockaddr implements the socket-address abstraction of spec.md
// section 4.7: a family-agnostic IPv4/IPv6 address value plus conversion
// to and from the native sockaddr representation each backend in package
// socket ultimately needs.
package sockaddr

import (
	"net"
	"net/netip"
	"strconv"

	cerrors "coreu/errors"
	"coreu/platform"
)

// Family identifies the address family.
type Family int

const (
	// FamilyUnspecified is the zero Family.
	FamilyUnspecified Family = iota
	// FamilyInet4 is IPv4.
	FamilyInet4
	// FamilyInet6 is IPv6.
	FamilyInet6
)

// Address is a family-tagged IP address and port. For IPv6, New fills
// ScopeID from a numeric zone only when
// platform.Features().SockaddrIn6HasFlowInfo is true; NewFromNative and
// ToNative carry ScopeID as the native zone id. FlowInfo is never filled
// in or passed to the native form, which has no flow-info field.
//
// Syllable required rewriting the client port to zero before connect();
// Go has no GOOS=syllable, so that workaround has no code here, just this
// note for where it would have gone.
type Address struct {
	Family   Family
	IP       net.IP
	Port     uint16
	FlowInfo uint32
	ScopeID  uint32
}

// New parses ip, auto-detecting the family: IPv6 is recognized by the
// presence of a colon, otherwise the string is parsed as IPv4. This
// mirrors the three-tier native parser (getaddrinfo / WSAStringToAddressA
// / inet_pton) by relying on Go's own numeric-address parser, which is
// itself a from-scratch inet_pton/inet_pton6 equivalent — no DNS
// resolution is ever performed, matching AI_NUMERICHOST.
func New(ip string, port uint16) (*Address, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.IOInvalidArgument, "parse address", err)
	}

	a := &Address{Port: port}
	if addr.Is4() {
		a.Family = FamilyInet4
		ip4 := addr.As4()
		a.IP = net.IP(ip4[:])
		return a, nil
	}

	a.Family = FamilyInet6
	ip16 := addr.As16()
	a.IP = net.IP(ip16[:])
	if z := addr.Zone(); z != "" && platform.Features().SockaddrIn6HasFlowInfo {
		// Zone indices are small integers on most platforms; a
		// non-numeric zone name has no native scope-id equivalent and is
		// left as zero, matching the native parser's best-effort stance.
		if id, err := strconv.ParseUint(z, 10, 32); err == nil {
			a.ScopeID = uint32(id)
		}
	}
	return a, nil
}

// NewAny returns the wildcard address (INADDR_ANY / IN6ADDR_ANY_INIT) for
// family, bound to port.
func NewAny(family Family, port uint16) *Address {
	switch family {
	case FamilyInet6:
		return &Address{Family: FamilyInet6, IP: net.IPv6unspecified, Port: port}
	default:
		return &Address{Family: FamilyInet4, IP: net.IPv4zero.To4(), Port: port}
	}
}

// NewLoopback returns the loopback address (INADDR_LOOPBACK /
// IN6ADDR_LOOPBACK_INIT) for family, bound to port.
func NewLoopback(family Family, port uint16) *Address {
	switch family {
	case FamilyInet6:
		return &Address{Family: FamilyInet6, IP: net.IPv6loopback, Port: port}
	default:
		return &Address{Family: FamilyInet4, IP: net.IPv4(127, 0, 0, 1).To4(), Port: port}
	}
}

// String renders the address the way net.JoinHostPort would.
func (a *Address) String() string {
	return net.JoinHostPort(a.IP.String(), strconv.Itoa(int(a.Port)))
}
