//go:build windows

package sockaddr

import (
	"net"

	"golang.org/x/sys/windows"

	cerrors "coreu/errors"
)

// NewFromNative reads the family off a raw sockaddr and copies its
// payload, converting the port out of network byte order, per spec.md
// section 4.7. Only AF_INET and AF_INET6 are understood.
func NewFromNative(sa windows.Sockaddr) (*Address, error) {
	switch v := sa.(type) {
	case *windows.SockaddrInet4:
		return &Address{
			Family: FamilyInet4,
			IP:     net.IP(v.Addr[:]),
			Port:   uint16(v.Port),
		}, nil
	case *windows.SockaddrInet6:
		return &Address{
			Family:  FamilyInet6,
			IP:      net.IP(v.Addr[:]),
			Port:    uint16(v.Port),
			ScopeID: v.ZoneId,
		}, nil
	default:
		return nil, cerrors.New(cerrors.IONotSupported, "unsupported sockaddr family")
	}
}

// ToNative converts a into the golang.org/x/sys/windows.Sockaddr form
// WSA calls expect.
func (a *Address) ToNative() (windows.Sockaddr, error) {
	switch a.Family {
	case FamilyInet4:
		ip4 := a.IP.To4()
		if ip4 == nil {
			return nil, cerrors.New(cerrors.IOInvalidArgument, "address is not IPv4")
		}
		sa := &windows.SockaddrInet4{Port: int(a.Port)}
		copy(sa.Addr[:], ip4)
		return sa, nil
	case FamilyInet6:
		ip16 := a.IP.To16()
		if ip16 == nil {
			return nil, cerrors.New(cerrors.IOInvalidArgument, "address is not IPv6")
		}
		sa := &windows.SockaddrInet6{Port: int(a.Port), ZoneId: a.ScopeID}
		copy(sa.Addr[:], ip16)
		return sa, nil
	default:
		return nil, cerrors.New(cerrors.IOInvalidArgument, "address has no family")
	}
}
