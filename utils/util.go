package utils

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ParsePort parses a decimal TCP/UDP port number. A single leading '+' is
// allowed.
func ParsePort(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	return uint16(v), nil
}

// LoopbackAddr is the address the HTTP server binds to.
func LoopbackAddr(port uint16) string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(int(port)))
}

// PortOf returns the port of a TCP or UDP address, 0 for anything else.
func PortOf(addr net.Addr) uint16 {
	switch a := addr.(type) {
	case *net.TCPAddr:
		return uint16(a.Port)
	case *net.UDPAddr:
		return uint16(a.Port)
	}
	_, p, err := net.SplitHostPort(addr.String())
	if err != nil {
		return 0
	}
	v, _ := ParsePort(p)
	return v
}
