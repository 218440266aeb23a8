//go:build linux

package httpx

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// listenControl sets TCP_DEFER_ACCEPT, so a client that connects and then
// sends nothing stays in the kernel instead of blocking the accept loop.
func listenControl(network, address string, c syscall.RawConn) error {
	var serr error
	if err := c.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_DEFER_ACCEPT, deferAccept)
	}); err != nil {
		return err
	}
	return serr
}
