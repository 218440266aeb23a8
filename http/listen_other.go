//go:build !linux

package httpx

import "syscall"

func listenControl(network, address string, c syscall.RawConn) error {
	return nil
}
