// Package tftp exports the served directory over TFTP, read-only.
package tftp

import (
	"bytes"
	"io"
	"log"
	"net"
	"strings"
	"time"

	tftp "github.com/pin/tftp/v3"

	"rhs/docroot"
)

func readHandler(root *docroot.Root, logger *log.Logger) func(string, io.ReaderFrom) error {
	return func(filename string, rf io.ReaderFrom) error {
		name := "/" + strings.TrimLeft(strings.TrimSpace(filename), "/")
		peer := "?"
		if ot, ok := rf.(tftp.OutgoingTransfer); ok {
			addr := ot.RemoteAddr()
			peer = addr.String()
		}
		data, err := root.Lookup(name)
		if err != nil {
			logger.Printf("%s RRQ %q: %v", peer, filename, err)
			return err
		}
		if ot, ok := rf.(tftp.OutgoingTransfer); ok {
			ot.SetSize(int64(len(data)))
		}
		n, err := rf.ReadFrom(bytes.NewReader(data))
		logger.Printf("%s RRQ %q: %d bytes", peer, filename, n)
		return err
	}
}

// StartTFTPServer serves root on addr (typically ":69") with the same
// index.html fallback as HTTP. Write requests are refused. It returns once
// the socket is bound; serving continues in the background.
func StartTFTPServer(addr string, root *docroot.Root, logger *log.Logger) (*tftp.Server, net.Addr, error) {
	if addr == "" {
		addr = ":69"
	}
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, nil, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, nil, err
	}

	srv := tftp.NewServer(readHandler(root, logger), nil)
	srv.SetTimeout(5 * time.Second)

	go func() {
		logger.Printf("TFTP server listening on %s, root=%q", conn.LocalAddr(), root.Path())
		if err := srv.Serve(conn); err != nil {
			logger.Printf("TFTP server error: %v", err)
		}
	}()
	return srv, conn.LocalAddr(), nil
}
