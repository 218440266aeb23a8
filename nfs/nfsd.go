// Package nfs exports the served directory over NFSv3, read-only.
package nfs

import (
	"log"
	"net"

	gonfs "github.com/willscott/go-nfs"
	nfshelper "github.com/willscott/go-nfs/helpers"

	"rhs/docroot"
)

// handleCacheSize is the number of file handles kept by the caching handler.
const handleCacheSize = 1024

func newHandler(root *docroot.Root) gonfs.Handler {
	return nfshelper.NewCachingHandler(nfshelper.NewNullAuthHandler(root.ReadOnly()), handleCacheSize)
}

// StartNFSD runs an NFSv3 server over TCP on addr (typically ":2049") with
// AUTH_NULL and no write access. Clients mount it with the port given
// explicitly, since no portmapper is registered.
func StartNFSD(addr string, root *docroot.Root, logger *log.Logger) (net.Listener, error) {
	if addr == "" {
		addr = ":2049"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	handler := newHandler(root)
	go func() {
		if logger != nil {
			logger.Printf("nfsd v3 listening on %s base=%q", ln.Addr(), root.Path())
		}
		if err := gonfs.Serve(ln, handler); err != nil {
			if logger != nil {
				logger.Printf("nfsd serve error: %v", err)
			}
		}
	}()
	return ln, nil
}
