package nfs

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gonfs "github.com/willscott/go-nfs"

	"rhs/docroot"
)

func newTestRoot(t *testing.T) *docroot.Root {
	t.Helper()
	fs := memfs.New()
	if err := util.WriteFile(fs, "index.html", []byte("home"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return docroot.New(fs)
}

func TestHandlerExportsReadOnly(t *testing.T) {
	h := newHandler(newTestRoot(t))

	status, fs, _ := h.Mount(context.Background(), nil, gonfs.MountRequest{})
	if status != gonfs.MountStatusOk {
		t.Fatalf("mount status=%v", status)
	}
	data, err := util.ReadFile(fs, "index.html")
	if err != nil || string(data) != "home" {
		t.Fatalf("read index.html got=%q err=%v", data, err)
	}
	if _, err := fs.Create("upload.bin"); !errors.Is(err, billy.ErrReadOnly) {
		t.Fatalf("Create err=%v want ErrReadOnly", err)
	}
	if h.Change(fs) != nil {
		t.Fatalf("exported filesystem allows attribute changes")
	}
}

func TestStartNFSD(t *testing.T) {
	ln, err := StartNFSD("127.0.0.1:0", newTestRoot(t), log.New(io.Discard, "nfsd ", 0))
	if err != nil {
		t.Fatalf("StartNFSD error: %v", err)
	}
	defer ln.Close()

	conn, err := net.DialTimeout("tcp", ln.Addr().String(), 2*time.Second)
	if err != nil {
		t.Fatalf("dial nfsd: %v", err)
	}
	conn.Close()
}
