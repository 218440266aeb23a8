package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"rhs/config"
	"rhs/console"
	"rhs/docroot"
	"rhs/utils"
)

// lingerTimeout bounds how long a closing connection waits for the peer to
// finish sending after the response went out. Every connection whose peer
// keeps its side open pays this in full before the next one is accepted.
const lingerTimeout = 500 * time.Millisecond

// deferAccept is how long, in seconds, the kernel may hold a connection that
// has sent nothing before handing it to Accept.
const deferAccept = 10

// Server answers one connection at a time. A client that never finishes its
// request holds up everyone else unless ReadTimeout is set.
type Server struct {
	Config config.Config
	Root   *docroot.Root
	Log    console.Logger
	// ReadTimeout limits how long reading a request may take, and then
	// again how long writing the response may take. Zero means no limit.
	ReadTimeout time.Duration

	mu     sync.Mutex
	ln     net.Listener
	closed bool
}

// NewServer serves cfg.Directory, which must already be resolved.
func NewServer(cfg config.Config, log console.Logger) *Server {
	return &Server{
		Config: cfg,
		Root:   docroot.Dir(cfg.Directory),
		Log:    log,
	}
}

// ListenAndServe binds 127.0.0.1 on the configured port and serves until
// Close is called. A bind failure is logged and returned.
func (s *Server) ListenAndServe() error {
	addr := utils.LoopbackAddr(s.Config.Port)
	ln, err := listen(addr)
	if err != nil {
		s.Log.Error(fmt.Sprintf("could not bind to %s", addr))
		return fmt.Errorf("httpx: bind %s: %w", addr, err)
	}
	if !s.track(ln) {
		return nil
	}
	s.Log.Done(fmt.Sprintf("serving `%s` on port `%d`", s.Config.Directory, utils.PortOf(ln.Addr())))
	return s.Serve(ln)
}

// Serve accepts connections on ln and handles each one to completion before
// accepting the next. Errors on a single connection are logged and never
// stop the loop. Serve returns nil once ln is closed, or at once if Close
// was already called.
func (s *Server) Serve(ln net.Listener) error {
	if !s.track(ln) {
		return nil
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.Log.Error("could not accept connection")
			continue
		}
		if err := s.handleConn(conn); err != nil {
			s.Log.Error(err.Error())
		}
	}
}

// listen binds addr with the kernel options set by listenControl.
func listen(addr string) (net.Listener, error) {
	lc := net.ListenConfig{Control: listenControl}
	return lc.Listen(context.Background(), "tcp", addr)
}

// track records ln as the listener Close shuts. It closes ln and reports
// false if Close got there first.
func (s *Server) track(ln net.Listener) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		ln.Close()
		return false
	}
	s.ln = ln
	return true
}

// Close stops Serve. Called before the server starts, it keeps it from
// serving at all.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) handleConn(conn net.Conn) error {
	defer closeConn(conn)

	id := uuid.New()
	s.Log.Info(fmt.Sprintf("got connection from %s (%s)", conn.RemoteAddr(), id))

	if s.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return fmt.Errorf("connection %s: %w", id, err)
		}
	}

	req, err := ReadRequest(conn)
	if errors.Is(err, ErrMalformedRequest) {
		s.Log.Error(fmt.Sprintf("connection %s: %v", id, err))
		return s.write(id, conn, errorResponse(StatusBadRequest))
	}
	if err != nil {
		return fmt.Errorf("connection %s: read request: %w", id, err)
	}

	if req.Kind == KindUnsupported {
		return s.write(id, conn, errorResponse(StatusNotImplemented))
	}

	// GET responses carry the request's own headers back, not the Server
	// header the error responses get.
	status, body := Resolve(s.Root, req.Path)
	return s.write(id, conn, &Response{
		Status:  status,
		Headers: req.Headers,
		Body:    body,
	})
}

func (s *Server) write(id uuid.UUID, conn net.Conn, res *Response) error {
	if s.ReadTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return fmt.Errorf("connection %s: %w", id, err)
		}
	}
	if err := WriteResponse(conn, res); err != nil {
		return fmt.Errorf("connection %s: write response: %w", id, err)
	}
	return nil
}

// closeConn shuts down the write side first and drains what the peer still
// sends, so unread request bytes do not turn the close into a reset that
// discards the response.
func closeConn(conn net.Conn) {
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		if cw.CloseWrite() == nil {
			_ = conn.SetReadDeadline(time.Now().Add(lingerTimeout))
			_, _ = io.Copy(io.Discard, io.LimitReader(conn, 64<<10))
		}
	}
	conn.Close()
}
