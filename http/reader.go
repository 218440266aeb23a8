package httpx

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// oneByteReader reads from an unbuffered stream a single byte at a time, so
// nothing past the current line is consumed.
type oneByteReader struct {
	r   io.Reader
	buf [1]byte
}

func (b *oneByteReader) ReadByte() (byte, error) {
	for {
		n, err := b.r.Read(b.buf[:])
		if n == 1 {
			return b.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

func byteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &oneByteReader{r: r}
}

// readLine reads up to the next '\n' into buf, which is reset first. Every
// '\r' is dropped, wherever it appears. It returns the number of bytes kept.
// There is no length limit.
func readLine(r io.ByteReader, buf *bytes.Buffer) (int, error) {
	buf.Reset()
	for {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && buf.Len() > 0 {
				err = io.ErrUnexpectedEOF
			}
			return buf.Len(), err
		}
		switch c {
		case '\n':
			return buf.Len(), nil
		case '\r':
		default:
			buf.WriteByte(c)
		}
	}
}

type parseState int

const (
	stateReadInitial parseState = iota
	stateReadHeaders
)

// twoFields returns the first two whitespace-separated fields of line.
// Anything after them is ignored.
func twoFields(line string) (string, string, bool) {
	fs := strings.Fields(line)
	if len(fs) < 2 {
		return "", "", false
	}
	return fs[0], fs[1], true
}

// ReadRequest reads a request line and headers up to the first blank line.
//
// Header lines are split on whitespace like the request line, so "Host:
// example.com" is stored under "Host:" and a value stops at its first
// space. A repeated header keeps its last value.
func ReadRequest(r io.Reader) (*Request, error) {
	br := byteReader(r)

	var (
		method, path string
		headers      = Header{}
		line         bytes.Buffer
	)
	for state := stateReadInitial; ; {
		if _, err := readLine(br, &line); err != nil {
			return nil, err
		}

		switch state {
		case stateReadInitial:
			m, p, ok := twoFields(line.String())
			if !ok {
				return nil, fmt.Errorf("%w: request line %q", ErrMalformedRequest, line.String())
			}
			method, path = m, p
			state = stateReadHeaders
		case stateReadHeaders:
			if line.Len() == 0 {
				if method != "GET" {
					return &Request{Kind: KindUnsupported}, nil
				}
				return &Request{Kind: KindGet, Path: path, Headers: headers}, nil
			}
			k, v, ok := twoFields(line.String())
			if !ok {
				return nil, fmt.Errorf("%w: header line %q", ErrMalformedRequest, line.String())
			}
			headers[k] = v
		}
	}
}
