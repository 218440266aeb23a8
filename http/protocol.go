// Package httpx is a deliberately small HTTP/1.1 file server: one request
// per connection, GET only, one connection at a time.
package httpx

import "errors"

// ServerName goes into the Server header and the canned error bodies.
const ServerName = "rhs/0.1"

const (
	StatusOK             = "200 OK"
	StatusBadRequest     = "400 Bad Request"
	StatusNotFound       = "404 Not Found"
	StatusNotImplemented = "501 Not Implemented"
)

// ErrMalformedRequest is returned for a request or header line with fewer
// than two whitespace-separated fields.
var ErrMalformedRequest = errors.New("httpx: malformed request")

// Header holds a single value per name, unlike http.Header.
type Header map[string]string

type Kind int

const (
	KindGet Kind = iota
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindGet:
		return "GET"
	case KindUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// Request is either a GET carrying the raw request-target and headers, or
// an unsupported method with nothing else attached.
type Request struct {
	Kind    Kind
	Path    string
	Headers Header
}

type Response struct {
	Status  string
	Headers Header
	Body    []byte
}

// statusBody is the body sent with 400, 404 and 501.
func statusBody(status string) []byte {
	return []byte(status + "\n" + ServerName)
}

// errorResponse is a canned response carrying the Server header.
func errorResponse(status string) *Response {
	return &Response{
		Status:  status,
		Headers: Header{"Server": ServerName},
		Body:    statusBody(status),
	}
}
