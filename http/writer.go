package httpx

import (
	"fmt"
	"io"
	"slices"
)

// WriteResponse writes the status line, the headers in key order, a blank
// line and the body. No Content-Length is sent; the body ends when the
// connection does. The first failed write aborts the rest.
func WriteResponse(w io.Writer, res *Response) error {
	if _, err := fmt.Fprintf(w, "HTTP/1.1 %s\r\n", res.Status); err != nil {
		return err
	}
	keys := make([]string, 0, len(res.Headers))
	for k := range res.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", k, res.Headers[k]); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return err
	}
	_, err := w.Write(res.Body)
	return err
}
