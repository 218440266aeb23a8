package httpx

import "rhs/docroot"

// Resolve maps a request-target onto root. Any failure to read, including
// a directory without an index.html, is reported as 404.
func Resolve(root *docroot.Root, path string) (string, []byte) {
	body, err := root.Lookup(path)
	if err != nil {
		return StatusNotFound, statusBody(StatusNotFound)
	}
	return StatusOK, body
}
