//go:build !pdfcpu

package pdf

import "errors"

// ErrPDFDisabled is returned when pdfcpu-backed extraction is not compiled
// into the build.
var ErrPDFDisabled = errors.New("pdfcpu extraction disabled")

// ExtractAllTextCapped is the stub for default builds. The pdfcpu-backed
// implementation lives in simple.go behind the "pdfcpu" build tag.
func ExtractAllTextCapped(path string, pageCap, perPageCap int) (string, error) {
	return "", ErrPDFDisabled
}
