// CLAUDE:SUMMARY Error taxonomy — validation errors are distinguishable from decode/processing errors.
package measure

import "errors"

var (
	// ErrTooLarge rejects an input before decoding. A validation error,
	// not a processing error.
	ErrTooLarge = errors.New("file too large")

	// ErrNotPDF rejects an upload whose name or content is not a PDF.
	ErrNotPDF = errors.New("not a PDF file")
)
