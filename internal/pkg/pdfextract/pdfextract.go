// Package pdfextract pulls plain text out of PDF documents.
package pdfextract

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// Text reads all of r and returns the PDF's extractable plain text.
// An empty document yields an empty string and no error.
func Text(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
