package parser

import (
	"bytes"
	"io"
	"os/exec"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ExtractTextFromPDF reads the text layer of a PDF. If the library finds no
// text it falls back to the pdftotext CLI when available.
func ExtractTextFromPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	b, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(&buf, b); err != nil {
		return "", err
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		if out, err := exec.Command("pdftotext", "-layout", path, "-").Output(); err == nil {
			return string(out), nil
		}
	}
	return text, nil
}
