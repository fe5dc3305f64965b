package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rpdf "rsc.io/pdf"
)

// MaxAttachmentChars limits how much extracted text per attachment is fed
// into scoring.
const MaxAttachmentChars = 2000

// ExtractPDFText pulls the plain text out of a PDF document. The parser
// panics on some malformed files, so recover and surface an error instead.
func ExtractPDFText(content []byte) (text string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("pdf parser panic: %v", recovered)
			text = ""
		}
	}()

	reader, err := rpdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		for _, fragment := range page.Content().Text {
			builder.WriteString(fragment.S)
			builder.WriteString(" ")
		}
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// ExtractAttachmentText reads a stored attachment and returns its plain
// text. PDF files go through the PDF parser; anything else is treated as
// plain text. Callers feeding the scorer truncate to MaxAttachmentChars.
func ExtractAttachmentText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ExtractPDFText(content)
	}
	return string(content), nil
}

// TruncateText caps s at max characters
func TruncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
