// Package document extracts plain text from resume files.
package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"jobscout/internal/errors"
	"jobscout/internal/utils"
)

// Extractor reads resume documents and returns their text content.
type Extractor struct {
	maxFileSize int64
	logger      *errors.Logger
}

// NewExtractor creates a document extractor. maxFileSize bounds the size of
// files it will read; zero or negative disables the bound.
func NewExtractor(maxFileSize int64, logger *errors.Logger) *Extractor {
	return &Extractor{maxFileSize: maxFileSize, logger: logger}
}

// ExtractText returns the plain text content of the file at path.
// Only PDF input is accepted; the extension is checked before any read
// so unsupported formats fail fast.
func (e *Extractor) ExtractText(path string) (string, error) {
	ext := utils.GetFileExtension(path)
	if ext != ".pdf" {
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported resume format %q, only .pdf is accepted", ext), nil).
			WithContext("path", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", path), err)
		}
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot access file: %s", path), err)
	}

	if e.maxFileSize > 0 && info.Size() > e.maxFileSize {
		return "", errors.NewValidationError("FILE_TOO_LARGE",
			fmt.Sprintf("File %s exceeds the maximum size of %s", path, utils.FormatFileSize(e.maxFileSize)), nil).
			WithContext("size", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file: %s", path), err)
	}

	text, err := extractPDF(data)
	if err != nil {
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Failed to extract text from PDF: %s", path), err)
	}

	if strings.TrimSpace(text) == "" {
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("PDF contains no extractable text: %s", path), nil)
	}

	if e.logger != nil {
		e.logger.Debug("Extracted resume text",
			"path", path,
			"file_size", utils.FormatFileSize(info.Size()),
			"text_length", len(text))
	}

	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	var buf bytes.Buffer
	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	if _, err := io.Copy(&buf, plainText); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	return buf.String(), nil
}
