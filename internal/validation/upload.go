// Package validation checks uploaded files before they reach storage.
package validation

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var ErrInvalidMimeType = errors.New("unsupported file type")
var ErrTooManyFiles = errors.New("too many files")

// PendingImage is a validated upload awaiting persistence. The caller
// owns Data and must close it.
type PendingImage struct {
	Filename string
	MimeType string
	Data     multipart.File
}

// ValidateImages opens each uploaded file, checks its MIME type
// against the allow-list and confirms it actually decodes as an image
// (header probe only, the full pixel data is never decoded here).
func ValidateImages(fileHeaders []*multipart.FileHeader, allowedMimes []string, maxCount int) ([]*PendingImage, error) {
	if len(fileHeaders) == 0 {
		return nil, nil
	}
	if maxCount > 0 && len(fileHeaders) > maxCount {
		return nil, fmt.Errorf("%w: at most %d per request", ErrTooManyFiles, maxCount)
	}

	allowed := make(map[string]bool, len(allowedMimes))
	for _, m := range allowedMimes {
		allowed[m] = true
	}

	var pending []*PendingImage
	closeAll := func() {
		for _, p := range pending {
			p.Data.Close()
		}
	}

	for _, fileHeader := range fileHeaders {
		mimeType, err := DetectMimeType(fileHeader)
		if err != nil {
			closeAll()
			return nil, err
		}
		if !allowed[mimeType] {
			closeAll()
			return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
		}

		file, err := fileHeader.Open()
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		if _, _, err := image.DecodeConfig(file); err != nil {
			file.Close()
			closeAll()
			return nil, fmt.Errorf("%w: %s does not decode as an image", ErrInvalidMimeType, fileHeader.Filename)
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			file.Close()
			closeAll()
			return nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
		}

		pending = append(pending, &PendingImage{
			Filename: fileHeader.Filename,
			MimeType: mimeType,
			Data:     file,
		})
	}

	return pending, nil
}

// DetectMimeType reads the declared Content-Type, falling back to the
// filename extension when the header is missing or generic.
func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		mimeType = mime.TypeByExtension(ext)
	}
	if mimeType == "" {
		return "", fmt.Errorf("%w: cannot determine type of %s", ErrInvalidMimeType, fileHeader.Filename)
	}
	// strip parameters like "; charset="
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType, nil
}
