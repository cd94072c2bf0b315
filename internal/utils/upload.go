package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrFileTooLarge is returned when an uploaded file exceeds the allowed size.
var ErrFileTooLarge = errors.New("uploaded file is too large")

// UploadedFile is a multipart file opened for reading.
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.ReadCloser
}

// OptionalFormFile opens the named multipart file if the client sent one.
// A missing field is not an error; the returned file is nil.
func OptionalFormFile(c *gin.Context, field string, maxSize int64) (*UploadedFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read form file %s: %w", field, err)
	}
	return openHeader(header, maxSize)
}

func openHeader(header *multipart.FileHeader, maxSize int64) (*UploadedFile, error) {
	if maxSize > 0 && header.Size > maxSize {
		return nil, ErrFileTooLarge
	}
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	return &UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      f,
	}, nil
}
