package handlers

import (
	"errors"
	"fmt"

	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// respondCommonError handles errors every service can return.
// It reports whether a response was written.
func respondCommonError(c *gin.Context, err error) bool {
	var fields services.FieldErrors
	switch {
	case errors.As(err, &fields):
		apierrors.ValidationFailed(c, "", fields)
	case errors.Is(err, services.ErrAuthenticationRequired):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrAdminRequired):
		apierrors.Forbidden(c, "Admin access required")
	default:
		return false
	}
	return true
}

// formFile opens an optional multipart file and writes a 400 when it is unusable.
// The second result is false when a response was written.
func formFile(c *gin.Context, field string, maxSize int64) (*services.FileUpload, func(), bool) {
	file, err := utils.OptionalFormFile(c, field, maxSize)
	if err != nil {
		if errors.Is(err, utils.ErrFileTooLarge) {
			apierrors.BadRequest(c, fmt.Sprintf("File must be smaller than %d MB", maxSize>>20))
		} else {
			apierrors.BadRequest(c, "Invalid file upload")
		}
		return nil, func() {}, false
	}
	if file == nil {
		return nil, func() {}, true
	}
	return &services.FileUpload{Name: file.Name, Reader: file.Reader}, func() { file.Reader.Close() }, true
}

func isTruthy(v string) bool {
	return v == "true" || v == "1"
}
