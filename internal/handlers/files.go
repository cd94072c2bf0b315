package handlers

import (
	"errors"
	"net/http"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileHandler serves stored objects. Event images and resources are public;
// team documents need a signed token.
type FileHandler struct {
	store  *storage.Store
	signer *storage.URLSigner
	log    *zap.Logger
}

func NewFileHandler(store *storage.Store, signer *storage.URLSigner, log *zap.Logger) *FileHandler {
	return &FileHandler{store: store, signer: signer, log: log}
}

// ServePublic streams /files/:bucket/:key from a public bucket.
func (h *FileHandler) ServePublic(c *gin.Context) {
	name := c.Param("bucket")
	if name != constants.BucketEventImages && name != constants.BucketResources {
		apierrors.NotFound(c, "")
		return
	}
	h.serve(c, name, c.Param("key"))
}

// ServeSigned streams the object a signed token grants.
func (h *FileHandler) ServeSigned(c *gin.Context) {
	name, key, err := h.signer.Verify(c.Param("token"))
	if err != nil {
		apierrors.Forbidden(c, "Invalid or expired link")
		return
	}
	h.serve(c, name, key)
}

func (h *FileHandler) serve(c *gin.Context, name, key string) {
	bucket, ok := h.store.Bucket(name)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	body, err := bucket.Download(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			apierrors.NotFound(c, "File not found")
			return
		}
		h.log.Error("Failed to read stored file", zap.String("bucket", name), zap.String("key", key), zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, contentType(key), body, nil)
}
