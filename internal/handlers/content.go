package handlers

import (
	"errors"
	"net/http"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/dto"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/middleware"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ContentHandler serves editable page copy keyed by section.
type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) GetContent(c *gin.Context) {
	content, err := h.contentService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *ContentHandler) UpsertContent(c *gin.Context) {
	var req dto.PageContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	content, err := h.contentService.Upsert(c.Request.Context(), middleware.CurrentActor(c), c.Param("key"), req.Content)
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func respondContentError(c *gin.Context, err error) {
	if respondCommonError(c, err) {
		return
	}
	if errors.Is(err, services.ErrContentNotFound) {
		apierrors.NotFound(c, err.Error())
		return
	}
	apierrors.InternalError(c, "Internal server error")
}
