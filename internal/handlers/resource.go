package handlers

import (
	"errors"
	"net/http"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/dto"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/middleware"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ResourceHandler serves downloadable resources.
type ResourceHandler struct {
	resourceService *services.ResourceService
}

func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (h *ResourceHandler) ListResources(c *gin.Context) {
	resources, err := h.resourceService.List(c.Request.Context())
	if err != nil {
		respondResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// CreateResource adds a resource from a multipart form with an optional "file".
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req dto.ResourceRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	file, closeFile, ok := formFile(c, "file", constants.MaxResourceSize)
	if !ok {
		return
	}
	defer closeFile()

	resource, err := h.resourceService.Create(c.Request.Context(), middleware.CurrentActor(c), services.ResourceInput{
		Title:       req.Title,
		Description: req.Description,
	}, file)
	if err != nil {
		respondResourceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resource)
}

func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	var req dto.ResourceRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	file, closeFile, ok := formFile(c, "file", constants.MaxResourceSize)
	if !ok {
		return
	}
	defer closeFile()

	resource, err := h.resourceService.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), services.ResourceInput{
		Title:       req.Title,
		Description: req.Description,
	}, file)
	if err != nil {
		respondResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	if err := h.resourceService.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		respondResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted successfully"})
}

func respondResourceError(c *gin.Context, err error) {
	if respondCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrResourceNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrResourceUploadFailed):
		apierrors.InternalError(c, "Failed to upload file")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
