package handlers

import (
	"errors"
	"net/http"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/dto"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/middleware"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// QueryHandler handles contact-form queries.
type QueryHandler struct {
	queryService *services.QueryService
}

func NewQueryHandler(queryService *services.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// SubmitQuery stores a query from a signed-in or anonymous visitor.
func (h *QueryHandler) SubmitQuery(c *gin.Context) {
	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	query, err := h.queryService.Submit(c.Request.Context(), middleware.CurrentActor(c), services.SubmitQueryInput{
		Text:  req.QueryText,
		Email: req.UserEmail,
		Name:  req.UserName,
	})
	if err != nil {
		respondQueryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToQueryDTO(*query))
}

// ListQueries returns a page of queries, newest first.
func (h *QueryHandler) ListQueries(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	queries, total, err := h.queryService.List(c.Request.Context(), middleware.CurrentActor(c), params)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QueryListResponse{
		Queries:    dto.ToQueryDTOs(queries),
		Pagination: params.Response(total),
	})
}

func (h *QueryHandler) ResolveQuery(c *gin.Context) {
	if err := h.queryService.Resolve(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		respondQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Query marked as resolved"})
}

func (h *QueryHandler) DeleteQuery(c *gin.Context) {
	if err := h.queryService.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		respondQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Query deleted successfully"})
}

// DraftReply suggests an answer to a query.
func (h *QueryHandler) DraftReply(c *gin.Context) {
	reply, err := h.queryService.DraftReply(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		respondQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func respondQueryError(c *gin.Context, err error) {
	if respondCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrQueryNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
