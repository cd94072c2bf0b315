package handlers

import (
	"errors"
	"net/http"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/dto"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/middleware"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/validation"
	"github.com/gin-gonic/gin"
)

// ProblemHandler serves the problem statement catalog.
type ProblemHandler struct {
	problemService *services.ProblemService
}

func NewProblemHandler(problemService *services.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: problemService}
}

// ListProblems returns problems filtered by theme and search text, plus theme counts.
func (h *ProblemHandler) ListProblems(c *gin.Context) {
	theme := c.Query("theme")
	if theme == constants.FilterAll {
		theme = ""
	}

	catalog, err := h.problemService.List(c.Request.Context(), repository.ProblemFilter{
		Theme:  theme,
		Search: c.Query("search"),
	})
	if err != nil {
		respondProblemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"problems": dto.ToProblemDTOs(catalog.Problems),
		"themes":   catalog.Themes,
		"total":    catalog.Total,
	})
}

// GetProblem returns one problem by its human-facing ID.
func (h *ProblemHandler) GetProblem(c *gin.Context) {
	problem, err := h.problemService.Get(c.Request.Context(), c.Param("problemId"))
	if err != nil {
		respondProblemError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProblemDTO(*problem))
}

// ResolveProblem maps ?problem_id= to the internal key.
func (h *ProblemHandler) ResolveProblem(c *gin.Context) {
	humanID := c.Query("problem_id")
	key, err := h.problemService.Resolve(c.Request.Context(), humanID)
	if err != nil {
		respondProblemError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProblemResolveResponse{
		ProblemStatementID: humanID,
		ProblemID:          key,
	})
}

// CreateProblem adds a problem statement.
func (h *ProblemHandler) CreateProblem(c *gin.Context) {
	var req dto.ProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	problem, err := h.problemService.Create(c.Request.Context(), middleware.CurrentActor(c), problemInput(req))
	if err != nil {
		respondProblemError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProblemDTO(*problem))
}

// UpdateProblem replaces a problem statement's content.
func (h *ProblemHandler) UpdateProblem(c *gin.Context) {
	var req dto.ProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	problem, err := h.problemService.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), problemInput(req))
	if err != nil {
		respondProblemError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProblemDTO(*problem))
}

// DeleteProblem removes a problem statement.
func (h *ProblemHandler) DeleteProblem(c *gin.Context) {
	if err := h.problemService.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		respondProblemError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Problem statement deleted successfully"})
}

func problemInput(req dto.ProblemRequest) services.ProblemInput {
	return services.ProblemInput{
		ProblemStatementID: req.ProblemStatementID,
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Theme:              req.Theme,
		Department:         req.Department,
	}
}

func respondProblemError(c *gin.Context, err error) {
	if respondCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrProblemNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidProblemID):
		apierrors.ValidationFailed(c, "", map[string]string{"problem_id": validation.InvalidProblemIDMessage})
	case errors.Is(err, services.ErrProblemIDTaken):
		apierrors.AlreadyExists(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
