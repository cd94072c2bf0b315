package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/dto"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/middleware"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/validation"
	"github.com/gin-gonic/gin"
)

// RegistrationHandler handles student team registrations.
type RegistrationHandler struct {
	registrationService *services.RegistrationService
	problemService      *services.ProblemService
}

func NewRegistrationHandler(registrationService *services.RegistrationService, problemService *services.ProblemService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		problemService:      problemService,
	}
}

// ValidateFields gives live feedback on the phone and problem ID fields.
func (h *RegistrationHandler) ValidateFields(c *gin.Context) {
	var req dto.ValidateFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result := map[string]dto.FieldCheckResponse{}
	if req.Phone != nil {
		// Same normalization Submit applies before validating.
		msg := validation.ValidatePhone(strings.TrimSpace(*req.Phone))
		result["phone"] = dto.FieldCheckResponse{Valid: msg == "", Message: msg}
	}
	if req.ProblemID != nil {
		_, err := h.problemService.Resolve(c.Request.Context(), *req.ProblemID)
		switch {
		case err == nil:
			result["problem_id"] = dto.FieldCheckResponse{Valid: true}
		case errors.Is(err, services.ErrInvalidProblemID):
			result["problem_id"] = dto.FieldCheckResponse{Message: validation.InvalidProblemIDMessage}
		default:
			apierrors.InternalError(c, "")
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

// Submit registers a team from a multipart form with an optional "document" file.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var req dto.RegistrationRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	document, closeDocument, ok := formFile(c, "document", constants.MaxDocumentSize)
	if !ok {
		return
	}
	defer closeDocument()

	reg, err := h.registrationService.Submit(c.Request.Context(), middleware.CurrentActor(c), services.SubmitRegistrationInput{
		TeamInput:          teamInput(req.TeamRequest),
		ProblemStatementID: req.ProblemID,
	}, document)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegistrationDTO(*reg))
}

// ListMine returns the caller's registrations.
func (h *RegistrationHandler) ListMine(c *gin.Context) {
	regs, err := h.registrationService.ListMine(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondRegistrationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registrations": dto.ToRegistrationDTOs(regs)})
}

func teamInput(req dto.TeamRequest) services.TeamInput {
	return services.TeamInput{
		TeamName:   req.TeamName,
		Members:    req.Members(),
		Year:       req.Year,
		Department: req.Department,
		Phone:      req.Phone,
		Email:      req.Email,
	}
}

func respondRegistrationError(c *gin.Context, err error) {
	if respondCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrDocumentUploadFailed):
		apierrors.InternalError(c, "Failed to upload document")
	case errors.Is(err, services.ErrFailedToSaveRegistration):
		apierrors.InternalError(c, "Failed to save registration")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
