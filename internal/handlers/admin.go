package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/aggregate"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/dto"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/middleware"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin dashboard and registration table.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Dashboard returns registration counts. ?refresh=true reloads from the database.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.adminService.Dashboard(c.Request.Context(), middleware.CurrentActor(c), isTruthy(c.Query("refresh")))
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}

// ListTeams returns a filtered, sorted page of registrations joined with their problems.
func (h *AdminHandler) ListTeams(c *gin.Context) {
	field, err := aggregate.ParseSortField(c.Query("sort"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid sort field")
		return
	}
	dir, err := aggregate.ParseSortDirection(c.Query("order"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid sort order")
		return
	}
	query := aggregate.Query{
		ProblemID: c.Query("problem_id"),
		Theme:     c.Query("theme"),
		Search:    c.Query("search"),
		SortField: field,
		SortDir:   dir,
	}
	params := utils.GetPaginationParams(c)

	page, err := h.adminService.Teams(c.Request.Context(), middleware.CurrentActor(c), query, params, isTruthy(c.Query("refresh")))
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TeamListResponse{
		Teams:      dto.ToTeamRowDTOs(page.Rows),
		Pagination: params.Response(int64(page.Total)),
	})
}

func (h *AdminHandler) CreateTeam(c *gin.Context) {
	var req dto.AdminTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reg, err := h.adminService.CreateTeam(c.Request.Context(), middleware.CurrentActor(c), services.AdminTeamInput{
		TeamInput: teamInput(req.TeamRequest),
		ProblemID: req.ProblemID,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToRegistrationDTO(*reg))
}

func (h *AdminHandler) UpdateTeam(c *gin.Context) {
	var req dto.AdminTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reg, err := h.adminService.UpdateTeam(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), services.AdminTeamInput{
		TeamInput: teamInput(req.TeamRequest),
		ProblemID: req.ProblemID,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRegistrationDTO(*reg))
}

func (h *AdminHandler) DeleteTeam(c *gin.Context) {
	if err := h.adminService.DeleteTeam(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration deleted successfully"})
}

// DeleteAllTeams wipes every registration. The client must send ?confirm=true.
func (h *AdminHandler) DeleteAllTeams(c *gin.Context) {
	if !isTruthy(c.Query("confirm")) {
		apierrors.BadRequest(c, "Deleting all registrations requires confirm=true")
		return
	}

	removed, err := h.adminService.DeleteAllTeams(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "All registrations deleted",
		"deleted": removed,
	})
}

// DocumentLink returns a short-lived URL for viewing a team's document.
func (h *AdminHandler) DocumentLink(c *gin.Context) {
	url, err := h.adminService.DocumentURL(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DocumentLinkResponse{URL: url})
}

// DownloadDocument streams a team's document as an attachment.
func (h *AdminHandler) DownloadDocument(c *gin.Context) {
	doc, err := h.adminService.OpenDocument(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		respondAdminError(c, err)
		return
	}
	defer doc.Body.Close()

	c.DataFromReader(http.StatusOK, -1, contentType(doc.Filename), doc.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.Filename),
	})
}

func contentType(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

func respondAdminError(c *gin.Context, err error) {
	if respondCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNoDocument):
		apierrors.NotFound(c, "No document uploaded for this team")
	case errors.Is(err, services.ErrDashboardLoad):
		apierrors.ServiceUnavailable(c, "Failed to load dashboard data")
	case errors.Is(err, services.ErrFailedToSaveRegistration):
		apierrors.InternalError(c, "Failed to save registration")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
