package dto

import (
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/aggregate"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/utils"
)

// DashboardResponse is the admin overview
type DashboardResponse struct {
	ProblemStats       []aggregate.ProblemCount `json:"problem_stats"`
	ThemeStats         []aggregate.ThemeCount   `json:"theme_stats"`
	TotalRegistrations int                      `json:"total_registrations"`
	Users              services.UserStats       `json:"users"`
	Problems           []ProblemDTO             `json:"problems"`
	LoadedAt           time.Time                `json:"loaded_at"`
}

func ToDashboardResponse(d *services.Dashboard) DashboardResponse {
	return DashboardResponse{
		ProblemStats:       d.ByProblem,
		ThemeStats:         d.ByTheme,
		TotalRegistrations: d.TotalRegistrations,
		Users:              d.Users,
		Problems:           ToProblemDTOs(d.Problems),
		LoadedAt:           d.LoadedAt,
	}
}

// TeamListResponse is a page of the admin registration table
type TeamListResponse struct {
	Teams      []TeamRowDTO             `json:"teams"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// DocumentLinkResponse carries a short-lived document URL
type DocumentLinkResponse struct {
	URL string `json:"url"`
}
