package dto

import (
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/aggregate"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
)

// TeamRequest is the team form shared by student submissions and admin edits.
// Members 2-4 are optional.
type TeamRequest struct {
	TeamName    string `json:"team_name" form:"team_name"`
	Member1Name string `json:"member1_name" form:"member1_name"`
	Member1Roll string `json:"member1_roll" form:"member1_roll"`
	Member2Name string `json:"member2_name" form:"member2_name"`
	Member2Roll string `json:"member2_roll" form:"member2_roll"`
	Member3Name string `json:"member3_name" form:"member3_name"`
	Member3Roll string `json:"member3_roll" form:"member3_roll"`
	Member4Name string `json:"member4_name" form:"member4_name"`
	Member4Roll string `json:"member4_roll" form:"member4_roll"`
	Year        string `json:"year" form:"year"`
	Department  string `json:"department" form:"department"`
	Phone       string `json:"phone" form:"phone"`
	Email       string `json:"email" form:"email"`
}

// Members returns the four member slots in order, blanks included.
func (r TeamRequest) Members() []models.Member {
	return []models.Member{
		{Name: r.Member1Name, Roll: r.Member1Roll},
		{Name: r.Member2Name, Roll: r.Member2Roll},
		{Name: r.Member3Name, Roll: r.Member3Roll},
		{Name: r.Member4Name, Roll: r.Member4Roll},
	}
}

// RegistrationRequest is the multipart student registration form
type RegistrationRequest struct {
	TeamRequest
	ProblemID string `form:"problem_id"`
}

// AdminTeamRequest is a dashboard create/edit body. ProblemID is the internal key.
type AdminTeamRequest struct {
	TeamRequest
	ProblemID string `json:"problem_id"`
}

// ValidateFieldsRequest asks for live feedback on form fields. Omitted fields are skipped.
type ValidateFieldsRequest struct {
	Phone     *string `json:"phone"`
	ProblemID *string `json:"problem_id"`
}

// FieldCheckResponse is the result of validating one form field
type FieldCheckResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ProblemResolveResponse carries the key a human-facing problem ID resolves to
type ProblemResolveResponse struct {
	ProblemStatementID string `json:"problem_statement_id"`
	ProblemID          string `json:"problem_id"`
}

// RegistrationDTO represents a team registration in API responses
type RegistrationDTO struct {
	ID               string          `json:"id"`
	TeamName         string          `json:"team_name"`
	ProblemID        string          `json:"problem_id"`
	Members          []models.Member `json:"members"`
	Year             string          `json:"year"`
	Department       string          `json:"department"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email"`
	HasDocument      bool            `json:"has_document"`
	DocumentFilename string          `json:"document_filename,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	Problem          *ProblemDTO     `json:"problem,omitempty"`
}

// ToRegistrationDTO converts a TeamRegistration model to RegistrationDTO
func ToRegistrationDTO(reg models.TeamRegistration) RegistrationDTO {
	dto := RegistrationDTO{
		ID:               reg.ID,
		TeamName:         reg.TeamName,
		ProblemID:        reg.ProblemID,
		Members:          reg.Members(),
		Year:             reg.Year,
		Department:       reg.Department,
		Phone:            reg.Phone,
		Email:            reg.Email,
		HasDocument:      reg.DocumentURL != "",
		DocumentFilename: reg.DocumentFilename,
		CreatedAt:        reg.CreatedAt,
	}
	if reg.Problem != nil {
		p := ToProblemDTO(*reg.Problem)
		dto.Problem = &p
	}
	return dto
}

// ToRegistrationDTOs converts a slice of registrations
func ToRegistrationDTOs(regs []models.TeamRegistration) []RegistrationDTO {
	out := make([]RegistrationDTO, len(regs))
	for i, r := range regs {
		out[i] = ToRegistrationDTO(r)
	}
	return out
}

// TeamRowDTO is one row of the admin registration table
type TeamRowDTO struct {
	RegistrationDTO
	ProblemStatementID string `json:"problem_statement_id"`
	ProblemTitle       string `json:"problem_title"`
	Theme              string `json:"theme"`
}

// ToTeamRowDTOs converts joined dashboard rows
func ToTeamRowDTOs(rows []aggregate.Row) []TeamRowDTO {
	out := make([]TeamRowDTO, len(rows))
	for i, r := range rows {
		out[i] = TeamRowDTO{
			RegistrationDTO:    ToRegistrationDTO(r.TeamRegistration),
			ProblemStatementID: r.ProblemStatementID,
			ProblemTitle:       r.ProblemTitle,
			Theme:              r.Theme,
		}
	}
	return out
}
