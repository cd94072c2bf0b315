package dto

import (
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
)

// ProblemDTO represents a problem statement in API responses
type ProblemDTO struct {
	ID                 string `json:"id"`
	ProblemStatementID string `json:"problem_statement_id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	Theme              string `json:"theme"`
	Department         string `json:"department,omitempty"`
}

// ProblemRequest is an admin create/edit body
type ProblemRequest struct {
	ProblemStatementID string `json:"problem_statement_id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	Theme              string `json:"theme"`
	Department         string `json:"department"`
}

func ToProblemDTO(p models.ProblemStatement) ProblemDTO {
	return ProblemDTO{
		ID:                 p.ID,
		ProblemStatementID: p.ProblemStatementID,
		Title:              p.Title,
		Description:        p.Description,
		Category:           p.Category,
		Theme:              p.Theme,
		Department:         p.Department,
	}
}

func ToProblemDTOs(problems []models.ProblemStatement) []ProblemDTO {
	out := make([]ProblemDTO, len(problems))
	for i, p := range problems {
		out[i] = ToProblemDTO(p)
	}
	return out
}
