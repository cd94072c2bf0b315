package dto

import (
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/utils"
)

// ResourceRequest is the multipart admin resource form
type ResourceRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

// PageContentRequest is an admin upsert body
type PageContentRequest struct {
	Content string `json:"content"`
}

// QueryRequest is a contact form submission
type QueryRequest struct {
	QueryText string `json:"query_text"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}

// QueryDTO represents a user query in API responses
type QueryDTO struct {
	ID         string             `json:"id"`
	QueryText  string             `json:"query_text"`
	UserID     *string            `json:"user_id"`
	UserEmail  *string            `json:"user_email"`
	UserName   *string            `json:"user_name"`
	Status     models.QueryStatus `json:"status"`
	ResolvedAt *time.Time         `json:"resolved_at"`
	CreatedAt  time.Time          `json:"created_at"`
}

// QueryListResponse represents a paginated list of queries
type QueryListResponse struct {
	Queries    []QueryDTO               `json:"queries"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func ToQueryDTO(q models.UserQuery) QueryDTO {
	return QueryDTO{
		ID:         q.ID,
		QueryText:  q.QueryText,
		UserID:     q.UserID,
		UserEmail:  q.UserEmail,
		UserName:   q.UserName,
		Status:     q.Status,
		ResolvedAt: q.ResolvedAt,
		CreatedAt:  q.CreatedAt,
	}
}

func ToQueryDTOs(queries []models.UserQuery) []QueryDTO {
	out := make([]QueryDTO, len(queries))
	for i, q := range queries {
		out[i] = ToQueryDTO(q)
	}
	return out
}
