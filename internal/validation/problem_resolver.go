package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"gorm.io/gorm"
)

// InvalidProblemIDMessage is shown next to the problem ID field.
const InvalidProblemIDMessage = "Invalid Problem ID"

// ErrInvalidProblemID is returned when a human-entered problem ID matches no problem statement.
var ErrInvalidProblemID = errors.New("invalid problem ID")

// ProblemLookup finds a problem statement by its human-facing ID.
type ProblemLookup interface {
	FindByProblemStatementID(ctx context.Context, problemStatementID string) (*models.ProblemStatement, error)
}

// ProblemResolver maps the ID a student types to the internal key registrations store.
type ProblemResolver struct {
	lookup ProblemLookup
}

func NewProblemResolver(lookup ProblemLookup) *ProblemResolver {
	return &ProblemResolver{lookup: lookup}
}

// Resolve returns the internal key of the problem whose human ID equals humanID.
// Unknown IDs and lookup failures both yield ErrInvalidProblemID; a lookup failure is
// wrapped so the cause stays visible to logs.
func (r *ProblemResolver) Resolve(ctx context.Context, humanID string) (string, error) {
	humanID = strings.TrimSpace(humanID)
	if humanID == "" {
		return "", ErrInvalidProblemID
	}

	problem, err := r.lookup.FindByProblemStatementID(ctx, humanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidProblemID
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidProblemID, err)
	}
	if problem == nil {
		return "", ErrInvalidProblemID
	}
	return problem.ID, nil
}
