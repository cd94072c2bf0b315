package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
)

// Row is a registration joined with its problem's title and theme.
type Row struct {
	models.TeamRegistration
	ProblemStatementID string `json:"problem_statement_id"`
	ProblemTitle       string `json:"problem_title"`
	Theme              string `json:"theme"`
}

type SortField string

const (
	SortCreatedAt  SortField = "created_at"
	SortTeamName   SortField = "team_name"
	SortYear       SortField = "year"
	SortDepartment SortField = "department"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Query selects and orders dashboard rows. Empty or "all" filters match everything.
type Query struct {
	ProblemID string
	Theme     string
	Search    string
	SortField SortField
	SortDir   SortDirection
}

// DefaultQuery is newest registrations first, unfiltered.
func DefaultQuery() Query {
	return Query{SortField: SortCreatedAt, SortDir: Descending}
}

// ParseSortField validates a sort key; empty selects created_at.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(s)); f {
	case "":
		return SortCreatedAt, nil
	case SortCreatedAt, SortTeamName, SortYear, SortDepartment:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported sort field %q", s)
	}
}

// ParseSortDirection validates a direction; empty selects descending.
func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(strings.ToLower(s)); d {
	case "":
		return Descending, nil
	case Ascending, Descending:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported sort direction %q", s)
	}
}

// Join annotates every registration with its problem. Unresolvable references get
// UnknownProblem and UnknownTheme.
func Join(s Snapshot) []Row {
	byID := make(map[string]models.ProblemStatement, len(s.problems))
	for _, p := range s.problems {
		byID[p.ID] = p
	}

	rows := make([]Row, len(s.registrations))
	for i, r := range s.registrations {
		row := Row{TeamRegistration: r, ProblemTitle: UnknownProblem, Theme: UnknownTheme}
		if p, ok := byID[r.ProblemID]; ok {
			row.ProblemStatementID = p.ProblemStatementID
			row.ProblemTitle = p.Title
			row.Theme = p.Theme
		}
		rows[i] = row
	}
	return rows
}

// Apply filters and sorts rows into a new slice.
func Apply(rows []Row, q Query) []Row {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if !isAll(q.ProblemID) && r.ProblemID != q.ProblemID {
			continue
		}
		if !isAll(q.Theme) && r.Theme != q.Theme {
			continue
		}
		if search != "" && !matches(r, search) {
			continue
		}
		out = append(out, r)
	}

	field := q.SortField
	if field == "" {
		field = SortCreatedAt
	}
	desc := q.SortDir != Ascending

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], field)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func isAll(v string) bool {
	return v == "" || v == constants.FilterAll
}

func matches(r Row, needle string) bool {
	haystack := []string{r.TeamName, r.Email}
	for _, m := range r.Members() {
		haystack = append(haystack, m.Name, m.Roll)
	}
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func compare(a, b Row, field SortField) int {
	switch field {
	case SortTeamName:
		return strings.Compare(strings.ToLower(a.TeamName), strings.ToLower(b.TeamName))
	case SortYear:
		return strings.Compare(strings.ToLower(a.Year), strings.ToLower(b.Year))
	case SortDepartment:
		return strings.Compare(strings.ToLower(a.Department), strings.ToLower(b.Department))
	default:
		an, bn := a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano()
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
}
