package aggregate

import (
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
)

type ProblemCount struct {
	ProblemID          string `json:"id"`
	ProblemStatementID string `json:"problem_statement_id"`
	Title              string `json:"title"`
	Theme              string `json:"theme"`
	Count              int    `json:"count"`
}

type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// Stats is everything the dashboard derives from a snapshot.
type Stats struct {
	ByProblem          []ProblemCount `json:"problem_stats"`
	ByTheme            []ThemeCount   `json:"theme_stats"`
	TotalRegistrations int            `json:"total_registrations"`
}

// Recompute derives the per-problem and per-theme tables. It has no side effects, so
// recomputing the same snapshot always yields the same Stats.
func Recompute(s Snapshot) Stats {
	byProblem := CountByProblem(s.problems, s.registrations)
	return Stats{
		ByProblem:          byProblem,
		ByTheme:            CountByTheme(byProblem),
		TotalRegistrations: len(s.registrations),
	}
}

// CountByProblem counts registrations per problem, in problem order. Problems without
// registrations count 0; registrations pointing at unknown problems are not counted.
func CountByProblem(problems []models.ProblemStatement, registrations []models.TeamRegistration) []ProblemCount {
	perKey := make(map[string]int, len(problems))
	for _, r := range registrations {
		perKey[r.ProblemID]++
	}

	counts := make([]ProblemCount, len(problems))
	for i, p := range problems {
		counts[i] = ProblemCount{
			ProblemID:          p.ID,
			ProblemStatementID: p.ProblemStatementID,
			Title:              p.Title,
			Theme:              p.Theme,
			Count:              perKey[p.ID],
		}
	}
	return counts
}

// CountByTheme sums per-problem counts by theme, in order of first appearance.
func CountByTheme(byProblem []ProblemCount) []ThemeCount {
	index := make(map[string]int)
	var themes []ThemeCount
	for _, pc := range byProblem {
		i, ok := index[pc.Theme]
		if !ok {
			i = len(themes)
			index[pc.Theme] = i
			themes = append(themes, ThemeCount{Theme: pc.Theme})
		}
		themes[i].Count += pc.Count
	}
	if themes == nil {
		themes = []ThemeCount{}
	}
	return themes
}
