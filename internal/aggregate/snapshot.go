// Package aggregate derives the admin dashboard's counts and registration table from
// an immutable snapshot of problem statements and team registrations.
package aggregate

import (
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
)

const (
	UnknownProblem = "Unknown Problem"
	UnknownTheme   = "Unknown Theme"
)

// Snapshot is a point-in-time copy of the rows the dashboard is computed from.
// Mutators return a new Snapshot and never modify the receiver.
type Snapshot struct {
	problems      []models.ProblemStatement
	registrations []models.TeamRegistration
}

// NewSnapshot copies the given rows.
func NewSnapshot(problems []models.ProblemStatement, registrations []models.TeamRegistration) Snapshot {
	return Snapshot{
		problems:      append([]models.ProblemStatement(nil), problems...),
		registrations: append([]models.TeamRegistration(nil), registrations...),
	}
}

func (s Snapshot) Problems() []models.ProblemStatement {
	return append([]models.ProblemStatement(nil), s.problems...)
}

func (s Snapshot) Registrations() []models.TeamRegistration {
	return append([]models.TeamRegistration(nil), s.registrations...)
}

// Problem returns the problem with the given internal key.
func (s Snapshot) Problem(id string) (models.ProblemStatement, bool) {
	for _, p := range s.problems {
		if p.ID == id {
			return p, true
		}
	}
	return models.ProblemStatement{}, false
}

// Registration returns the registration with the given key.
func (s Snapshot) Registration(id string) (models.TeamRegistration, bool) {
	for _, r := range s.registrations {
		if r.ID == id {
			return r, true
		}
	}
	return models.TeamRegistration{}, false
}

// WithProblems replaces the problem rows.
func (s Snapshot) WithProblems(problems []models.ProblemStatement) Snapshot {
	return NewSnapshot(problems, s.registrations)
}

// WithCreated appends a registration.
func (s Snapshot) WithCreated(reg models.TeamRegistration) Snapshot {
	regs := make([]models.TeamRegistration, 0, len(s.registrations)+1)
	regs = append(regs, s.registrations...)
	regs = append(regs, reg)
	return Snapshot{problems: s.problems, registrations: regs}
}

// WithUpdated replaces the registration sharing reg's ID. An unknown ID is appended.
func (s Snapshot) WithUpdated(reg models.TeamRegistration) Snapshot {
	regs := make([]models.TeamRegistration, 0, len(s.registrations)+1)
	found := false
	for _, r := range s.registrations {
		if r.ID == reg.ID {
			regs = append(regs, reg)
			found = true
			continue
		}
		regs = append(regs, r)
	}
	if !found {
		regs = append(regs, reg)
	}
	return Snapshot{problems: s.problems, registrations: regs}
}

// WithoutRegistration drops the registration with the given ID.
func (s Snapshot) WithoutRegistration(id string) Snapshot {
	regs := make([]models.TeamRegistration, 0, len(s.registrations))
	for _, r := range s.registrations {
		if r.ID != id {
			regs = append(regs, r)
		}
	}
	return Snapshot{problems: s.problems, registrations: regs}
}

// WithoutAll drops every registration and keeps the problems.
func (s Snapshot) WithoutAll() Snapshot {
	return Snapshot{problems: s.problems}
}
