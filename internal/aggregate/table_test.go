package aggregate

import (
	"testing"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/google/go-cmp/cmp"
)

func teamIDs(rows []Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func sampleRows() []Row {
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	regs := []models.TeamRegistration{
		{ID: "r1", ProblemID: "p1", TeamName: "beta", Year: "3rd", Department: "CSE", Email: "b@gcet.edu.in", Member1Name: "Asha", Member1Roll: "21CS001", CreatedAt: base},
		{ID: "r2", ProblemID: "p2", TeamName: "Alpha", Year: "2nd", Department: "ece", Email: "a@gcet.edu.in", Member1Name: "Ravi", Member1Roll: "22EC014", CreatedAt: base.Add(time.Hour)},
		{ID: "r3", ProblemID: "p3", TeamName: "gamma", Year: "4th", Department: "Mech", Email: "g@gcet.edu.in", Member1Name: "Neha", Member1Roll: "20ME007", Member2Name: "Kiran", Member2Roll: "20ME019", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "r4", ProblemID: "missing", TeamName: "Delta", Year: "1st", Department: "civil", Email: "d@gcet.edu.in", Member1Name: "Om", Member1Roll: "24CV002", CreatedAt: base.Add(-time.Hour)},
	}
	return Join(NewSnapshot(sampleProblems(), regs))
}

func TestJoin_UnknownProblem(t *testing.T) {
	rows := sampleRows()
	last := rows[3]
	if last.ProblemTitle != UnknownProblem || last.Theme != UnknownTheme {
		t.Errorf("unresolved row joined as %q/%q", last.ProblemTitle, last.Theme)
	}
	if rows[0].ProblemTitle != "Campus Waste" || rows[0].ProblemStatementID != "25001" {
		t.Errorf("row r1 joined as %+v", rows[0])
	}
}

func TestApply_DefaultNewestFirst(t *testing.T) {
	got := teamIDs(Apply(sampleRows(), DefaultQuery()))
	if diff := cmp.Diff([]string{"r3", "r2", "r1", "r4"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_Sort(t *testing.T) {
	tests := []struct {
		name  string
		field SortField
		dir   SortDirection
		want  []string
	}{
		{"team name asc is case-insensitive", SortTeamName, Ascending, []string{"r2", "r1", "r4", "r3"}},
		{"team name desc", SortTeamName, Descending, []string{"r3", "r4", "r1", "r2"}},
		{"year asc", SortYear, Ascending, []string{"r4", "r2", "r1", "r3"}},
		{"department asc", SortDepartment, Ascending, []string{"r4", "r1", "r2", "r3"}},
		{"created asc", SortCreatedAt, Ascending, []string{"r4", "r1", "r2", "r3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := teamIDs(Apply(sampleRows(), Query{SortField: tt.field, SortDir: tt.dir}))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_Filters(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"all matches everything", Query{ProblemID: "all", Theme: "all"}, []string{"r3", "r2", "r1", "r4"}},
		{"by problem", Query{ProblemID: "p2"}, []string{"r2"}},
		{"by theme", Query{Theme: "Academic"}, []string{"r2", "r1"}},
		{"unknown theme", Query{Theme: UnknownTheme}, []string{"r4"}},
		{"problem and theme disagree", Query{ProblemID: "p3", Theme: "Academic"}, []string{}},
		{"search team name", Query{Search: "ALPHA"}, []string{"r2"}},
		{"search second member", Query{Search: "kiran"}, []string{"r3"}},
		{"search roll", Query{Search: "22ec"}, []string{"r2"}},
		{"search email", Query{Search: "d@gcet"}, []string{"r4"}},
		{"search no hit", Query{Search: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := teamIDs(Apply(sampleRows(), tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_DoesNotReorderInput(t *testing.T) {
	rows := sampleRows()
	before := teamIDs(rows)
	Apply(rows, Query{SortField: SortTeamName, SortDir: Ascending})
	if diff := cmp.Diff(before, teamIDs(rows)); diff != "" {
		t.Errorf("input reordered (-before +after):\n%s", diff)
	}
}

func TestParseSort(t *testing.T) {
	f, err := ParseSortField("")
	if err != nil || f != SortCreatedAt {
		t.Errorf("ParseSortField(\"\") = %q, %v", f, err)
	}
	if _, err := ParseSortField("phone"); err == nil {
		t.Errorf("ParseSortField(phone) should fail")
	}
	d, err := ParseSortDirection("ASC")
	if err != nil || d != Ascending {
		t.Errorf("ParseSortDirection(ASC) = %q, %v", d, err)
	}
	if _, err := ParseSortDirection("sideways"); err == nil {
		t.Errorf("ParseSortDirection(sideways) should fail")
	}
}
