package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/aggregate"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/utils"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type failingRoleRepo struct {
	repository.UserRepository
}

func (failingRoleRepo) ListRoles(ctx context.Context) ([]models.UserRole, error) {
	return nil, errors.New("roles table locked")
}

// AdminServiceTestSuite covers the dashboard snapshot and team management
type AdminServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	store    *storage.Store
	svc      *AdminService
	problems map[string]*models.ProblemStatement
	ctx      context.Context
}

func (suite *AdminServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = newTestDB(suite.T())
	suite.store = newTestStore(suite.T())
	suite.problems = map[string]*models.ProblemStatement{
		"25001": seedProblem(suite.T(), suite.db, "25001", "Campus Waste", "Academic"),
		"25002": seedProblem(suite.T(), suite.db, "25002", "Library Queue", "Academic"),
		"25003": seedProblem(suite.T(), suite.db, "25003", "Bus Tracking", "Transport"),
	}

	suite.svc = suite.newService(repository.NewUserRepository(suite.db))
}

func (suite *AdminServiceTestSuite) newService(users repository.UserRepository) *AdminService {
	return NewAdminService(
		repository.NewProblemRepository(suite.db),
		repository.NewTeamRegistrationRepository(suite.db),
		users,
		suite.store.TeamDocuments,
		storage.NewURLSigner("test-secret", time.Minute, "http://api.test"),
		0,
		nopLogger(),
	)
}

func (suite *AdminServiceTestSuite) insertTeam(name, humanID string) *models.TeamRegistration {
	reg := &models.TeamRegistration{
		UserID: "student-1", TeamName: name, ProblemID: suite.problems[humanID].ID,
		Member1Name: "Lead", Member1Roll: "R1", Year: "2nd", Department: "CSE",
		Phone: "9876543210", Email: "lead@gcet.edu.in",
	}
	suite.Require().NoError(suite.db.Create(reg).Error)
	return reg
}

func (suite *AdminServiceTestSuite) insertRole(userID string, role models.Role) {
	suite.Require().NoError(suite.db.Create(&models.UserRole{UserID: userID, Role: role}).Error)
}

func (suite *AdminServiceTestSuite) countFor(d *Dashboard, humanID string) int {
	for _, pc := range d.ByProblem {
		if pc.ProblemStatementID == humanID {
			return pc.Count
		}
	}
	suite.FailNow("problem missing from dashboard", humanID)
	return 0
}

func (suite *AdminServiceTestSuite) TestRequiresAdmin() {
	_, err := suite.svc.Dashboard(suite.ctx, Actor{}, false)
	suite.ErrorIs(err, ErrAuthenticationRequired)

	_, err = suite.svc.Dashboard(suite.ctx, testStudent, false)
	suite.ErrorIs(err, ErrAdminRequired)

	_, err = suite.svc.DeleteAllTeams(suite.ctx, testStudent)
	suite.ErrorIs(err, ErrAdminRequired)
}

func (suite *AdminServiceTestSuite) TestDashboardCounts() {
	suite.insertTeam("A", "25001")
	suite.insertTeam("B", "25001")
	suite.insertTeam("C", "25002")
	suite.insertRole("admin-1", models.RoleAdmin)
	suite.insertRole("student-1", models.RoleStudent)
	suite.insertRole("student-2", models.RoleStudent)

	d, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)

	suite.Equal(2, suite.countFor(d, "25001"))
	suite.Equal(1, suite.countFor(d, "25002"))
	suite.Equal(0, suite.countFor(d, "25003"))
	suite.Equal([]aggregate.ThemeCount{{Theme: "Academic", Count: 3}, {Theme: "Transport", Count: 0}}, d.ByTheme)
	suite.Equal(3, d.TotalRegistrations)
	suite.Equal(UserStats{TotalProblems: 3, TotalUsers: 3, Admins: 1, Students: 2}, d.Users)
}

func (suite *AdminServiceTestSuite) TestSnapshotIsNotRefetchedUntilRefresh() {
	suite.insertTeam("A", "25001")
	_, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)

	suite.insertTeam("Outside", "25003")

	d, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)
	suite.Equal(0, suite.countFor(d, "25003"))

	d, err = suite.svc.Dashboard(suite.ctx, testAdmin, true)
	suite.Require().NoError(err)
	suite.Equal(1, suite.countFor(d, "25003"))
}

func (suite *AdminServiceTestSuite) TestStaleSnapshotIsReloaded() {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	suite.svc.maxAge = time.Minute
	suite.svc.now = func() time.Time { return now }

	_, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)
	suite.insertTeam("Late", "25002")

	now = now.Add(2 * time.Minute)
	d, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)
	suite.Equal(1, suite.countFor(d, "25002"))
}

func (suite *AdminServiceTestSuite) TestLocalMutations() {
	existing := suite.insertTeam("Alpha", "25001")

	created, err := suite.svc.CreateTeam(suite.ctx, testAdmin, AdminTeamInput{TeamInput: validTeam(), ProblemID: suite.problems["25002"].ID})
	suite.Require().NoError(err)

	d, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)
	suite.Equal(1, suite.countFor(d, "25001"))
	suite.Equal(1, suite.countFor(d, "25002"))

	moved := validTeam()
	moved.TeamName = "Alpha Moved"
	updated, err := suite.svc.UpdateTeam(suite.ctx, testAdmin, existing.ID, AdminTeamInput{TeamInput: moved, ProblemID: suite.problems["25003"].ID})
	suite.Require().NoError(err)
	suite.Equal("student-1", updated.UserID)

	d, err = suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)
	suite.Equal(0, suite.countFor(d, "25001"))
	suite.Equal(1, suite.countFor(d, "25003"))

	suite.Require().NoError(suite.svc.DeleteTeam(suite.ctx, testAdmin, created.ID))
	suite.ErrorIs(suite.svc.DeleteTeam(suite.ctx, testAdmin, created.ID), ErrTeamNotFound)

	d, err = suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)
	suite.Equal(0, suite.countFor(d, "25002"))
	suite.Equal(1, d.TotalRegistrations)

	fresh, err := suite.svc.Dashboard(suite.ctx, testAdmin, true)
	suite.Require().NoError(err)
	suite.Equal(d.Stats, fresh.Stats)
}

func (suite *AdminServiceTestSuite) TestCreateTeamRejectsUnknownProblem() {
	_, err := suite.svc.CreateTeam(suite.ctx, testAdmin, AdminTeamInput{TeamInput: validTeam(), ProblemID: "nope"})
	var fields FieldErrors
	suite.Require().ErrorAs(err, &fields)
	suite.Equal("Invalid Problem ID", fields["problem_id"])
}

func (suite *AdminServiceTestSuite) TestUpdateMissingTeam() {
	_, err := suite.svc.UpdateTeam(suite.ctx, testAdmin, "missing", AdminTeamInput{TeamInput: validTeam(), ProblemID: suite.problems["25001"].ID})
	suite.ErrorIs(err, ErrTeamNotFound)
}

func (suite *AdminServiceTestSuite) TestDeleteAllTeams() {
	suite.insertTeam("A", "25001")
	suite.insertTeam("B", "25002")

	removed, err := suite.svc.DeleteAllTeams(suite.ctx, testAdmin)
	suite.Require().NoError(err)
	suite.Equal(int64(2), removed)

	d, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)
	suite.Zero(d.TotalRegistrations)
	suite.Len(d.ByProblem, 3)
}

func (suite *AdminServiceTestSuite) TestTeamsFilterSortPaginate() {
	suite.insertTeam("charlie", "25001")
	suite.insertTeam("Alpha", "25003")
	suite.insertTeam("bravo", "25002")

	page, err := suite.svc.Teams(suite.ctx, testAdmin,
		aggregate.Query{SortField: aggregate.SortTeamName, SortDir: aggregate.Ascending},
		utils.PaginationParams{Page: 1, Limit: 2, Offset: 0}, false)
	suite.Require().NoError(err)
	suite.Equal(3, page.Total)
	suite.Require().Len(page.Rows, 2)
	suite.Equal("Alpha", page.Rows[0].TeamName)
	suite.Equal("Bus Tracking", page.Rows[0].ProblemTitle)
	suite.Equal("bravo", page.Rows[1].TeamName)

	page, err = suite.svc.Teams(suite.ctx, testAdmin,
		aggregate.Query{Theme: "Academic", SortField: aggregate.SortTeamName, SortDir: aggregate.Ascending},
		utils.PaginationParams{Page: 2, Limit: 1, Offset: 1}, false)
	suite.Require().NoError(err)
	suite.Equal(2, page.Total)
	suite.Require().Len(page.Rows, 1)
	suite.Equal("charlie", page.Rows[0].TeamName)
}

func (suite *AdminServiceTestSuite) TestStudentSubmissionFoldsIntoSnapshot() {
	_, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)

	reg := suite.insertTeam("Walk-in", "25003")
	suite.svc.RegistrationCreated(*reg)

	d, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)
	suite.Equal(1, suite.countFor(d, "25003"))
}

func (suite *AdminServiceTestSuite) TestInvalidatePicksUpCatalogChanges() {
	_, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)

	seedProblem(suite.T(), suite.db, "25004", "Canteen Billing", "Services")
	suite.svc.Invalidate()

	d, err := suite.svc.Dashboard(suite.ctx, testAdmin, false)
	suite.Require().NoError(err)
	suite.Len(d.ByProblem, 4)
}

func (suite *AdminServiceTestSuite) TestLoadFailureFailsWholeDashboard() {
	svc := suite.newService(failingRoleRepo{})
	_, err := svc.Dashboard(suite.ctx, testAdmin, false)
	suite.ErrorIs(err, ErrDashboardLoad)
}

func (suite *AdminServiceTestSuite) TestDocuments() {
	withDoc := suite.insertTeam("Docs", "25001")
	withDoc.DocumentURL = "student-1_1_deck.pdf"
	withDoc.DocumentFilename = "deck.pdf"
	suite.Require().NoError(suite.db.Save(withDoc).Error)
	suite.Require().NoError(suite.store.TeamDocuments.Upload(suite.ctx, withDoc.DocumentURL, strings.NewReader("pdf-bytes"), false))
	withoutDoc := suite.insertTeam("NoDocs", "25002")

	url, err := suite.svc.DocumentURL(suite.ctx, testAdmin, withDoc.ID)
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(url, "http://api.test/files/signed/"))

	doc, err := suite.svc.OpenDocument(suite.ctx, testAdmin, withDoc.ID)
	suite.Require().NoError(err)
	defer doc.Body.Close()
	data, _ := io.ReadAll(doc.Body)
	suite.Equal("pdf-bytes", string(data))
	suite.Equal("deck.pdf", doc.Filename)

	_, err = suite.svc.DocumentURL(suite.ctx, testAdmin, withoutDoc.ID)
	suite.ErrorIs(err, ErrNoDocument)
	_, err = suite.svc.OpenDocument(suite.ctx, testAdmin, "missing")
	suite.ErrorIs(err, ErrTeamNotFound)
	_, err = suite.svc.DocumentURL(suite.ctx, testStudent, withDoc.ID)
	suite.ErrorIs(err, ErrAdminRequired)
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
