package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/database"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testDomain = "gcet.edu.in"

var (
	adminActor   = services.Actor{UserID: "admin-1", Email: "admin@gcet.edu.in", Name: "Admin", Admin: true}
	studentActor = services.Actor{UserID: "student-1", Email: "asha@gcet.edu.in", Name: "Asha"}
)

type testEnv struct {
	db     *gorm.DB
	store  *storage.Store
	signer *storage.URLSigner

	auth          *services.AuthService
	problems      *services.ProblemService
	registrations *services.RegistrationService
	admin         *services.AdminService
	events        *services.EventService
	resources     *services.ResourceService
	content       *services.ContentService
	queries       *services.QueryService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrate(database.Models()...))

	store, err := storage.NewLocalStore(t.TempDir(), "http://api.test")
	require.NoError(t, err)
	signer := storage.NewURLSigner("test-secret", time.Minute, "http://api.test")
	log := zap.NewNop()

	userRepo := repository.NewUserRepository(db)
	problemRepo := repository.NewProblemRepository(db)
	regRepo := repository.NewTeamRegistrationRepository(db)

	admin := services.NewAdminService(problemRepo, regRepo, userRepo, store.TeamDocuments, signer, 0, log)

	return testEnv{
		db:            db,
		store:         store,
		signer:        signer,
		auth:          services.NewAuthService(userRepo, testDomain),
		problems:      services.NewProblemService(problemRepo, admin.Invalidate),
		registrations: services.NewRegistrationService(regRepo, problemRepo, store.TeamDocuments, admin, log),
		admin:         admin,
		events:        services.NewEventService(repository.NewEventRepository(db), store.EventImages, log),
		resources:     services.NewResourceService(repository.NewResourceRepository(db), store.Resources),
		content:       services.NewContentService(repository.NewPageContentRepository(db)),
		queries:       services.NewQueryService(repository.NewQueryRepository(db), nil, constants.ResolvedQueryRetention, log),
	}
}

// newRouter returns an engine with cookie sessions where every request runs as actor.
func newRouter(actor services.Actor) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyActor, actor)
		if actor.UserID != "" {
			c.Set(constants.ContextKeyUserID, actor.UserID)
		}
		c.Next()
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type formFileSpec struct {
	field   string
	name    string
	content []byte
}

func doMultipart(t *testing.T, r http.Handler, method, path string, fields map[string]string, file *formFileSpec) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile(file.field, file.name)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	return decode[apierrors.APIError](t, w)
}

// fieldDetails reads the per-field messages of a validation error response.
func fieldDetails(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out struct {
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out.Details
}

func seedProblem(t *testing.T, db *gorm.DB, humanID, title, theme string) *models.ProblemStatement {
	t.Helper()
	p := &models.ProblemStatement{ProblemStatementID: humanID, Title: title, Theme: theme}
	require.NoError(t, repository.NewProblemRepository(db).Create(context.Background(), p))
	return p
}

func teamFields(problemID string) map[string]string {
	return map[string]string{
		"team_name":    "Green Innovators",
		"member1_name": "Asha",
		"member1_roll": "21CS001",
		"member2_name": "Ravi",
		"member2_roll": "21CS002",
		"year":         "3rd",
		"department":   "CSE",
		"phone":        "9876543210",
		"email":        "asha@gcet.edu.in",
		"problem_id":   problemID,
	}
}
