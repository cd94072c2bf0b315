package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/dto"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func eventRoutes(env testEnv, actor services.Actor) *gin.Engine {
	handler := NewEventHandler(env.events)
	files := NewFileHandler(env.store, env.signer, zap.NewNop())

	r := newRouter(actor)
	r.GET("/files/:bucket/:key", files.ServePublic)
	r.GET("/api/events", handler.ListEvents)
	r.GET("/api/events/:id", handler.GetEvent)
	r.POST("/api/events/:id/register", handler.Register)
	r.GET("/api/events/:id/registration", handler.RegistrationStatus)
	r.GET("/api/admin/events", handler.ListAllEvents)
	r.POST("/api/admin/events", handler.CreateEvent)
	r.PUT("/api/admin/events/:id", handler.UpdateEvent)
	r.DELETE("/api/admin/events/:id", handler.DeleteEvent)
	return r
}

func eventFields(title string, at time.Time) map[string]string {
	return map[string]string{
		"title":       title,
		"description": "Pitch night",
		"event_date":  at.UTC().Format(time.RFC3339),
		"location":    "Seminar Hall",
		"mode":        "offline",
	}
}

func TestEventHandler_CreateWithImage(t *testing.T) {
	env := setupTestEnv(t)
	admin := eventRoutes(env, adminActor)

	w := doMultipart(t, admin, http.MethodPost, "/api/admin/events", eventFields("Demo Day", time.Now().Add(72*time.Hour)), &formFileSpec{
		field:   "image",
		name:    "poster.PNG",
		content: []byte("png-bytes"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	event := decode[dto.EventDTO](t, w)
	require.True(t, event.IsActive)
	require.True(t, event.RegistrationOpen)
	require.True(t, strings.HasPrefix(event.ImageURL, "http://api.test/files/event_images/event_"), event.ImageURL)
	require.True(t, strings.HasSuffix(event.ImageURL, ".png"), event.ImageURL)

	w = doJSON(t, admin, http.MethodGet, strings.TrimPrefix(event.ImageURL, "http://api.test"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "png-bytes", w.Body.String())
}

func TestEventHandler_CreateValidation(t *testing.T) {
	env := setupTestEnv(t)
	admin := eventRoutes(env, adminActor)

	w := doMultipart(t, admin, http.MethodPost, "/api/admin/events", eventFields("Old News", time.Now().Add(-24*time.Hour)), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, fieldDetails(t, w), "event_date")

	fields := eventFields("Demo Day", time.Now().Add(24*time.Hour))
	fields["event_date"] = "next friday"
	w = doMultipart(t, admin, http.MethodPost, "/api/admin/events", fields, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, fieldDetails(t, w), "event_date")

	w = doMultipart(t, admin, http.MethodPost, "/api/admin/events", eventFields("Demo Day", time.Now().Add(24*time.Hour)), &formFileSpec{
		field:   "image",
		name:    "poster.bmp",
		content: []byte("bmp"),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, fieldDetails(t, w), "image")
}

func TestEventHandler_InactiveEventsAreHidden(t *testing.T) {
	env := setupTestEnv(t)
	admin := eventRoutes(env, adminActor)
	student := eventRoutes(env, studentActor)

	fields := eventFields("Draft Event", time.Now().Add(48*time.Hour))
	fields["is_active"] = "false"
	w := doMultipart(t, admin, http.MethodPost, "/api/admin/events", fields, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	draft := decode[dto.EventDTO](t, w)
	require.False(t, draft.IsActive)

	w = doMultipart(t, admin, http.MethodPost, "/api/admin/events", eventFields("Live Event", time.Now().Add(24*time.Hour)), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, student, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode[struct {
		Events []dto.EventDTO `json:"events"`
	}](t, w)
	require.Len(t, listed.Events, 1)
	require.Equal(t, "Live Event", listed.Events[0].Title)

	w = doJSON(t, student, http.MethodGet, "/api/events/"+draft.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, admin, http.MethodGet, "/api/admin/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[struct {
		Events []dto.EventDTO `json:"events"`
	}](t, w).Events, 2)
}

func TestEventHandler_RegisterOncePerUser(t *testing.T) {
	env := setupTestEnv(t)
	admin := eventRoutes(env, adminActor)
	student := eventRoutes(env, studentActor)

	w := doMultipart(t, admin, http.MethodPost, "/api/admin/events", eventFields("Demo Day", time.Now().Add(72*time.Hour)), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	event := decode[dto.EventDTO](t, w)

	w = doJSON(t, student, http.MethodGet, "/api/events/"+event.ID+"/registration", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, decode[map[string]bool](t, w)["registered"])

	w = doJSON(t, student, http.MethodPost, "/api/events/"+event.ID+"/register", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, student, http.MethodPost, "/api/events/"+event.ID+"/register", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, student, http.MethodGet, "/api/events/"+event.ID+"/registration", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decode[map[string]bool](t, w)["registered"])

	w = doJSON(t, student, http.MethodGet, "/api/events/"+event.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, decode[dto.EventDTO](t, w).RegisteredCount)
}

func TestEventHandler_RegisterFullEvent(t *testing.T) {
	env := setupTestEnv(t)
	admin := eventRoutes(env, adminActor)

	fields := eventFields("Workshop", time.Now().Add(72*time.Hour))
	fields["max_participants"] = strconv.Itoa(1)
	w := doMultipart(t, admin, http.MethodPost, "/api/admin/events", fields, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	event := decode[dto.EventDTO](t, w)

	first := eventRoutes(env, studentActor)
	w = doJSON(t, first, http.MethodPost, "/api/events/"+event.ID+"/register", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	second := eventRoutes(env, services.Actor{UserID: "student-2", Email: "ravi@gcet.edu.in"})
	w = doJSON(t, second, http.MethodPost, "/api/events/"+event.ID+"/register", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEventHandler_UpdateAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	admin := eventRoutes(env, adminActor)

	w := doMultipart(t, admin, http.MethodPost, "/api/admin/events", eventFields("Demo Day", time.Now().Add(72*time.Hour)), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	event := decode[dto.EventDTO](t, w)

	fields := eventFields("Demo Day 2.0", event.EventDate)
	w = doMultipart(t, admin, http.MethodPut, "/api/admin/events/"+event.ID, fields, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "Demo Day 2.0", decode[dto.EventDTO](t, w).Title)

	w = doJSON(t, admin, http.MethodDelete, "/api/admin/events/"+event.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, admin, http.MethodGet, "/api/events/"+event.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventHandler_RegisterRequiresLogin(t *testing.T) {
	env := setupTestEnv(t)
	anonymous := eventRoutes(env, services.Actor{})

	w := doJSON(t, anonymous, http.MethodPost, "/api/events/some-id/register", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
