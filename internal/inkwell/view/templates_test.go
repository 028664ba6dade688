package view_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/blogservice"
	"github.com/inkwell-press/inkwell/internal/inkwell/view"
)

func TestRenderIndex(t *testing.T) {
	engine, err := view.NewEngine()
	require.NoError(t, err)

	feed := blogservice.FeedPage{
		Posts: []models.Post{
			{
				ID:        1,
				Body:      "first post",
				CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
				Author:    models.User{Username: "john"},
			},
		},
		Pagination: models.NewPagination(1, 20, 1),
	}

	rec := httptest.NewRecorder()

	err = engine.Render(rec, "pages/index.html", view.TemplateData{
		Title:       "Home",
		CurrentPath: "/",
		Data: struct {
			Feed         blogservice.FeedPage
			ShowFollowed bool
			CanWrite     bool
		}{Feed: feed},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, "first post")
	assert.Contains(t, body, "01 Mar 2026")
	assert.Contains(t, body, `<a href="/auth/login">Log in</a>`)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestRenderEscapesHTML(t *testing.T) {
	engine, err := view.NewEngine()
	require.NoError(t, err)

	feed := blogservice.FeedPage{
		Posts: []models.Post{
			{ID: 1, Body: "<script>alert(1)</script>", Author: models.User{Username: "john"}},
		},
		Pagination: models.NewPagination(1, 20, 1),
	}

	rec := httptest.NewRecorder()

	err = engine.Render(rec, "pages/index.html", view.TemplateData{
		Title: "Home",
		Data: struct {
			Feed         blogservice.FeedPage
			ShowFollowed bool
			CanWrite     bool
		}{Feed: feed},
	})
	require.NoError(t, err)

	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
}

func TestRenderModerateLinkByPermission(t *testing.T) {
	engine, err := view.NewEngine()
	require.NoError(t, err)

	data := struct {
		Status  int
		Message string
	}{Status: 404, Message: "Not found."}

	regular := &models.User{Username: "john", Role: models.Role{Permissions: 0x07}}
	moderator := &models.User{Username: "mod", Role: models.Role{Permissions: 0x0F}}

	rec := httptest.NewRecorder()
	require.NoError(t, engine.Render(rec, "pages/error.html", view.TemplateData{
		Title:       "Not Found",
		CurrentUser: regular,
		Data:        data,
	}))
	assert.NotContains(t, rec.Body.String(), `href="/moderate"`)

	rec = httptest.NewRecorder()
	require.NoError(t, engine.Render(rec, "pages/error.html", view.TemplateData{
		Title:       "Not Found",
		CurrentUser: moderator,
		Data:        data,
	}))
	assert.Contains(t, rec.Body.String(), `href="/moderate"`)
}

func TestRenderFlashes(t *testing.T) {
	engine, err := view.NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()

	err = engine.Render(rec, "pages/error.html", view.TemplateData{
		Title:   "Not Found",
		Flashes: []string{"Welcome back, john."},
		Data: struct {
			Status  int
			Message string
		}{Status: 404, Message: "Not found."},
	})
	require.NoError(t, err)

	assert.Contains(t, rec.Body.String(), "Welcome back, john.")
}

func TestRenderUnknownTemplate(t *testing.T) {
	engine, err := view.NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()

	err = engine.Render(rec, "pages/missing.html", view.TemplateData{Title: "x"})
	require.Error(t, err)
}
