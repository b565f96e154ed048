package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/promptbase/lib/promptstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/ncruces/go-sqlite3/embed"
	sqlite "github.com/ncruces/go-sqlite3/gormlite"
)

func newTestApp(t *testing.T) (*echo.Echo, *promptstore.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	store := promptstore.New(db)
	require.NoError(t, store.Initialize())

	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))

	e.GET("/", homePageHandler(store))
	e.POST("/prompts", savePrompt(store))
	e.POST("/prompts/:id/favorite", toggleFavorite(store))
	e.POST("/prompts/:id/delete", deletePrompt(store))

	return e, store
}

func getPage(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHomePageRendersPrompts(t *testing.T) {
	e, store := newTestApp(t)

	_, err := store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)

	rec := getPage(e, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Greeting")
	assert.Contains(t, rec.Body.String(), "Hello, {name}!")
	assert.Contains(t, rec.Body.String(), "Add a prompt")
}

func TestHomePageEditModePrefillsForm(t *testing.T) {
	e, store := newTestApp(t)

	created, err := store.Create("Greeting", "Hello, {name}!", true)
	require.NoError(t, err)

	rec := getPage(e, fmt.Sprintf("/?edit=%d", created.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Edit prompt")
	assert.Contains(t, rec.Body.String(), `value="Greeting"`)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf(`name="id" value="%d"`, created.ID))
}

func TestHomePageEditMissingPromptShowsError(t *testing.T) {
	e, _ := newTestApp(t)

	rec := getPage(e, "/?edit=42")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prompt not found")
	// form falls back to add mode
	assert.Contains(t, rec.Body.String(), "Add a prompt")
}

func TestCreatePromptRedirects(t *testing.T) {
	e, store := newTestApp(t)

	rec := postForm(e, "/prompts", url.Values{
		"title":   {"Greeting"},
		"content": {"Hello, {name}!"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	prompts, err := store.List("", promptstore.SortCreatedDesc)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, "Greeting", prompts[0].Title)
	assert.False(t, prompts[0].IsFavorite)
}

func TestCreatePromptWithFavoriteChecked(t *testing.T) {
	e, store := newTestApp(t)

	rec := postForm(e, "/prompts", url.Values{
		"title":    {"Greeting"},
		"content":  {"Hello, {name}!"},
		"favorite": {"on"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)

	prompts, err := store.List("", promptstore.SortCreatedDesc)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.True(t, prompts[0].IsFavorite)
}

func TestEmptyTitleMakesNoStoreCall(t *testing.T) {
	e, store := newTestApp(t)

	rec := postForm(e, "/prompts", url.Values{
		"title":   {""},
		"content": {"typed but not yet saved"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "title must not be empty")
	// the typed content survives in the re-rendered form
	assert.Contains(t, rec.Body.String(), "typed but not yet saved")

	prompts, err := store.List("", promptstore.SortCreatedDesc)
	require.NoError(t, err)
	assert.Empty(t, prompts)
}

func TestEmptyContentMakesNoStoreCall(t *testing.T) {
	e, store := newTestApp(t)

	rec := postForm(e, "/prompts", url.Values{
		"title":   {"A title"},
		"content": {""},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "content must not be empty")
	assert.Contains(t, rec.Body.String(), `value="A title"`)

	prompts, err := store.List("", promptstore.SortCreatedDesc)
	require.NoError(t, err)
	assert.Empty(t, prompts)
}

func TestEditSubmissionUpdatesPrompt(t *testing.T) {
	e, store := newTestApp(t)

	created, err := store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)

	rec := postForm(e, "/prompts", url.Values{
		"id":       {fmt.Sprint(created.ID)},
		"title":    {"Greeting"},
		"content":  {"Hi, {name}!"},
		"favorite": {"on"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)

	updated, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi, {name}!", updated.Content)
	assert.True(t, updated.IsFavorite)
}

func TestEditSubmissionMissingIDShowsError(t *testing.T) {
	e, _ := newTestApp(t)

	rec := postForm(e, "/prompts", url.Values{
		"id":      {"42"},
		"title":   {"Greeting"},
		"content": {"Hi, {name}!"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "prompt not found")
}

func TestFavoriteActionRedirectsPreservingQuery(t *testing.T) {
	e, store := newTestApp(t)

	created, err := store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)

	rec := postForm(e, fmt.Sprintf("/prompts/%d/favorite", created.ID), url.Values{
		"q":    {"greet"},
		"sort": {"title-asc"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/?q=greet&sort=title-asc", rec.Header().Get(echo.HeaderLocation))

	toggled, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)
}

func TestFavoriteActionMissingPrompt(t *testing.T) {
	e, _ := newTestApp(t)

	rec := postForm(e, "/prompts/42/favorite", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "prompt not found")
}

func TestDeleteActionRemovesPrompt(t *testing.T) {
	e, store := newTestApp(t)

	created, err := store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)

	rec := postForm(e, fmt.Sprintf("/prompts/%d/delete", created.ID), url.Values{})
	assert.Equal(t, http.StatusFound, rec.Code)

	prompts, err := store.List("", promptstore.SortCreatedDesc)
	require.NoError(t, err)
	assert.Empty(t, prompts)

	// deleting again is a quiet no-op
	rec = postForm(e, fmt.Sprintf("/prompts/%d/delete", created.ID), url.Values{})
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestSearchAndSortControlsReachTheStore(t *testing.T) {
	e, store := newTestApp(t)

	_, err := store.Create("banana", "yellow", false)
	require.NoError(t, err)
	_, err = store.Create("apple", "green", false)
	require.NoError(t, err)
	_, err = store.Create("grapefruit", "pink", false)
	require.NoError(t, err)

	rec := getPage(e, "/?q=ap&sort=title-asc")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "apple")
	assert.Contains(t, body, "grapefruit")
	assert.NotContains(t, body, "banana")
	assert.Less(t, strings.Index(body, "apple"), strings.Index(body, "grapefruit"))
}
