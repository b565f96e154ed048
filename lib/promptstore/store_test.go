package promptstore

import (
	errs "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/ncruces/go-sqlite3/embed"
	sqlite "github.com/ncruces/go-sqlite3/gormlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	store := New(db)
	require.NoError(t, store.Initialize())
	return store
}

// settle keeps consecutive mutations from landing on the same stored
// timestamp.
func settle() {
	time.Sleep(20 * time.Millisecond)
}

func TestInitializeIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Initialize())
	assert.NoError(t, store.Initialize())
}

func TestCreateAndList(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	prompts, err := store.List("", SortCreatedDesc)
	require.NoError(t, err)
	require.Len(t, prompts, 1)

	got := prompts[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Greeting", got.Title)
	assert.Equal(t, "Hello, {name}!", got.Content)
	assert.False(t, got.IsFavorite)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestCreateValidatesFields(t *testing.T) {
	store := newTestStore(t)

	var validationErr ValidationError

	_, err := store.Create("", "some content", false)
	require.Error(t, err)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	_, err = store.Create("some title", "", false)
	require.Error(t, err)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "content", validationErr.Field)

	prompts, err := store.List("", SortCreatedDesc)
	require.NoError(t, err)
	assert.Empty(t, prompts)
}

func TestListFilterMatchesTitleOrContent(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create("Shell tricks", "pipe everything", false)
	require.NoError(t, err)
	_, err = store.Create("Email draft", "Dear SHELL enthusiasts", false)
	require.NoError(t, err)
	_, err = store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)

	matches, err := store.List("shell", SortCreatedAsc)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Shell tricks", matches[0].Title)
	assert.Equal(t, "Email draft", matches[1].Title)

	all, err := store.List("", SortCreatedAsc)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := store.List("no such prompt", SortCreatedAsc)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListFilterTreatsWildcardsLiterally(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create("Percent", "use 100% of the context", false)
	require.NoError(t, err)
	_, err = store.Create("Plain", "nothing special here", false)
	require.NoError(t, err)

	matches, err := store.List("100%", SortCreatedAsc)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Percent", matches[0].Title)

	matches, err = store.List("_", SortCreatedAsc)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestListSortModes(t *testing.T) {
	store := newTestStore(t)

	for _, title := range []string{"banana", "apple", "cherry"} {
		_, err := store.Create(title, "body of "+title, false)
		require.NoError(t, err)
		settle()
	}

	titlesFor := func(sort SortMode) []string {
		prompts, err := store.List("", sort)
		require.NoError(t, err)
		titles := make([]string, 0, len(prompts))
		for _, p := range prompts {
			titles = append(titles, p.Title)
		}
		return titles
	}

	assert.Equal(t, []string{"banana", "apple", "cherry"}, titlesFor(SortCreatedAsc))
	assert.Equal(t, []string{"cherry", "apple", "banana"}, titlesFor(SortCreatedDesc))
	assert.Equal(t, []string{"apple", "banana", "cherry"}, titlesFor(SortTitleAsc))
	assert.Equal(t, []string{"cherry", "banana", "apple"}, titlesFor(SortTitleDesc))
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortTitleAsc, ParseSortMode("title-asc"))
	assert.Equal(t, SortCreatedDesc, ParseSortMode(""))
	assert.Equal(t, SortCreatedDesc, ParseSortMode("id; DROP TABLE prompts"))
}

func TestToggleFavoriteTwiceRestoresValue(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)

	settle()
	once, err := store.ToggleFavorite(created.ID)
	require.NoError(t, err)
	assert.True(t, once.IsFavorite)
	assert.True(t, once.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, once.CreatedAt.Equal(created.CreatedAt))

	settle()
	twice, err := store.ToggleFavorite(created.ID)
	require.NoError(t, err)
	assert.False(t, twice.IsFavorite)
	assert.True(t, twice.UpdatedAt.After(once.UpdatedAt))
}

func TestToggleFavoriteMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.ToggleFavorite(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)

	settle()
	updated, err := store.Update(created.ID, "Greeting", "Hi, {name}!", true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Hi, {name}!", updated.Content)
	assert.True(t, updated.IsFavorite)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
}

func TestUpdateValidatesFields(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)

	var validationErr ValidationError
	_, err = store.Update(created.ID, "", "Hi!", false)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	unchanged, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Greeting", unchanged.Title)
}

func TestUpdateMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Update(42, "title", "content", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)

	assert.NoError(t, store.Delete(created.ID))
	assert.NoError(t, store.Delete(created.ID))

	prompts, err := store.List("", SortCreatedDesc)
	require.NoError(t, err)
	assert.Empty(t, prompts)
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(42)
	assert.True(t, errs.Is(err, ErrNotFound))
}

func TestFullLifecycle(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("Greeting", "Hello, {name}!", false)
	require.NoError(t, err)

	prompts, err := store.List("", SortTitleAsc)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, "Greeting", prompts[0].Title)
	assert.Equal(t, "Hello, {name}!", prompts[0].Content)
	assert.False(t, prompts[0].IsFavorite)

	settle()
	favorited, err := store.ToggleFavorite(created.ID)
	require.NoError(t, err)
	assert.True(t, favorited.IsFavorite)

	settle()
	updated, err := store.Update(created.ID, "Greeting", "Hi, {name}!", true)
	require.NoError(t, err)
	assert.Equal(t, "Hi, {name}!", updated.Content)
	assert.True(t, updated.IsFavorite)
	assert.True(t, updated.UpdatedAt.After(favorited.UpdatedAt))

	require.NoError(t, store.Delete(created.ID))

	prompts, err = store.List("", SortCreatedDesc)
	require.NoError(t, err)
	assert.Empty(t, prompts)

	_, err = store.Update(created.ID, "Greeting", "Hi again", false)
	assert.ErrorIs(t, err, ErrNotFound)
}
