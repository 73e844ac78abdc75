package havensite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func writeRawPost(t *testing.T, s *Store, name, content string) string {
	t.Helper()
	path := filepath.Join(s.PostsDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCreateAndGetPostRoundTrip(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	created, err := s.CreatePost("Adoption Weekend", "adoption-weekend", "Come meet the dogs.\n\nDoors open at ten.", "admin", date)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.PostsDir(), "2026-01-15-adoption-weekend.md"), created.Path)

	got, err := s.GetPost("adoption-weekend")
	require.NoError(t, err)
	assert.Equal(t, "Adoption Weekend", got.Title)
	assert.Equal(t, "adoption-weekend", got.Slug)
	assert.Equal(t, "admin", got.Author)
	assert.Equal(t, "Come meet the dogs.\n\nDoors open at ten.", got.RawBody)
	assert.True(t, got.Date.Equal(date))
	assert.Contains(t, got.BodyHTML, "<p>Come meet the dogs.</p>")
}

func TestGetPostNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetPost("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPostsFilenameFallbacks(t *testing.T) {
	s := newTestStore(t)
	writeRawPost(t, s, "2025-06-01-summer-fair.md", "No front matter here, just markdown.")

	posts, err := s.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)

	p := posts[0]
	assert.Equal(t, "2025-06-01-summer-fair", p.Title)
	assert.Equal(t, "2025-06-01-summer-fair", p.Slug)
	assert.True(t, p.Date.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestListPostsSkipsUndatedFiles(t *testing.T) {
	s := newTestStore(t)
	writeRawPost(t, s, "notes.md", "no front matter, no filename date")
	_, err := s.CreatePost("Kept", "kept", "body", "", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	posts, err := s.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "kept", posts[0].Slug)
}

func TestListPostsIgnoresNonMarkdown(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.PostsDir(), "README.txt"), []byte("not a post"), 0o644))

	posts, err := s.ListPosts()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestUpdatePostRenamesSlugAndMedia(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := s.CreatePost("Open Day", "open-day", "Original body", "admin", date)
	require.NoError(t, err)

	_, err = s.SaveMedia("open-day", "dog.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)

	updated, err := s.UpdatePost("open-day", "Open Day 2026", "open-day-2026", "Updated body", "")
	require.NoError(t, err)
	assert.Equal(t, "open-day-2026", updated.Slug)
	assert.Equal(t, "admin", updated.Author, "author carries over when not supplied")

	// Old file and media directory are gone; new ones exist with the content.
	assert.NoFileExists(t, filepath.Join(s.PostsDir(), "2026-03-10-open-day.md"))
	assert.FileExists(t, filepath.Join(s.PostsDir(), "2026-03-10-open-day-2026.md"))
	assert.NoDirExists(t, filepath.Join(s.MediaDir(), "open-day"))
	moved, err := os.ReadFile(filepath.Join(s.MediaDir(), "open-day-2026", "dog.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(moved))

	got, err := s.GetPost("open-day-2026")
	require.NoError(t, err)
	assert.Equal(t, "Open Day 2026", got.Title)
	assert.Equal(t, "Updated body", got.RawBody)
}

func TestUpdatePostEmptySlugKeepsExisting(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := s.CreatePost("Open Day", "open-day", "Original body", "admin", date)
	require.NoError(t, err)

	updated, err := s.UpdatePost("open-day", "Open Day", "", "New body", "admin")
	require.NoError(t, err)
	assert.Equal(t, "open-day", updated.Slug)
	assert.FileExists(t, filepath.Join(s.PostsDir(), "2026-03-10-open-day.md"))
}

func TestUpdatePostConflict(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	a, err := s.CreatePost("Post A", "a", "Body A", "admin", date)
	require.NoError(t, err)
	_, err = s.CreatePost("Post B", "b", "Body B", "admin", date)
	require.NoError(t, err)

	before, err := os.ReadFile(a.Path)
	require.NoError(t, err)

	_, err = s.UpdatePost("a", "Post A renamed", "b", "Changed body", "admin")
	assert.ErrorIs(t, err, ErrConflict)

	after, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "post a must be untouched after a conflict")
}

func TestUpdatePostNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpdatePost("ghost", "Title", "", "body", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	t.Run("with media", func(t *testing.T) {
		post, err := s.CreatePost("Gone", "gone", "body", "", date)
		require.NoError(t, err)
		_, err = s.SaveMedia("gone", "cat.jpg", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, s.DeletePost("gone", true))
		assert.NoFileExists(t, post.Path)
		assert.NoDirExists(t, filepath.Join(s.MediaDir(), "gone"))
	})

	t.Run("media survives when deleteMedia is false", func(t *testing.T) {
		post, err := s.CreatePost("Kept Media", "kept-media", "body", "", date)
		require.NoError(t, err)
		_, err = s.SaveMedia("kept-media", "cat.jpg", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, s.DeletePost("kept-media", false))
		assert.NoFileExists(t, post.Path)
		assert.FileExists(t, filepath.Join(s.MediaDir(), "kept-media", "cat.jpg"))
	})

	t.Run("missing post", func(t *testing.T) {
		assert.ErrorIs(t, s.DeletePost("ghost", true), ErrNotFound)
	})
}

func TestStory(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Story()
	assert.ErrorIs(t, err, ErrNotFound)

	storyMD := "---\ntitle: How it began\n---\n\nIt started with one stray cat."
	require.NoError(t, os.WriteFile(filepath.Join(s.contentDir, storyFile), []byte(storyMD), 0o644))

	story, err := s.Story()
	require.NoError(t, err)
	assert.Equal(t, "How it began", story.Title)
	assert.Equal(t, "It started with one stray cat.", story.RawBody)
	assert.False(t, story.Date.IsZero(), "story date falls back to file mtime")
	assert.Contains(t, story.BodyHTML, "<p>It started with one stray cat.</p>")
}

func TestSortPostsByDate(t *testing.T) {
	posts := []*Post{
		{Slug: "old", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "new", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "mid", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	SortPostsByDate(posts)
	assert.Equal(t, "new", posts[0].Slug)
	assert.Equal(t, "mid", posts[1].Slug)
	assert.Equal(t, "old", posts[2].Slug)
}

// TestRescueDayFlow walks the admin create flow end to end: slug derived
// from the title, one uploaded image, image link appended to the body.
func TestRescueDayFlow(t *testing.T) {
	s := newTestStore(t)

	slug := Slugify("Rescue Day")
	require.Equal(t, "rescue-day", slug)

	imgPath, err := s.SaveMedia(slug, "dog.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)
	assert.Equal(t, "/media/rescue-day/dog.jpg", imgPath)

	body := AppendImagesMarkdown("Hello", []string{imgPath})
	created, err := s.CreatePost("Rescue Day", slug, body, "admin", time.Time{})
	require.NoError(t, err)

	today := time.Now().Format("2006-01-02")
	assert.Equal(t, filepath.Join(s.PostsDir(), today+"-rescue-day.md"), created.Path)

	raw, err := os.ReadFile(created.Path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "slug: rescue-day")

	got, err := s.GetPost("rescue-day")
	require.NoError(t, err)
	assert.Contains(t, got.RawBody, "Hello")
	assert.Contains(t, got.RawBody, "[![Rescue photo](/media/rescue-day/dog.jpg)](/media/rescue-day/dog.jpg)")
}

func TestCreatePostOverwritesSameDateAndSlug(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.CreatePost("First", "twice", "first body", "", date)
	require.NoError(t, err)
	_, err = s.CreatePost("Second", "twice", "second body", "", date)
	require.NoError(t, err)

	got, err := s.GetPost("twice")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Title)
	assert.Equal(t, "second body", got.RawBody)
}
