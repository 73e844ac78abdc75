package views

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenpaws/havensite"
)

func renderToString(t *testing.T, cmp templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, cmp.Render(context.Background(), &buf))
	return buf.String()
}

func testConfig() havensite.SiteConfig {
	return havensite.SiteConfig{
		Name:        "Haven Paws Rescue",
		URL:         "https://example.org",
		Description: "News and stories from the rescue.",
	}
}

func TestNewsListEscapesTitles(t *testing.T) {
	posts := []*havensite.Post{{
		Title:   "Cats & <Dogs>",
		Slug:    "cats-and-dogs",
		Date:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		RawBody: "Some body",
	}}
	out := renderToString(t, NewsList(testConfig(), posts))
	assert.Contains(t, out, "Cats &amp; &lt;Dogs&gt;")
	assert.Contains(t, out, `href="/news/cats-and-dogs"`)
	assert.NotContains(t, out, "<Dogs>")
}

func TestNewsDetailInjectsRenderedHTML(t *testing.T) {
	post := &havensite.Post{
		Title:    "Adoption Day",
		Slug:     "adoption-day",
		Date:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Author:   "jo",
		BodyHTML: "<p>Doors open at ten.</p>",
	}
	out := renderToString(t, NewsDetail(testConfig(), post))
	assert.Contains(t, out, "<p>Doors open at ten.</p>")
	assert.Contains(t, out, "by jo")
	assert.Contains(t, out, "February 1, 2026")
}

func TestStoryFallsBackWithoutPost(t *testing.T) {
	out := renderToString(t, Story(testConfig(), nil))
	assert.Contains(t, out, "Our story is still being written.")
}

func TestAdminLoginShowsError(t *testing.T) {
	out := renderToString(t, AdminLogin(testConfig(), true, "tok123"))
	assert.Contains(t, out, "Invalid credentials")
	assert.Contains(t, out, `name="_csrf" value="tok123"`)

	out = renderToString(t, AdminLogin(testConfig(), false, "tok123"))
	assert.NotContains(t, out, "Invalid credentials")
}

func TestAdminEditPostPrefillsForm(t *testing.T) {
	post := &havensite.Post{
		Title:   "Open Day",
		Slug:    "open-day",
		RawBody: "# Heading\n\nBody text",
	}
	out := renderToString(t, AdminEditPost(testConfig(), post, havensite.PostForm{}, "tok"))
	assert.Contains(t, out, `value="Open Day"`)
	assert.Contains(t, out, `action="/admin/posts/open-day/edit"`)
	assert.Contains(t, out, "# Heading")
}

func TestSlugFieldFragment(t *testing.T) {
	out := renderToString(t, SlugField("rescue-day"))
	assert.Contains(t, out, `value="rescue-day"`)
	assert.Contains(t, out, `id="slug-field"`, "fragment must carry the container the preview script swaps")
	assert.NotContains(t, out, "<html", "fragment must not include page chrome")
}

func TestAdminFormsWireSlugPreview(t *testing.T) {
	newForm := renderToString(t, AdminNewPost(testConfig(), havensite.PostForm{}, "tok"))
	assert.Contains(t, newForm, `id="slug-field"`)
	assert.Contains(t, newForm, "/admin/generate-slug")

	post := &havensite.Post{Title: "Open Day", Slug: "open-day", Date: time.Now()}
	editForm := renderToString(t, AdminEditPost(testConfig(), post, havensite.PostForm{}, "tok"))
	assert.Contains(t, editForm, "/admin/generate-slug")
}

func TestFuncsIsFullyPopulated(t *testing.T) {
	funcs := Funcs()
	assert.NotNil(t, funcs.Donate)
	assert.NotNil(t, funcs.Story)
	assert.NotNil(t, funcs.NewsList)
	assert.NotNil(t, funcs.NewsDetail)
	assert.NotNil(t, funcs.AdminLogin)
	assert.NotNil(t, funcs.AdminPosts)
	assert.NotNil(t, funcs.AdminNewPost)
	assert.NotNil(t, funcs.AdminEditPost)
	assert.NotNil(t, funcs.SlugField)
	assert.NotNil(t, funcs.NotFound)
	assert.NotNil(t, funcs.ServerError)
}
