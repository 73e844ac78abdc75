// Package views renders the site's pages as templ components. Components are
// built with templ.ComponentFunc over a buffer, the same way the engine's
// markdown renderer produces HTML, so the whole view layer stays plain Go.
package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/havenpaws/havensite"
)

// Funcs returns the full set of view functions wired into the application.
func Funcs() havensite.ViewFuncs {
	return havensite.ViewFuncs{
		Donate:        Donate,
		Story:         Story,
		NewsList:      NewsList,
		NewsDetail:    NewsDetail,
		AdminLogin:    AdminLogin,
		AdminPosts:    AdminPosts,
		AdminNewPost:  AdminNewPost,
		AdminEditPost: AdminEditPost,
		SlugField:     SlugField,
		NotFound:      NotFound,
		ServerError:   ServerError,
	}
}

// component wraps a buffer-writing function as a templ.Component.
func component(fn func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		fn(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// layout writes the shared page chrome around body.
func layout(buf *bytes.Buffer, cfg havensite.SiteConfig, title string, body func(*bytes.Buffer)) {
	buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
	buf.WriteString("<meta charset=\"utf-8\"/>")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
	buf.WriteString("<title>" + esc(title) + " · " + esc(cfg.Name) + "</title>")
	if cfg.Description != "" {
		buf.WriteString("<meta name=\"description\" content=\"" + esc(cfg.Description) + "\"/>")
	}
	buf.WriteString("<link rel=\"stylesheet\" href=\"/static/site.css\"/>")
	buf.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\" title=\"" + esc(cfg.Name) + "\" href=\"/feed.xml\"/>")
	buf.WriteString("</head><body>")
	buf.WriteString("<header class=\"site\"><nav>")
	buf.WriteString("<a href=\"/\">Donate</a>")
	buf.WriteString("<a href=\"/story\">Our Story</a>")
	buf.WriteString("<a href=\"/news\">News</a>")
	buf.WriteString("</nav></header><main>")
	body(buf)
	buf.WriteString("</main><footer class=\"site\">&copy; ")
	buf.WriteString(time.Now().UTC().Format("2006"))
	buf.WriteString(" " + esc(cfg.Name) + "</footer></body></html>")
}

func esc(s string) string {
	return html.EscapeString(s)
}

// postDate formats a post date for display.
func postDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
