package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/havenpaws/havensite"
)

// Donate is the landing page.
func Donate(cfg havensite.SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, "Donate", func(buf *bytes.Buffer) {
			buf.WriteString("<h1>Help us keep them safe</h1>")
			buf.WriteString("<p>" + esc(cfg.Name) + " takes in abandoned and injured animals, ")
			buf.WriteString("nurses them back to health, and finds them new homes. ")
			buf.WriteString("Every donation pays for food, shelter, and veterinary care.</p>")
			buf.WriteString("<p><a class=\"donate-button\" href=\"/story\">Read our story</a></p>")
			buf.WriteString("<h2>Ways to give</h2>")
			buf.WriteString("<ul>")
			buf.WriteString("<li>One-time or monthly bank transfer — details on request</li>")
			buf.WriteString("<li>Food and blanket drop-offs at the shelter</li>")
			buf.WriteString("<li>Fostering — the biggest gift of all</li>")
			buf.WriteString("</ul>")
			buf.WriteString("<p>Follow the <a href=\"/news\">news section</a> to see what your support makes possible.</p>")
		})
	})
}

// Story renders the story page. A nil story falls back to a placeholder.
func Story(cfg havensite.SiteConfig, story *havensite.Post) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, "Our Story", func(buf *bytes.Buffer) {
			if story == nil {
				buf.WriteString("<h1>Our Story</h1>")
				buf.WriteString("<p>Our story is still being written.</p>")
				return
			}
			buf.WriteString("<article><h1>" + esc(story.Title) + "</h1>")
			buf.WriteString("<div class=\"post-body\">")
			buf.WriteString(story.BodyHTML)
			buf.WriteString("</div></article>")
		})
	})
}

// NewsList renders the news index, newest first.
func NewsList(cfg havensite.SiteConfig, posts []*havensite.Post) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, "News", func(buf *bytes.Buffer) {
			buf.WriteString("<h1>News</h1>")
			if len(posts) == 0 {
				buf.WriteString("<p>No news yet — check back soon.</p>")
				return
			}
			for _, p := range posts {
				buf.WriteString("<article>")
				buf.WriteString("<h2><a href=\"/news/" + esc(p.Slug) + "\">" + esc(p.Title) + "</a></h2>")
				buf.WriteString("<p class=\"post-date\">" + postDate(p.Date) + "</p>")
				buf.WriteString("<p>" + esc(havensite.Excerpt(p.RawBody, 200)) + "</p>")
				buf.WriteString("</article>")
			}
		})
	})
}

// NewsDetail renders a single post.
func NewsDetail(cfg havensite.SiteConfig, post *havensite.Post) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, post.Title, func(buf *bytes.Buffer) {
			buf.WriteString("<article><h1>" + esc(post.Title) + "</h1>")
			buf.WriteString("<p class=\"post-date\">" + postDate(post.Date) + "</p>")
			if post.Author != "" {
				buf.WriteString("<p class=\"post-author\">by " + esc(post.Author) + "</p>")
			}
			buf.WriteString("<div class=\"post-body\">")
			buf.WriteString(post.BodyHTML)
			buf.WriteString("</div></article>")
			buf.WriteString("<p><a href=\"/news\">&larr; All news</a></p>")
		})
	})
}

// NotFound is the styled 404 page.
func NotFound(cfg havensite.SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, "Not Found", func(buf *bytes.Buffer) {
			buf.WriteString("<h1>Page not found</h1>")
			buf.WriteString("<p>The page you were looking for has wandered off. ")
			buf.WriteString("Try the <a href=\"/news\">news section</a> or head <a href=\"/\">home</a>.</p>")
		})
	})
}

// ServerError is the styled 500 page.
func ServerError(cfg havensite.SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, "Something went wrong", func(buf *bytes.Buffer) {
			buf.WriteString("<h1>Something went wrong</h1>")
			buf.WriteString("<p>We have been notified. Please try again in a moment.</p>")
		})
	})
}
