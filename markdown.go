package havensite

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/frontmatter"
	"gopkg.in/yaml.v3"
)

// postMeta is the YAML front matter block of a post file. Field order here
// is the order written to disk.
type postMeta struct {
	Title  string `yaml:"title"`
	Slug   string `yaml:"slug"`
	Date   string `yaml:"date"`
	Author string `yaml:"author,omitempty"`
}

// newMarkdown builds the goldmark instance used for all post rendering.
// GFM covers fenced code blocks and tables; the frontmatter extender keeps
// the metadata block out of the rendered HTML.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// parsePost converts a post file's source into a Post. Title and slug fall
// back to stem (the filename without extension) when front matter omits them.
// Date resolution order: front matter, then a YYYY-MM-DD filename prefix.
// If neither resolves, Date is left zero and the caller decides whether that
// is an error.
func parsePost(md goldmark.Markdown, src []byte, stem string) (*Post, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := md.Convert(src, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	meta := postMeta{}
	if data := frontmatter.Get(ctx); data != nil {
		if err := data.Decode(&meta); err != nil {
			return nil, fmt.Errorf("%w: decode front matter: %v", ErrValidation, err)
		}
	}

	post := &Post{
		Title:    meta.Title,
		Slug:     meta.Slug,
		Author:   meta.Author,
		RawBody:  stripFrontMatter(string(src)),
		BodyHTML: buf.String(),
	}
	if post.Title == "" {
		post.Title = stem
	}
	if post.Slug == "" {
		post.Slug = stem
	}

	if meta.Date != "" {
		date, err := parseDate(meta.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q: %v", ErrValidation, meta.Date, err)
		}
		post.Date = date
	} else if hasDatePrefix(stem) {
		if date, err := time.Parse("2006-01-02", stem[:10]); err == nil {
			post.Date = date
		}
	}

	return post, nil
}

// composePostFile renders a post back into its on-disk form: a YAML front
// matter block followed by the trimmed markdown body.
func composePostFile(meta postMeta, body string) ([]byte, error) {
	fm, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal front matter: %w", err)
	}
	return []byte(fmt.Sprintf("---\n%s---\n\n%s\n", fm, strings.TrimSpace(body))), nil
}

// dateFormats accepted in front matter, tried in order.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

// hasDatePrefix reports whether a filename stem starts with YYYY-MM-DD-.
func hasDatePrefix(stem string) bool {
	return len(stem) > 11 && stem[4] == '-' && stem[7] == '-' && stem[10] == '-'
}

// stripFrontMatter removes a leading YAML front matter block, delimited by
// `---` lines, and returns the trimmed markdown body. A `---` line later in
// the body is left alone.
func stripFrontMatter(text string) string {
	if !strings.HasPrefix(text, "---") {
		return strings.TrimSpace(text)
	}
	lines := strings.Split(text, "\n")
	if strings.TrimRight(lines[0], "\r") != "---" {
		return strings.TrimSpace(text)
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			return strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}
	return strings.TrimSpace(text)
}
