package havensite

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Slugify converts a title to a URL-safe slug: compatibility-decompose,
// drop non-ASCII remnants, collapse every run of other characters into a
// single hyphen, trim hyphens, lowercase. Deterministic and pure; callers
// own collision checks.
func Slugify(title string) string {
	var b strings.Builder
	prev := false
	for _, r := range norm.NFKD.String(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prev = false
		case r > unicode.MaxASCII:
			// decomposition remnants (accents, symbols) vanish without
			// leaving a hyphen behind
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// AppendImagesMarkdown appends a markdown image link for every path not
// already present in body, separated from existing content by exactly one
// blank line. Presence is a substring check, so the function is idempotent
// for a fixed set of paths.
func AppendImagesMarkdown(body string, imagePaths []string) string {
	if len(imagePaths) == 0 {
		return body
	}
	var refs []string
	for _, p := range imagePaths {
		if strings.Contains(body, p) {
			continue
		}
		refs = append(refs, fmt.Sprintf("[![Rescue photo](%s)](%s)", p, p))
	}
	if len(refs) == 0 {
		return body
	}
	block := strings.Join(refs, "\n") + "\n"
	if cleaned := strings.TrimSpace(body); cleaned != "" {
		return cleaned + "\n\n" + block
	}
	return block
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// Excerpt returns the first max runes of the markdown source as a single
// line, cut at a word boundary.
func Excerpt(raw string, max int) string {
	text := strings.Join(strings.Fields(raw), " ")
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	cut := string([]rune(text)[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
