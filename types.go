package havensite

import "time"

// Post is the core content type, backed by a markdown file with YAML
// front matter under the content directory.
type Post struct {
	Title    string
	Slug     string
	Date     time.Time
	Author   string
	RawBody  string // markdown source, front matter stripped
	BodyHTML string // rendered HTML
	Path     string // backing file location, owned by the Store
}

// PostForm carries the state of an admin create/edit form back into the
// rendered view: the outcome message, the effective slug, and the image
// paths saved during this request.
type PostForm struct {
	Success     bool
	Error       string
	Slug        string
	SavedImages []string
}
