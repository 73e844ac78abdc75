package havensite

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/yuin/goldmark"
)

const storyFile = "story.md"

// Store reads and writes markdown posts under a content directory laid out as:
//
//	content/
//	  posts/     one file per post, named YYYY-MM-DD-{slug}.md
//	  media/     one directory per slug holding uploaded images
//	  story.md   the singular story page
//
// The filesystem is the sole source of truth: every read re-scans the posts
// directory. All mutations serialize on one mutex so concurrent admin requests
// cannot interleave a read-modify-write sequence on the same slug.
type Store struct {
	contentDir string
	md         goldmark.Markdown
	logger     *log.Logger

	mu sync.Mutex // guards all mutations
}

// NewStore creates a Store rooted at contentDir, ensuring the posts and media
// directories exist.
func NewStore(contentDir string) (*Store, error) {
	for _, dir := range []string{filepath.Join(contentDir, "posts"), filepath.Join(contentDir, "media")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create content dir: %w", err)
		}
	}
	return &Store{
		contentDir: contentDir,
		md:         newMarkdown(),
		logger:     log.New("store"),
	}, nil
}

// PostsDir returns the directory holding post files.
func (s *Store) PostsDir() string {
	return filepath.Join(s.contentDir, "posts")
}

// MediaDir returns the root directory for uploaded media.
func (s *Store) MediaDir() string {
	return filepath.Join(s.contentDir, "media")
}

func (s *Store) mediaDirFor(slug string) string {
	return filepath.Join(s.MediaDir(), slug)
}

// parseFile parses a single post file. A post whose date cannot be resolved
// from front matter or filename fails with ErrValidation rather than
// defaulting to the current time, so repeated parses stay deterministic.
func (s *Store) parseFile(path string) (*Post, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read post: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	post, err := parsePost(s.md, src, stem)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if post.Date.IsZero() {
		return nil, fmt.Errorf("parse %s: %w: no date in front matter or filename", filepath.Base(path), ErrValidation)
	}
	post.Path = path
	return post, nil
}

// ListPosts scans the posts directory and parses every markdown file.
// Files that fail to parse are skipped with a warning; the scan itself
// failing propagates. The result is unordered.
func (s *Store) ListPosts() ([]*Post, error) {
	entries, err := os.ReadDir(s.PostsDir())
	if err != nil {
		return nil, fmt.Errorf("scan posts: %w", err)
	}
	var posts []*Post
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		post, err := s.parseFile(filepath.Join(s.PostsDir(), entry.Name()))
		if err != nil {
			s.logger.Warnf("skipping post: %v", err)
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// GetPost scans all post files and returns the first whose slug matches.
// Linear in the number of posts; acceptable for a small corpus.
func (s *Store) GetPost(slug string) (*Post, error) {
	posts, err := s.ListPosts()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
}

// Story parses the singular story file. The story carries no date prefix, so
// a missing front-matter date falls back to the file's modification time.
func (s *Store) Story() (*Post, error) {
	path := filepath.Join(s.contentDir, storyFile)
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: story", ErrNotFound)
		}
		return nil, fmt.Errorf("read story: %w", err)
	}
	post, err := parsePost(s.md, src, strings.TrimSuffix(storyFile, ".md"))
	if err != nil {
		return nil, fmt.Errorf("parse story: %w", err)
	}
	if post.Date.IsZero() {
		if info, err := os.Stat(path); err == nil {
			post.Date = info.ModTime()
		}
	}
	post.Path = path
	return post, nil
}

// CreatePost writes a new post file named from date+slug. A zero date means
// now. An existing file with the same date and slug is silently overwritten.
func (s *Store) CreatePost(title, slug, body, author string, date time.Time) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if date.IsZero() {
		date = time.Now()
	}
	path := s.postPath(date, slug)
	if err := s.writePostFile(path, title, slug, body, author, date); err != nil {
		return nil, err
	}
	return &Post{
		Title:   title,
		Slug:    slug,
		Date:    date,
		Author:  author,
		RawBody: strings.TrimSpace(body),
		Path:    path,
	}, nil
}

// UpdatePost rewrites the post currently known by existingSlug. The target
// slug falls back to existingSlug when newSlug is empty. If the target
// filename already belongs to a different post the update fails with
// ErrConflict and the existing post is untouched.
//
// The sequence is recovery-aware: the new file is written while the old one
// still exists, and if the media directory rename fails the new file is
// removed again so no partially-applied state survives.
func (s *Store) UpdatePost(existingSlug, title, newSlug, body, author string) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.GetPost(existingSlug)
	if err != nil {
		return nil, err
	}

	target := newSlug
	if target == "" {
		target = existingSlug
	}
	if author == "" {
		author = post.Author
	}

	newPath := s.postPath(post.Date, target)
	if newPath != post.Path {
		if _, err := os.Stat(newPath); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrConflict, target)
		}
	}

	if err := s.writePostFile(newPath, title, target, body, author, post.Date); err != nil {
		return nil, err
	}

	oldMedia := s.mediaDirFor(existingSlug)
	newMedia := s.mediaDirFor(target)
	mediaMoved := false
	if target != existingSlug {
		if _, err := os.Stat(oldMedia); err == nil {
			if err := os.Rename(oldMedia, newMedia); err != nil {
				if newPath != post.Path {
					_ = os.Remove(newPath)
				}
				return nil, fmt.Errorf("rename media dir: %w", err)
			}
			mediaMoved = true
		}
	}

	if newPath != post.Path {
		if err := os.Remove(post.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			// Compensate so the store stays consistent: undo the media move
			// and drop the new file.
			if mediaMoved {
				_ = os.Rename(newMedia, oldMedia)
			}
			_ = os.Remove(newPath)
			return nil, fmt.Errorf("remove old post file: %w", err)
		}
	}

	return &Post{
		Title:   title,
		Slug:    target,
		Date:    post.Date,
		Author:  author,
		RawBody: strings.TrimSpace(body),
		Path:    newPath,
	}, nil
}

// DeletePost removes the post file for slug and, when deleteMedia is set,
// its media directory.
func (s *Store) DeletePost(slug string, deleteMedia bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.GetPost(slug)
	if err != nil {
		return err
	}
	if err := os.Remove(post.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove post file: %w", err)
	}
	if deleteMedia {
		if err := os.RemoveAll(s.mediaDirFor(slug)); err != nil {
			return fmt.Errorf("remove media dir: %w", err)
		}
	}
	return nil
}

// SaveMedia stores an uploaded file unmodified under media/{slug}/ and
// returns the public path to reference it from markdown.
func (s *Store) SaveMedia(slug, filename string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filename = filepath.Base(filename)
	if filename == "" || filename == "." || filename == string(os.PathSeparator) {
		filename = "image"
	}
	dir := s.mediaDirFor(slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return "/media/" + slug + "/" + filename, nil
}

func (s *Store) postPath(date time.Time, slug string) string {
	return filepath.Join(s.PostsDir(), fmt.Sprintf("%s-%s.md", date.Format("2006-01-02"), slug))
}

func (s *Store) writePostFile(path, title, slug, body, author string, date time.Time) error {
	content, err := composePostFile(postMeta{
		Title:  title,
		Slug:   slug,
		Date:   date.Format(time.RFC3339),
		Author: author,
	}, body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write post file: %w", err)
	}
	return nil
}

// SortPostsByDate orders posts newest first, in place.
func SortPostsByDate(posts []*Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}
