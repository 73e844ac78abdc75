package havensite

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *App) handleLoginForm(c echo.Context) error {
	if IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/posts")
	}
	return Render(c, a.Views.AdminLogin(a.Config, false, CsrfToken(c)))
}

func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	username := c.FormValue("username")
	password := c.FormValue("password")
	if a.Authenticate(username, password) {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/posts")
	}
	a.loginLimiter.Record(c.RealIP())
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(a.Config, true, CsrfToken(c)))
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/login")
}

func (a *App) handleAdminPosts(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	SortPostsByDate(posts)
	return Render(c, a.Views.AdminPosts(a.Config, posts, CsrfToken(c)))
}

func (a *App) handleNewPostForm(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	return Render(c, a.Views.AdminNewPost(a.Config, PostForm{}, CsrfToken(c)))
}

func (a *App) handleNewPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	// Slugify also sanitizes: whatever the form sends ends up as a plain
	// hyphenated name, never a path.
	slug := Slugify(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return Render(c, a.Views.AdminNewPost(a.Config, PostForm{
			Error: "Slug is required. Add a title or slug.",
		}, CsrfToken(c)))
	}
	body := c.FormValue("body")

	files := a.formImages(c)
	saved := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > a.Config.MaxUploadSize {
			return Render(c, a.Views.AdminNewPost(a.Config, PostForm{
				Error: "Image " + fh.Filename + " is too large.",
				Slug:  slug,
			}, CsrfToken(c)))
		}
		path, err := a.saveUpload(slug, fh)
		if err != nil {
			return err
		}
		saved = append(saved, path)
	}

	bodyWithImages := AppendImagesMarkdown(body, saved)
	if _, err := a.Store.CreatePost(title, slug, bodyWithImages, a.Config.AdminUsername, time.Now()); err != nil {
		return err
	}

	return Render(c, a.Views.AdminNewPost(a.Config, PostForm{
		Success:     true,
		Slug:        slug,
		SavedImages: saved,
	}, CsrfToken(c)))
}

// handleGenerateSlug returns the slug form fragment for a live preview.
func (a *App) handleGenerateSlug(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	return Render(c, a.Views.SlugField(Slugify(c.FormValue("title"))))
}

func (a *App) handleEditPostForm(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	post, err := a.Store.GetPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Redirect(http.StatusSeeOther, "/admin/posts")
		}
		return err
	}
	return Render(c, a.Views.AdminEditPost(a.Config, post, PostForm{}, CsrfToken(c)))
}

func (a *App) handleEditPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	slug := c.Param("slug")
	title := strings.TrimSpace(c.FormValue("title"))
	target := Slugify(c.FormValue("slug"))
	if target == "" {
		target = slug
	}
	body := c.FormValue("body")

	// Image paths are computed against the target slug before the update, but
	// the files are written only after the post (and its media directory)
	// have been renamed, so nothing lands in a directory about to move.
	files := a.formImages(c)
	saved := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > a.Config.MaxUploadSize {
			return c.Redirect(http.StatusSeeOther, "/admin/posts")
		}
		saved = append(saved, "/media/"+target+"/"+filepath.Base(fh.Filename))
	}
	bodyWithImages := AppendImagesMarkdown(body, saved)

	if _, err := a.Store.UpdatePost(slug, title, target, bodyWithImages, a.Config.AdminUsername); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			return c.Redirect(http.StatusSeeOther, "/admin/posts")
		}
		return err
	}

	for _, fh := range files {
		if _, err := a.saveUpload(target, fh); err != nil {
			return err
		}
	}

	post, err := a.Store.GetPost(target)
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminEditPost(a.Config, post, PostForm{
		Success:     true,
		Slug:        target,
		SavedImages: saved,
	}, CsrfToken(c)))
}

func (a *App) handleDeletePost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	if err := a.Store.DeletePost(c.Param("slug"), true); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/posts")
}

// formImages returns the uploaded image file headers, or nil for a plain
// urlencoded form.
func (a *App) formImages(c echo.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["images"]
}

func (a *App) saveUpload(slug string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return a.Store.SaveMedia(slug, fh.Filename, src)
}
