// Package havensite is the web application behind the Haven Paws Rescue
// site: a public donation page, a story page, a markdown-backed news
// section, and a session-authenticated admin panel for managing posts.
//
// Posts live as markdown files with YAML front matter under a content
// directory; the Store is the sole source of truth and templates are
// provided through the ViewFuncs struct.
package havensite

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components the application renders. Keeping them
// behind a struct means handlers receive the rendering service explicitly
// instead of reaching for a shared template singleton.
type ViewFuncs struct {
	Donate        func(cfg SiteConfig) templ.Component
	Story         func(cfg SiteConfig, story *Post) templ.Component
	NewsList      func(cfg SiteConfig, posts []*Post) templ.Component
	NewsDetail    func(cfg SiteConfig, post *Post) templ.Component
	AdminLogin    func(cfg SiteConfig, showError bool, csrfToken string) templ.Component
	AdminPosts    func(cfg SiteConfig, posts []*Post, csrfToken string) templ.Component
	AdminNewPost  func(cfg SiteConfig, form PostForm, csrfToken string) templ.Component
	AdminEditPost func(cfg SiteConfig, post *Post, form PostForm, csrfToken string) templ.Component
	SlugField     func(slug string) templ.Component
	NotFound      func(cfg SiteConfig) templ.Component
	ServerError   func(cfg SiteConfig) templ.Component
}

// App is the central application. It wires together the content store,
// handlers, middleware, and the provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "static",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, middleware, and routes, then starts the server.
func (a *App) Start() error {
	if a.Config.AdminUsername == "" {
		return fmt.Errorf("havensite: AdminUsername is required")
	}
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("havensite: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("havensite: SessionSecret is required")
	}

	store, err := NewStore(a.Config.ContentDir)
	if err != nil {
		return fmt.Errorf("havensite: init store: %w", err)
	}
	a.Store = store

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded site stylesheet; everything else comes from the static dir.
	e.GET("/static/site.css", a.handleSiteCSS)
	e.Static("/static", a.staticDir)
	e.Static("/media", a.Store.MediaDir())
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/", a.handleDonate)
	e.GET("/story", a.handleStory)
	e.GET("/news", a.handleNewsList)
	e.GET("/news/:slug", a.handleNewsDetail)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Admin routes
	e.GET("/admin/login", a.handleLoginForm)
	e.POST("/admin/login", a.handleLogin)
	e.GET("/admin/logout", a.handleLogout)
	e.GET("/admin/posts", a.handleAdminPosts)
	e.GET("/admin/posts/new", a.handleNewPostForm)
	e.POST("/admin/posts/new", a.handleNewPost)
	e.POST("/admin/generate-slug", a.handleGenerateSlug)
	e.GET("/admin/posts/:slug/edit", a.handleEditPostForm)
	e.POST("/admin/posts/:slug/edit", a.handleEditPost)
	e.POST("/admin/posts/:slug/delete", a.handleDeletePost)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("havensite: required environment variable %s is not set", key)
	}
	return v
}
