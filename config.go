package havensite

// SiteConfig holds all configuration for a havensite instance.
type SiteConfig struct {
	Name        string // Site name (default "Haven Paws Rescue")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Addr       string // Listen address (default ":3000")
	ContentDir string // Root of posts/, media/, and story.md (default "content")

	AdminUsername string // Required: admin login username
	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session cookie signing secret
	CookieSecure  bool   // Set true for HTTPS

	MaxUploadSize int64 // Per-file upload limit in bytes (default 10MB)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Haven Paws Rescue"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.MaxUploadSize == 0 {
		c.MaxUploadSize = 10 << 20
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for site-owned static assets (default "static").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
