package main

import (
	"log"
	"strings"

	"github.com/havenpaws/havensite"
	"github.com/havenpaws/havensite/views"
)

func main() {
	cfg := havensite.SiteConfig{
		Name:        havensite.EnvOr("SITE_NAME", "Haven Paws Rescue"),
		URL:         strings.TrimSuffix(havensite.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: havensite.EnvOr("SITE_DESCRIPTION", "News and stories from the rescue."),

		Addr:       havensite.EnvOr("ADDR", ":3000"),
		ContentDir: havensite.EnvOr("CONTENT_DIR", "content"),

		AdminUsername: havensite.EnvOr("ADMIN_USERNAME", "admin"),
		AdminPassword: havensite.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: havensite.MustEnv("SECRET_KEY"),
		CookieSecure:  strings.EqualFold(havensite.EnvOr("COOKIE_SECURE", ""), "true"),
	}

	app := havensite.New(cfg, views.Funcs(),
		havensite.WithStaticDir(havensite.EnvOr("STATIC_DIR", "static")),
	)

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
