package havensite

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

// siteCSS is the stylesheet shipped with the application. Sites can override
// individual rules from their own static directory.
//
//go:embed assets/site.css
var siteCSS []byte

func (a *App) handleSiteCSS(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", siteCSS)
}
