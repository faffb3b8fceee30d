package handlers

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Toast is a transient message shown once on the next rendered page.
type Toast struct {
	Type string // info | success | error
	Text string
}

const toastCookie = "toast"

// flash stores a toast for the page the client is redirected to.
func flash(c *fiber.Ctx, typ, text string) {
	c.Cookie(&fiber.Cookie{
		Name:     toastCookie,
		Value:    url.QueryEscape(typ + "|" + text),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// takeFlash reads and clears the pending toast.
func takeFlash(c *fiber.Ctx) *Toast {
	raw := c.Cookies(toastCookie)
	if raw == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{Name: toastCookie, Value: "", Path: "/", Expires: time.Now().Add(-1 * time.Hour)})
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	typ, text, ok := strings.Cut(v, "|")
	if !ok || text == "" {
		return nil
	}
	switch typ {
	case "info", "success", "error":
	default:
		typ = "info"
	}
	return &Toast{Type: typ, Text: text}
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject user if present
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if _, ok := data["Toast"]; !ok {
		if t := takeFlash(c); t != nil {
			data["Toast"] = t
		}
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}
