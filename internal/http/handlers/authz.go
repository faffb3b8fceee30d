package handlers

import (
	"swapnstay/internal/domain"
	applog "swapnstay/internal/log"
	"swapnstay/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LoadSession attaches the signed-in user (if any) to the request.
func LoadSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.SessionUser {
	u, _ := c.Locals("user").(*domain.SessionUser)
	return u
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := currentUser(c)
		if u == nil {
			return c.Redirect("/login")
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		return c.Next()
	}
}

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			flash(c, "error", "Please login to continue")
			return c.Redirect("/login")
		}
		return c.Next()
	}
}
