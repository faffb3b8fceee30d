package handlers

import (
	"errors"
	"strings"
	"time"

	"swapnstay/internal/log"
	"swapnstay/internal/repos"
	"swapnstay/internal/services"
	"swapnstay/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := strings.TrimSpace(c.FormValue("email"))
	pass := strings.TrimSpace(c.FormValue("password"))
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Err": "Login failed: " + services.ErrInvalidEmail.Error(), "CSRFToken": c.Cookies("csrf_"),
		})
	}

	if _, err := h.Auth.SignIn(c.UserContext(), sid, email, pass); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		msg := services.ErrBadCreds.Error()
		if !errors.Is(err, services.ErrBadCreds) {
			log.Error(c, "auth.login.error", err, nil)
			msg = "please try again"
		}
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Err": "Login failed: " + msg, "CSRFToken": c.Cookies("csrf_"),
		})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	flash(c, "success", "Login successful ✅")
	return c.Redirect("/products")
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	sid := ensureSID(c)
	req := services.SignUpRequest{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Phone:    strings.TrimSpace(c.FormValue("phone")),
		Password: strings.TrimSpace(c.FormValue("password")),
		Confirm:  strings.TrimSpace(c.FormValue("confirm_password")),
	}

	u, err := h.Auth.SignUp(c.UserContext(), sid, req)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			msg = "Passwords do not match ❌"
		case errors.Is(err, services.ErrWeakPassword), errors.Is(err, services.ErrInvalidEmail),
			errors.Is(err, services.ErrInvalidName), errors.Is(err, services.ErrInvalidPhone),
			errors.Is(err, repos.ErrEmailTaken):
			msg = "Signup failed: " + err.Error()
		default:
			log.Error(c, "auth.signup.error", err, nil)
			msg = "Signup failed: please try again"
		}
		log.Security(c, "auth.signup.fail", map[string]any{"email": req.Email, "reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{
			"Err": msg, "Name": req.Name, "Email": req.Email, "Phone": req.Phone, "CSRFToken": c.Cookies("csrf_"),
		})
	}

	log.Audit(c, "auth.signup.success", map[string]any{"email": u.Email, "user_id": u.ID})
	flash(c, "success", "Signup successful 🎉")
	return c.Redirect("/products")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Auth.SignOut(c.UserContext(), sid); err != nil {
		log.Error(c, "auth.logout.fail", err, nil)
		flash(c, "error", "Error: could not log out")
		return c.Redirect("/products")
	}
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	flash(c, "info", "Logged out ✅")
	return c.Redirect("/")
}
