package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "swapnstay/internal/log"
)

// ErrorHandler logs err and renders a friendly page. Client errors keep their
// status; everything else becomes a 500. Internal messages are never shown.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < 500 {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})
	msg := "Something went wrong. Please try again."
	if code == fiber.StatusNotFound {
		msg = "Page not found"
	} else if code < 500 {
		msg = "That request could not be handled. Please try again."
	}
	// Avoid leaking internals; best-effort render
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// Mount registers every page and API route on app.
func Mount(app *fiber.App, deps *Deps) {
	authH, prodH, adminH := deps.AuthHandler, deps.ProductHandler, deps.AdminHandler

	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/products") })

	// Products
	app.Get("/products", prodH.List)
	app.Post("/products", prodH.Submit)
	app.Get("/products/:id", prodH.View)
	app.Post("/products/:id/edit", RequireUser(), prodH.Edit)
	app.Post("/products/:id/delete", prodH.Delete)
	app.Post("/products/:id/contact", prodH.Contact)

	api := app.Group("/api/v1", cors.New(cors.Config{AllowMethods: "GET,HEAD,OPTIONS"}))
	api.Get("/products", prodH.APIList)
	api.Get("/products/status", prodH.APIStatus)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Get("/signup", authH.SignupForm)
	app.Post("/signup", limiter.New(limiter.Config{Max: 10, Expiration: 10 * time.Minute}), authH.Signup)
	app.Post("/logout", authH.Logout)

	// Admin
	admin := app.Group("/admin", RequireAdmin())
	admin.Get("/", adminH.Dashboard)
	admin.Get("/users", adminH.UsersPage)
	admin.Get("/products", adminH.ProductsPage)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
}
