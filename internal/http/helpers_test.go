package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"swapnstay/internal/config"
	"swapnstay/internal/http/handlers"
	"swapnstay/internal/repos"
	"swapnstay/internal/services"
)

const (
	adminEmail = "admin@swapnstay.test"
	adminPass  = "Adm1nPass!"
	userPass   = "Passw0rd!"
)

func testConfig() config.Config {
	return config.Config{
		DBDriver:         "sqlite",
		DBDSN:            ":memory:",
		TemplatesDir:     "../../web/templates",
		StrictNumbers:    true,
		GuardReentry:     true,
		EnforceOwnership: true,
	}
}

// newTestApp builds the server's route table on an in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *handlers.Deps, *sqlx.DB) {
	t.Helper()
	return newTestAppWith(t, testConfig())
}

func newTestAppWith(t *testing.T, cfg config.Config) (*fiber.App, *handlers.Deps, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := repos.SeedAdmin(db, adminEmail, adminPass); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	deps := handlers.NewDeps(db, cfg)

	engine := html.New(cfg.TemplatesDir, ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Use(handlers.LoadSession(deps.Auth))
	app.Use(limiter.New(limiter.Config{Max: 1000, Expiration: time.Minute}))
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	handlers.Mount(app, deps)
	return app, deps, db
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func fetchCSRF(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

// postForm submits form with the csrf token and, when sid is set, the session cookie.
func postForm(t *testing.T, app *fiber.App, path, csrfTok, sid string, form url.Values) *http.Response {
	t.Helper()
	form.Set("csrf", csrfTok)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func get(t *testing.T, app *fiber.App, path, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// signUp registers a user directly through the session provider and returns
// the bound session id.
func signUp(t *testing.T, deps *handlers.Deps, name, email string) string {
	t.Helper()
	sid := "sid-" + name
	_, err := deps.Auth.SignUp(context.Background(), sid, services.SignUpRequest{
		Name: name, Email: email, Password: userPass, Confirm: userPass,
	})
	if err != nil {
		t.Fatalf("sign up %s: %v", email, err)
	}
	return sid
}
