package handlers_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"swapnstay/internal/http/handlers"
)

func newErrorApp() *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        html.New("../../web/templates", ".html"),
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(requestid.New())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "store timeout: secret trace")
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("sql: connection refused at 10.0.0.5")
	})
	app.Get("/gone", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "parser state 0xdeadbeef")
	})
	app.Get("/upstream", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadGateway, "upstream secret")
	})
	return app
}

// Friendly error surface, no internal leakage.
func TestErrorHandlerStatusAndMessage(t *testing.T) {
	app := newErrorApp()
	cases := []struct {
		path   string
		code   int
		msg    string
		secret string
	}{
		{"/boom", fiber.StatusInternalServerError, "Something went wrong", "secret"},
		{"/plain", fiber.StatusInternalServerError, "Something went wrong", "10.0.0.5"},
		{"/upstream", fiber.StatusInternalServerError, "Something went wrong", "upstream"},
		{"/gone", fiber.StatusNotFound, "Page not found", "Not Found"},
		{"/bad", fiber.StatusBadRequest, "could not be handled", "deadbeef"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		if resp.StatusCode != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.code, resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		s := string(body)
		if !strings.Contains(s, tc.msg) {
			t.Fatalf("%s: friendly message missing; body=%s", tc.path, s)
		}
		if strings.Contains(s, tc.secret) {
			t.Fatalf("%s: internal details leaked to user; body=%s", tc.path, s)
		}
	}
}

func TestErrorHandlerLogsServerError(t *testing.T) {
	app := newErrorApp()
	entries := captureLogs(t, func() {
		_, _ = app.Test(httptest.NewRequest("GET", "/boom", nil))
	})
	e, ok := findAction(entries, "server.error")
	if !ok || e.Level != "error" {
		t.Fatalf("server.error not logged: %+v", entries)
	}
	if code, _ := e.Fields["code"].(float64); int(code) != fiber.StatusInternalServerError {
		t.Fatalf("logged code = %v, want 500", e.Fields["code"])
	}
}
