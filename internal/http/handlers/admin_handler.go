package handlers

import (
	"swapnstay/internal/domain"
	"swapnstay/internal/listing"
	applog "swapnstay/internal/log"
	"swapnstay/internal/repos"
	"swapnstay/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Pool  *services.RepositoryPool
	Store services.DocumentStore
	Users *repos.UserRepo
}

// refreshed reloads the admin's snapshot so the dashboard reflects the store
// each time it is opened.
func (h *AdminHandler) refreshed(c *fiber.Ctx) (*services.ProductRepository, *Toast) {
	r := h.Pool.For(c.UserContext(), c.Cookies("sid"), currentUser(c))
	if err := r.Reload(c.UserContext()); err != nil {
		applog.Warn(c, "admin.products.degraded", err, nil)
		return r, &Toast{Type: "error", Text: "Product store unavailable, showing demo data"}
	}
	return r, nil
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	r, toast := h.refreshed(c)
	users, err := h.Users.Count()
	if err != nil {
		applog.Error(c, "admin.users.count.fail", err, nil)
	}
	data := fiber.Map{
		"Summary":   listing.Summarize(r.Products()),
		"UserCount": users,
		"Chart":     listing.Chart(r.StatusDistribution()),
	}
	if toast != nil {
		data["Toast"] = toast
	}
	return render(c, "admin_dashboard", data)
}

// GET /admin/users lists the profiles in the users collection.
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	docs, err := h.Store.List(c.UserContext(), repos.Users)
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).Render("notfound", fiber.Map{"Message": "Could not load users"})
	}
	profiles := make([]domain.Profile, 0, len(docs))
	for _, d := range docs {
		var p domain.Profile
		if err := d.Decode(&p); err != nil {
			applog.Warn(c, "admin.users.decode.skip", err, map[string]any{"user_id": d.ID})
			continue
		}
		p.ID = d.ID
		profiles = append(profiles, p)
	}
	return render(c, "admin_users", fiber.Map{"Users": profiles})
}

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	r, toast := h.refreshed(c)
	data := fiber.Map{"Products": r.Products()}
	if toast != nil {
		data["Toast"] = toast
	}
	return render(c, "admin_products", data)
}
