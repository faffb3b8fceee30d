package handlers

import (
	"errors"
	"fmt"

	"swapnstay/internal/domain"
	"swapnstay/internal/listing"
	"swapnstay/internal/log"
	"swapnstay/internal/services"
	"swapnstay/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Pool *services.RepositoryPool
}

func (h *ProductHandler) repo(c *fiber.Ctx) *services.ProductRepository {
	return h.Pool.For(c.UserContext(), c.Cookies("sid"), currentUser(c))
}

func viewerID(c *fiber.Ctx) string {
	if u := currentUser(c); u != nil {
		return u.ID
	}
	return ""
}

// page renders the listing from the current cache. Every visit re-projects.
func (h *ProductHandler) page(c *fiber.Ctx, status int, toast *Toast) error {
	r := h.repo(c)
	data := fiber.Map{
		"Rows":     listing.Rows(r.Products(), viewerID(c)),
		"Chart":    listing.Chart(r.StatusDistribution()),
		"Statuses": domain.Statuses,
		"Degraded": r.Degraded(),
	}
	if toast != nil {
		data["Toast"] = toast
	}
	return render(c.Status(status), "products", data)
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return h.page(c, fiber.StatusOK, nil)
}

// POST /products
func (h *ProductHandler) Submit(c *fiber.Ctx) error {
	form := services.ProductForm{
		Name:        c.FormValue("name"),
		Category:    c.FormValue("category"),
		Quantity:    c.FormValue("quantity"),
		Price:       c.FormValue("price"),
		Location:    c.FormValue("location"),
		Status:      c.FormValue("status"),
		Description: c.FormValue("description"),
	}
	r := h.repo(c)
	id, err := r.Submit(c.UserContext(), form, currentUser(c))
	if err != nil {
		var fe *validate.FieldError
		switch {
		case errors.Is(err, services.ErrUnauthenticated):
			log.Security(c, "product.create.unauthenticated", nil)
			return h.page(c, fiber.StatusUnauthorized, &Toast{Type: "error", Text: "Please login to add products"})
		case errors.As(err, &fe):
			log.Security(c, "validation.fail", map[string]any{"field": fe.Field})
			return h.page(c, fiber.StatusBadRequest, &Toast{Type: "error", Text: "Invalid " + fe.Error()})
		case errors.Is(err, services.ErrBusy):
			return h.page(c, fiber.StatusConflict, &Toast{Type: "error", Text: "Still saving your last change, please wait"})
		default:
			log.Error(c, "product.create.fail", err, nil)
			return h.page(c, fiber.StatusBadGateway, &Toast{Type: "error", Text: "Failed to add product"})
		}
	}
	log.Audit(c, "product.create", map[string]any{"product_id": id})
	if r.Degraded() {
		flash(c, "error", staleText("Product added"))
	} else {
		flash(c, "success", "Product added successfully!")
	}
	return c.Redirect("/products")
}

// staleText reports a write that landed while the listing could not be refreshed.
func staleText(done string) string {
	return done + ", but the listing could not be refreshed. Showing demo data"
}

// GET /products/:id
func (h *ProductHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, ok := h.repo(c).Find(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	row := listing.Rows([]domain.Product{p}, viewerID(c))[0]
	return render(c, "product", fiber.Map{"P": p, "Row": row})
}

// POST /products/:id/edit
func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	flash(c, "info", "Edit functionality coming soon!")
	return c.Redirect("/products")
}

// POST /products/:id/delete
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	confirmed := c.FormValue("confirm") == "yes"
	r := h.repo(c)
	err := r.Remove(c.UserContext(), id, currentUser(c), confirmed)
	switch {
	case err == nil:
		log.Audit(c, "product.delete", map[string]any{"product_id": id})
		if r.Degraded() {
			flash(c, "error", staleText("Product deleted"))
		} else {
			flash(c, "success", "Product deleted successfully")
		}
		return c.Redirect("/products")
	case errors.Is(err, services.ErrNotConfirmed):
		return c.Redirect("/products")
	case errors.Is(err, services.ErrUnauthenticated):
		return h.page(c, fiber.StatusUnauthorized, &Toast{Type: "error", Text: "Please login to delete products"})
	case errors.Is(err, services.ErrForbidden):
		log.Security(c, "product.delete.denied", map[string]any{"product_id": id})
		return h.page(c, fiber.StatusForbidden, &Toast{Type: "error", Text: "You can only delete your own products"})
	case errors.Is(err, services.ErrBusy):
		return h.page(c, fiber.StatusConflict, &Toast{Type: "error", Text: "Still saving your last change, please wait"})
	default:
		log.Error(c, "product.delete.fail", err, map[string]any{"product_id": id})
		return h.page(c, fiber.StatusBadGateway, &Toast{Type: "error", Text: "Failed to delete product"})
	}
}

// POST /products/:id/contact
func (h *ProductHandler) Contact(c *fiber.Ctx) error {
	if p, ok := h.repo(c).Find(c.Params("id")); ok {
		flash(c, "info", fmt.Sprintf("Contact %s for %s", p.SellerName, p.Name))
	}
	return c.Redirect("/products")
}

// GET /api/v1/products
func (h *ProductHandler) APIList(c *fiber.Ctx) error {
	r := h.repo(c)
	return c.JSON(fiber.Map{
		"products": listing.Rows(r.Products(), viewerID(c)),
		"degraded": r.Degraded(),
	})
}

// GET /api/v1/products/status
func (h *ProductHandler) APIStatus(c *fiber.Ctx) error {
	d := h.repo(c).StatusDistribution()
	return c.JSON(fiber.Map{
		"distribution": d,
		"total":        d.Total(),
		"chart":        listing.Chart(d),
	})
}
