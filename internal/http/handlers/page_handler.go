package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storekeeper/internal/errs"
	applog "storekeeper/internal/log"
	"storekeeper/internal/services"
	"storekeeper/internal/validate"
)

type PageHandler struct {
	Products *services.ProductService
}

// GET /
func (h *PageHandler) List(c *fiber.Ctx) error {
	ps, err := h.Products.List(c.UserContext())
	if err != nil {
		return err
	}
	sum, err := h.Products.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, "index", fiber.Map{"Products": ps, "Summary": sum})
}

// GET /product/:id
func (h *PageHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFoundPage(c, "This product is no longer available")
	}
	p, err := h.Products.Get(c.UserContext(), id)
	if errs.CodeOf(err) == errs.CodeNotFound {
		return notFoundPage(c, "This product is no longer available")
	}
	if err != nil {
		return err
	}
	return render(c, "product", fiber.Map{"P": p})
}

// POST /product/:id/delete
//
// The form must carry confirm=true; deletion cannot be undone.
func (h *PageHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFoundPage(c, "This product is no longer available")
	}
	if c.FormValue("confirm") != "true" {
		return c.Redirect("/product/" + id)
	}
	if err := h.Products.Delete(c.UserContext(), id); err != nil {
		return err
	}
	applog.Audit(c, "product.delete", map[string]any{"product": id})
	return c.Redirect("/")
}
