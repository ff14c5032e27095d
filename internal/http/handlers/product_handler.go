package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storekeeper/internal/domain"
	"storekeeper/internal/errs"
	applog "storekeeper/internal/log"
	"storekeeper/internal/services"
	"storekeeper/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

type createRequest struct {
	Name     string   `json:"name"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
	ImageURI *string  `json:"image_uri"`
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Products.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": ps, "count": len(ps)})
}

// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	p, err := h.Products.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return errs.Wrap(errs.CodeValidation, err, "invalid request body")
	}
	details := map[string]string{}
	if req.Quantity == nil {
		details["quantity"] = "Quantity is required"
	}
	if req.Price == nil {
		details["price"] = "Price is required"
	}
	if len(details) > 0 {
		return errs.New(errs.CodeValidation, "validation failed").WithDetails(details)
	}

	p, err := h.Products.Create(c.UserContext(), domain.CreateProductInput{
		Name:     req.Name,
		Quantity: *req.Quantity,
		Price:    *req.Price,
		ImageURI: req.ImageURI,
	})
	if err != nil {
		applog.Security(c, "product.create.reject", map[string]any{"code": errs.CodeOf(err)})
		return err
	}
	applog.Audit(c, "product.create", map[string]any{"product": p.ID, "quantity": p.Quantity, "price": p.Price})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PATCH /api/v1/products/:id
//
// Omitted fields are left untouched; "image_uri": null removes the photo.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	var in domain.UpdateProductInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Wrap(errs.CodeValidation, err, "invalid request body")
	}
	p, err := h.Products.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.update", map[string]any{"product": id, "fields": changedFields(in)})
	return c.JSON(p)
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	if err := h.Products.Delete(c.UserContext(), id); err != nil {
		return err
	}
	applog.Audit(c, "product.delete", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/summary
func (h *ProductHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.Products.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(sum)
}

func productID(c *fiber.Ctx) (string, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return "", errs.New(errs.CodeNotFound, "invalid product id")
	}
	return id, nil
}

func changedFields(in domain.UpdateProductInput) []string {
	var out []string
	if in.Name.IsSet() {
		out = append(out, "name")
	}
	if in.Quantity.IsSet() {
		out = append(out, "quantity")
	}
	if in.Price.IsSet() {
		out = append(out, "price")
	}
	if in.ImageURI.IsSet() {
		out = append(out, "image_uri")
	}
	return out
}
