package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storekeeper/internal/errs"
	"storekeeper/internal/images"
	applog "storekeeper/internal/log"
	"storekeeper/internal/services"
	"storekeeper/internal/validate"
)

type PhotoHandler struct {
	Products *services.ProductService
	Perms    images.Permissions
	Importer *images.Importer
}

// POST /api/v1/products/:id/photo?source=camera|gallery
//
// The multipart field "image" carries the picked file. A request without a
// file is a cancelled picker and leaves the product unchanged.
func (h *PhotoHandler) Attach(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	src, ok := validate.Source(c.Query("source", "gallery"))
	if !ok {
		return errs.New(errs.CodeValidation, "validation failed").
			WithDetails(map[string]string{"source": "must be camera or gallery"})
	}
	kind, _ := images.KindFromString(src)

	var upload images.UploadSource
	if fh, ferr := c.FormFile("image"); ferr == nil {
		f, oerr := fh.Open()
		if oerr != nil {
			return errs.Wrap(errs.CodeValidation, oerr, "could not read upload")
		}
		upload.Asset = images.Asset{Name: fh.Filename, Body: f}
	}
	picker := images.NewHelper(h.Perms, upload, h.Importer)

	p, changed, err := h.Products.AttachPhoto(c.UserContext(), id, picker, kind)
	if upload.Asset.Body != nil && !changed {
		_ = upload.Asset.Body.Close()
	}
	if err != nil {
		return err
	}
	if changed {
		applog.Audit(c, "product.photo.attach", map[string]any{"product": id, "source": src, "image": *p.ImageURI})
	}
	return c.JSON(fiber.Map{"product": p, "changed": changed})
}

// DELETE /api/v1/products/:id/photo
func (h *PhotoHandler) Remove(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	p, err := h.Products.RemovePhoto(c.UserContext(), id)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.photo.remove", map[string]any{"product": id})
	return c.JSON(p)
}
