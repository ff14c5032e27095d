package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storekeeper/internal/errs"
	applog "storekeeper/internal/log"
)

// ErrorHandler turns returned errors into responses without exposing causes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var details any
	var code errs.Code

	var fe *fiber.Error
	if e, ok := errs.As(err); ok {
		code = e.Code()
		meta := errs.MetadataFor(code)
		status = meta.HTTPStatus
		if status < fiber.StatusInternalServerError {
			msg = meta.PublicMessage
		}
		if meta.DetailsAllowed {
			details = e.Details()
		}
	} else if errors.As(err, &fe) {
		status = fe.Code
		if status < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}

	if status >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		body := fiber.Map{"error": msg}
		if code != "" {
			body["code"] = code
		}
		if details != nil {
			body["details"] = details
		}
		return c.Status(status).JSON(body)
	}
	if rerr := c.Status(status).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}
