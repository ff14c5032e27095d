package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"storekeeper/internal/domain"
	"storekeeper/web"
)

// NewViews builds the template engine over the embedded page templates.
func NewViews() *html.Engine {
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")
	engine.AddFunc("price", domain.FormatPrice)
	engine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})
	engine.AddFunc("millis", func(ms int64) string {
		return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05 UTC")
	})
	return engine
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Render(tmpl, data)
}

func notFoundPage(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}
