package routes

import (
	"kartim.link/handlers/web"

	"github.com/gofiber/fiber/v2"
)

// registerPageRoutes HTML sayfalarını tanımlar.
func registerPageRoutes(app *fiber.App, h *web.PageHandler) {
	// Public kart sayfası
	app.Get("/u/:slug", h.ShowCard)

	// Admin formu (kimlik doğrulama bilinçli olarak kapsam dışı)
	app.Get("/admin", h.ShowAdmin)
}
