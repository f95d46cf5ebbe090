package routes

import (
	"kartim.link/handlers/api"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes JSON kart API rotalarını tanımlar.
func registerAPIRoutes(app *fiber.App, h *api.CardHandler) {
	cards := app.Group("/api/cards")

	cards.Get("/", h.ListCards)
	cards.Get("/:slug", h.GetCard)
	cards.Get("/:slug/vcard", h.GetVCard)
	// Oluşturma/güncelleme multipart form kabul eder (opsiyonel avatarFile alanı).
	cards.Post("/", h.CreateCard)
	cards.Put("/:slug", h.UpdateCard)
}
