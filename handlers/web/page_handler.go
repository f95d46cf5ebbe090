// handlers/web/page_handler.go
package web

import (
	"errors"

	"kartim.link/configs/configslog"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PageHandler public kart sayfası ve admin formu gibi HTML sayfalarını yönetir.
type PageHandler struct {
	service services.ICardService
}

// NewPageHandler yeni bir PageHandler örneği oluşturur.
func NewPageHandler(service services.ICardService) *PageHandler {
	return &PageHandler{service: service}
}

// ShowCard public kart sayfasını render eder ve görüntülenmeyi sayaçlara işler.
// Bilinmeyen slug'da ham hata yerine etiketli "kart bulunamadı" sayfası döner.
func (h *PageHandler) ShowCard(c *fiber.Ctx) error {
	slug := c.Params("slug")
	card, err := h.service.GetCard(slug)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return h.renderNotFound(c, "Kartvizit Bulunamadı")
		}
		configslog.Log.Error("ShowCard: kart yüklenemedi", zap.String("slug", slug), zap.Error(err))
		return h.renderError(c, "Kartvizit yüklenirken bir sorun oluştu.")
	}

	h.service.RecordView(card.Slug)

	return c.Render("card", fiber.Map{
		"Title": card.FullName,
		"Card":  card,
	})
}

// ShowAdmin kart oluşturma/güncelleme formunu gösterir.
func (h *PageHandler) ShowAdmin(c *fiber.Ctx) error {
	return c.Render("admin", fiber.Map{
		"Title": "Kart Yönetimi",
	})
}

// renderNotFound standart 404 sayfasını render eder.
func (h *PageHandler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Bulunamadı",
		"Message": message,
	})
}

// renderError standart 500 hata sayfasını render eder.
func (h *PageHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": message,
	})
}
