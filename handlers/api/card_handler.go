// handlers/api/card_handler.go
package api

import (
	"errors"

	"kartim.link/configs/configslog"
	"kartim.link/models"
	"kartim.link/pkg/uploads"
	"kartim.link/pkg/vcard"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// CardHandler JSON kart API'sini yönetir.
type CardHandler struct {
	service services.ICardService
}

// NewCardHandler yeni bir CardHandler örneği oluşturur.
func NewCardHandler(service services.ICardService) *CardHandler {
	return &CardHandler{service: service}
}

// ListCards tüm kartların özet listesini döndürür (admin listesi).
// İletişim detayları bu görünümde yer almaz.
func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	return c.JSON(h.service.ListSummaries())
}

// GetCard tek kartın tam kaydını slug ile döndürür.
func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	card, err := h.service.GetCard(c.Params("slug"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(card)
}

// GetVCard kartın vCard 3.0 çıktısını indirilebilir olarak döndürür.
func (h *CardHandler) GetVCard(c *fiber.Ctx) error {
	card, err := h.service.GetCard(c.Params("slug"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/vcard; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+vcard.Filename(*card)+`"`)
	return c.SendString(vcard.Encode(*card))
}

// CreateCard yeni kart oluşturur (opsiyonel avatarFile ile multipart).
func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	var input models.CardCreateInput
	if err := c.BodyParser(&input); err != nil {
		configslog.Log.Warn("CreateCard: body parse hatası", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	avatar, err := h.formAvatar(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar dosyası okunamadı"})
	}
	defer avatar.Close()

	slug, err := h.service.CreateCard(input, avatar)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "slug": slug})
}

// UpdateCard mevcut kartı kısmi olarak günceller (opsiyonel avatarFile ile).
func (h *CardHandler) UpdateCard(c *fiber.Ctx) error {
	var input models.CardUpdateInput
	if err := c.BodyParser(&input); err != nil {
		configslog.Log.Warn("UpdateCard: body parse hatası", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	avatar, err := h.formAvatar(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar dosyası okunamadı"})
	}
	defer avatar.Close()

	slug, err := h.service.UpdateCard(c.Params("slug"), input, avatar)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "slug": slug})
}

// formAvatar opsiyonel avatarFile alanını Upload'a çevirir; alan yoksa nil döner.
func (h *CardHandler) formAvatar(c *fiber.Ctx) (*uploads.Upload, error) {
	fh, err := c.FormFile("avatarFile")
	if err != nil {
		// Alanın hiç gönderilmemesi (veya gövdenin multipart olmaması) hata
		// değildir; bozuk multipart ise 400 olarak yüzeye çıkmalıdır.
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, err
	}
	return uploads.FromFileHeader(fh)
}

// errorResponse servis hatalarını ayırt edilebilir HTTP cevaplarına çevirir.
func (h *CardHandler) errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrCardValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrSlugTaken):
		status = fiber.StatusConflict
	case errors.Is(err, uploads.ErrNotImage):
		status = fiber.StatusBadRequest
	case errors.Is(err, uploads.ErrTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	default:
		configslog.Log.Error("Kart API: beklenmeyen hata", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
