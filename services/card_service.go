// services/card_service.go
package services

import (
	"errors"
	"strings"

	"kartim.link/configs/configslog"
	"kartim.link/models"
	"kartim.link/pkg/uploads"
	"kartim.link/repositories"

	"go.uber.org/zap"
)

// CardServiceError özel servis hataları
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound   CardServiceError = "kartvizit bulunamadı"
	ErrCardValidation CardServiceError = "slug ve fullName zorunludur"
	ErrSlugTaken      CardServiceError = "bu slug zaten kullanımda"
)

// ICardService kartvizit işlemleri için arayüz.
type ICardService interface {
	ListSummaries() []models.CardSummary
	GetCard(slug string) (*models.Card, error)
	CreateCard(input models.CardCreateInput, avatar *uploads.Upload) (string, error)
	UpdateCard(slug string, input models.CardUpdateInput, avatar *uploads.Upload) (string, error)
	RecordView(slug string)
}

// CardService ICardService arayüzünü uygular.
type CardService struct {
	repo    repositories.ICardRepository
	avatars *uploads.Resolver
}

// NewCardService yeni bir CardService örneği oluşturur.
// Depo ambient state yerine açıkça enjekte edilir; tüm tüketiciler aynı
// process-scoped örneği paylaşır.
func NewCardService(repo repositories.ICardRepository, avatars *uploads.Resolver) ICardService {
	return &CardService{repo: repo, avatars: avatars}
}

// parseRTL sadece "on", "true" ve "1" değerlerini true kabul eder.
// Başka temsiller ("yes" dahil) bilinçli olarak false'tur.
func parseRTL(v string) bool {
	switch v {
	case "on", "true", "1":
		return true
	}
	return false
}

// ListSummaries tüm kartların daraltılmış liste görünümünü döndürür.
func (s *CardService) ListSummaries() []models.CardSummary {
	cards := s.repo.GetAll()
	summaries := make([]models.CardSummary, 0, len(cards))
	for _, card := range cards {
		summaries = append(summaries, card.Summary())
	}
	return summaries
}

// GetCard kartın tam kaydını slug ile getirir (büyük/küçük harf duyarsız).
func (s *CardService) GetCard(slug string) (*models.Card, error) {
	card, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// CreateCard yeni bir kart oluşturur.
// Slug normalize edilir, tüm string alanlar trim'lenir, avatar çözümlenir.
func (s *CardService) CreateCard(input models.CardCreateInput, avatar *uploads.Upload) (string, error) {
	slug := models.NormalizeSlug(input.Slug)
	fullName := strings.TrimSpace(input.FullName)
	if slug == "" || fullName == "" {
		return "", ErrCardValidation
	}

	avatarURL, err := s.avatars.Resolve(slug, avatar, input.AvatarURL)
	if err != nil {
		return "", err
	}

	card := models.Card{
		Slug:      slug,
		FullName:  fullName,
		JobTitle:  strings.TrimSpace(input.JobTitle),
		Company:   strings.TrimSpace(input.Company),
		Phone:     strings.TrimSpace(input.Phone),
		Whatsapp:  strings.TrimSpace(input.Whatsapp),
		Email:     strings.TrimSpace(input.Email),
		Website:   strings.TrimSpace(input.Website),
		Linkedin:  strings.TrimSpace(input.Linkedin),
		Instagram: strings.TrimSpace(input.Instagram),
		AvatarURL: avatarURL,
		RTL:       parseRTL(input.Rtl),
	}

	if err := s.repo.Create(card); err != nil {
		if errors.Is(err, repositories.ErrSlugExists) {
			return "", ErrSlugTaken
		}
		configslog.Log.Error("CreateCard: depo hatası", zap.String("slug", slug), zap.Error(err))
		return "", err
	}

	configslog.SLog.Infof("Kart oluşturuldu: %s", slug)
	return slug, nil
}

// UpdateCard mevcut kartı kısmi olarak günceller.
// Gönderilen alanlar (boş string dahil) üzerine yazılır, gönderilmeyenler
// korunur. Yükleme her zaman direct avatarUrl'den önceliklidir; boş avatarUrl
// mevcut avatarı silmez.
func (s *CardService) UpdateCard(slug string, input models.CardUpdateInput, avatar *uploads.Upload) (string, error) {
	slug = models.NormalizeSlug(slug)

	// Avatar dosyası yazılmadan önce kaydın varlığı doğrulanır.
	if _, err := s.repo.FindBySlug(slug); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrCardNotFound
		}
		return "", err
	}

	patch := models.CardPatch{
		FullName:  trimmed(input.FullName),
		JobTitle:  trimmed(input.JobTitle),
		Company:   trimmed(input.Company),
		Phone:     trimmed(input.Phone),
		Whatsapp:  trimmed(input.Whatsapp),
		Email:     trimmed(input.Email),
		Website:   trimmed(input.Website),
		Linkedin:  trimmed(input.Linkedin),
		Instagram: trimmed(input.Instagram),
	}

	if avatar != nil {
		resolved, err := s.avatars.Resolve(slug, avatar, "")
		if err != nil {
			return "", err
		}
		patch.AvatarURL = &resolved
	} else if input.AvatarURL != nil {
		if v := strings.TrimSpace(*input.AvatarURL); v != "" {
			patch.AvatarURL = &v
		}
	}

	if input.Rtl != nil {
		rtl := parseRTL(*input.Rtl)
		patch.RTL = &rtl
	}

	updated, err := s.repo.Update(slug, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrCardNotFound
		}
		configslog.Log.Error("UpdateCard: depo hatası", zap.String("slug", slug), zap.Error(err))
		return "", err
	}

	configslog.SLog.Infof("Kart güncellendi: %s", updated.Slug)
	return updated.Slug, nil
}

// RecordView public sayfa görüntülenmesini sayaçlara işler. Best effort;
// hata sadece loglanır, sayfa render'ını engellemez.
func (s *CardService) RecordView(slug string) {
	if err := s.repo.RecordView(slug); err != nil {
		configslog.Log.Warn("Görüntülenme kaydedilemedi", zap.String("slug", slug), zap.Error(err))
	}
}

// trimmed nil-korumalı trim; kısmi güncellemede nil "gönderilmedi" demektir.
func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

// Arayüz uyumluluğu kontrolü
var _ ICardService = (*CardService)(nil)
