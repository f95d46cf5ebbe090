// repositories/card_repository.go
package repositories

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"kartim.link/configs/configslog"
	"kartim.link/models"

	"go.uber.org/zap"
)

// Sentinel hatalar; servis katmanı errors.Is ile kendi hatalarına çevirir.
var (
	ErrNotFound   = errors.New("kayıt bulunamadı")
	ErrSlugExists = errors.New("slug zaten mevcut")
)

// ICardRepository kart deposu işlemleri için arayüz.
// Depo, bellekteki koleksiyonun ve diskteki JSON dosyasının tek sahibidir;
// çağıranlar her zaman kopya alır.
type ICardRepository interface {
	GetAll() []models.Card
	Count() int
	FindBySlug(slug string) (*models.Card, error)
	Create(card models.Card) error
	Update(slug string, patch models.CardPatch) (*models.Card, error)
	RecordView(slug string) error
	ResetMonthlyViews(slugs []string) error
}

// CardRepository ICardRepository arayüzünü dosya tabanlı olarak uygular.
// Tüm okuma/yazma işlemleri tek mutex üzerinden serileştirilir; böylece aynı
// slug için yarışan iki mutasyon birbirinin yazdığını kaybedemez.
// Bilinen sınırlama: WAL veya transaction yok; mutasyon ile persist arasında
// process çökerse son değişiklik kaybolur. Bu ölçek için kabul edilmiştir.
type CardRepository struct {
	mu    sync.Mutex
	path  string
	cards []models.Card // Ekleme sıralı canonical koleksiyon
}

// NewCardRepository verilen dosyadan kartları yükleyerek yeni bir depo oluşturur.
// Dosya yoksa veya bozuksa tek bir örnek kart seed edilir; yükleme asla
// process'i düşürmez. Web sunucusu bu kurucuyu kullanır.
func NewCardRepository(path string) ICardRepository {
	r := &CardRepository{path: path}
	r.load(true)
	return r
}

// OpenCardRepository dosyayı seed etmeden açar. Yükleme hatasında boş
// koleksiyonla devam edilir ve diske dokunulmaz; aylık rapor gibi batch
// işler eksik/bozuk dosyada "kart yok" görmeli, örnek kartı mailleyip
// dosyayı yaratmamalıdır.
func OpenCardRepository(path string) ICardRepository {
	r := &CardRepository{path: path}
	r.load(false)
	return r
}

// seedCard taze/boş kurulumlar için varsayılan örnek karttır.
func seedCard() models.Card {
	return models.Card{
		Slug:      "ali",
		FullName:  "Ali Hasan",
		JobTitle:  "Software Engineer",
		Company:   "My Company",
		Phone:     "+97330000000",
		Whatsapp:  "+97330000000",
		Email:     "ali@example.com",
		Website:   "https://example.com",
		Linkedin:  "https://linkedin.com/in/ali",
		Instagram: "https://instagram.com/ali",
	}
}

// load dosyayı okur; okunamaz veya parse edilemezse seed true ise seed'e
// düşer, değilse boş koleksiyonla devam eder.
func (r *CardRepository) load(seed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path)
	if err == nil {
		var cards []models.Card
		jsonErr := json.Unmarshal(raw, &cards)
		if jsonErr == nil {
			r.cards = cards
			configslog.SLog.Infof("%d kart dosyadan yüklendi.", len(cards))
			return
		}
		configslog.Log.Warn("Kart dosyası parse edilemedi, seed'e dönülüyor",
			zap.String("path", r.path), zap.Error(jsonErr))
	}

	if !seed {
		configslog.SLog.Info("Kart dosyası okunamadı, boş koleksiyonla devam ediliyor.")
		r.cards = nil
		return
	}

	configslog.SLog.Info("Kart dosyası bulunamadı, varsayılan kart seed ediliyor...")
	r.cards = []models.Card{seedCard()}
	if persistErr := r.persistLocked(); persistErr != nil {
		// Seed yazılamasa bile bellekteki koleksiyonla devam edilir.
		configslog.Log.Warn("Seed kartı diske yazılamadı", zap.Error(persistErr))
	}
}

// persistLocked koleksiyonun tamamını diske yazar (çağıran kilidi tutmalı).
// Önce geçici dosyaya yazılıp rename edilir; yarım yazılmış dosya kalmaz.
func (r *CardRepository) persistLocked() error {
	raw, err := json.MarshalIndent(r.cards, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		configslog.Log.Error("Veri dizini oluşturulamadı", zap.String("dir", dir), zap.Error(err))
		return err
	}

	tmp, err := os.CreateTemp(dir, "cards-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		configslog.Log.Error("Kart dosyası yazılamadı", zap.String("path", r.path), zap.Error(err))
		return err
	}

	configslog.SLog.Debugf("%d kart diske yazıldı.", len(r.cards))
	return nil
}

// findIndexLocked normalize edilmiş slug ile büyük/küçük harf duyarsız arama yapar.
func (r *CardRepository) findIndexLocked(slug string) int {
	slug = models.NormalizeSlug(slug)
	for i := range r.cards {
		if strings.EqualFold(r.cards[i].Slug, slug) {
			return i
		}
	}
	return -1
}

// GetAll tüm kartları ekleme sırasında, kopya olarak döndürür.
func (r *CardRepository) GetAll() []models.Card {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Card, len(r.cards))
	copy(out, r.cards)
	return out
}

// Count toplam kart sayısını döndürür.
func (r *CardRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cards)
}

// FindBySlug kartı slug ile bulur (büyük/küçük harf duyarsız).
func (r *CardRepository) FindBySlug(slug string) (*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findIndexLocked(slug)
	if idx == -1 {
		return nil, ErrNotFound
	}
	card := r.cards[idx]
	return &card, nil
}

// Create yeni kartı koleksiyona ekler ve diske yazar.
// Aynı slug (duyarsız karşılaştırma) mevcutsa ErrSlugExists döner.
func (r *CardRepository) Create(card models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findIndexLocked(card.Slug) != -1 {
		return ErrSlugExists
	}

	r.cards = append(r.cards, card)
	if err := r.persistLocked(); err != nil {
		// Yazılamayan kayıt bellekte de tutulmaz; başarı raporlanmamalı.
		r.cards = r.cards[:len(r.cards)-1]
		return err
	}
	return nil
}

// Update patch'teki nil olmayan alanları kaydın üzerine yazar ve diske yazar.
// Güncellenmiş kaydın kopyasını döndürür.
func (r *CardRepository) Update(slug string, patch models.CardPatch) (*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findIndexLocked(slug)
	if idx == -1 {
		return nil, ErrNotFound
	}

	prev := r.cards[idx]
	card := &r.cards[idx]
	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&card.FullName, patch.FullName)
	applyString(&card.JobTitle, patch.JobTitle)
	applyString(&card.Company, patch.Company)
	applyString(&card.Phone, patch.Phone)
	applyString(&card.Whatsapp, patch.Whatsapp)
	applyString(&card.Email, patch.Email)
	applyString(&card.Website, patch.Website)
	applyString(&card.Linkedin, patch.Linkedin)
	applyString(&card.Instagram, patch.Instagram)
	applyString(&card.AvatarURL, patch.AvatarURL)
	if patch.RTL != nil {
		card.RTL = *patch.RTL
	}

	if err := r.persistLocked(); err != nil {
		r.cards[idx] = prev
		return nil, err
	}
	updated := *card
	return &updated, nil
}

// RecordView kartın toplam ve aylık görüntülenme sayaçlarını artırır.
func (r *CardRepository) RecordView(slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findIndexLocked(slug)
	if idx == -1 {
		return ErrNotFound
	}

	prev := r.cards[idx]
	r.cards[idx].Views++
	r.cards[idx].ViewsMonth++
	if err := r.persistLocked(); err != nil {
		r.cards[idx] = prev
		return err
	}
	return nil
}

// ResetMonthlyViews verilen slug'ların aylık sayaçlarını tek kritik bölge
// içinde sıfırlar ve diske yazar. Güncel koleksiyon kilit altında okunur;
// böylece rapor koşusu sırasında başka yerden işlenen bir sayaç artışı
// (örn. RecordView) kaybolmaz. Aylık rapor işi döngü sonunda tek persist
// için kullanır.
func (r *CardRepository) ResetMonthlyViews(slugs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	targets := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		targets[models.NormalizeSlug(slug)] = struct{}{}
	}

	prev := make([]models.Card, len(r.cards))
	copy(prev, r.cards)
	for i := range r.cards {
		if _, ok := targets[models.NormalizeSlug(r.cards[i].Slug)]; ok {
			r.cards[i].ViewsMonth = 0
		}
	}

	if err := r.persistLocked(); err != nil {
		r.cards = prev
		return err
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ ICardRepository = (*CardRepository)(nil)
