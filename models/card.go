package models

import "strings"

// Card dijital kartvizitin ana kaydıdır.
// Slug kartın public kimliğidir; küçük harfe normalize edilmiş halde saklanır.
// Opsiyonel alanlar hiçbir zaman null olmaz, "ayarlanmadı" boş string demektir.
type Card struct {
	Slug      string `json:"slug" form:"slug"`
	FullName  string `json:"fullName" form:"fullName"`
	JobTitle  string `json:"jobTitle" form:"jobTitle"`
	Company   string `json:"company" form:"company"`
	Phone     string `json:"phone" form:"phone"`
	Whatsapp  string `json:"whatsapp" form:"whatsapp"`
	Email     string `json:"email" form:"email"`
	Website   string `json:"website" form:"website"`
	Linkedin  string `json:"linkedin" form:"linkedin"`
	Instagram string `json:"instagram" form:"instagram"`
	AvatarURL string `json:"avatarUrl" form:"avatarUrl"`
	RTL       bool   `json:"rtl" form:"-"` // Sağdan sola görüntüleme bayrağı

	// Görüntülenme sayaçları. ViewsMonth aylık rapor sonrası sıfırlanır.
	Views      int `json:"views"`
	ViewsMonth int `json:"viewsMonth"`
}

// CardSummary liste görünümü için daraltılmış projeksiyon.
// İletişim bilgileri listede gösterilmez.
type CardSummary struct {
	Slug     string `json:"slug"`
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
	Company  string `json:"company"`
}

// Summary karttan liste projeksiyonunu üretir.
func (c Card) Summary() CardSummary {
	return CardSummary{
		Slug:     c.Slug,
		FullName: c.FullName,
		JobTitle: c.JobTitle,
		Company:  c.Company,
	}
}

// NormalizeSlug slug'ı public kimlik formuna getirir (trim + küçük harf).
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
