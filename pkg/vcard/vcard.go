// pkg/vcard kart kaydından vCard 3.0 çıktısı üretir.
package vcard

import (
	"strings"

	"kartim.link/models"
)

// Encode kartı vCard 3.0 metnine çevirir. Yan etkisiz, saf bir dönüşümdür.
// Opsiyonel satırlar (ORG, TITLE, TEL, EMAIL, URL) sadece ilgili alan doluysa
// ve her zaman bu sabit sırayla yazılır; satırlar CRLF ile birleştirilir.
func Encode(card models.Card) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + card.FullName,
	}
	if card.Company != "" {
		lines = append(lines, "ORG:"+card.Company)
	}
	if card.JobTitle != "" {
		lines = append(lines, "TITLE:"+card.JobTitle)
	}
	if card.Phone != "" {
		lines = append(lines, "TEL;TYPE=CELL:"+card.Phone)
	}
	if card.Email != "" {
		lines = append(lines, "EMAIL:"+card.Email)
	}
	if card.Website != "" {
		lines = append(lines, "URL:"+card.Website)
	}
	lines = append(lines, "END:VCARD")

	return strings.Join(lines, "\r\n")
}

// Filename indirme için dosya adı üretir (boşluklar alt çizgiye çevrilir).
func Filename(card models.Card) string {
	name := strings.TrimSpace(card.FullName)
	if name == "" {
		name = "contact"
	}
	return strings.Join(strings.Fields(name), "_") + ".vcf"
}
