package models

// CardCreateInput kart oluşturma isteğinin gövdesidir.
// Rtl form checkbox'ından string olarak gelir ("on"|"true"|"1" → true).
type CardCreateInput struct {
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
	Rtl       string `json:"rtl" form:"rtl"`
}

// CardUpdateInput kısmi güncelleme gövdesidir.
// nil pointer "alan gönderilmedi" demektir; gönderilen alan (boş string dahil)
// mevcut değerin üzerine yazılır. Tek istisna AvatarURL'dir: boş string
// mevcut avatarı SİLMEZ (bilinçli asimetri, servis katmanında uygulanır).
type CardUpdateInput struct {
	FullName  *string `json:"fullName" form:"fullName"`
	JobTitle  *string `json:"jobTitle" form:"jobTitle"`
	Company   *string `json:"company" form:"company"`
	Phone     *string `json:"phone" form:"phone"`
	Whatsapp  *string `json:"whatsapp" form:"whatsapp"`
	Email     *string `json:"email" form:"email"`
	Website   *string `json:"website" form:"website"`
	Linkedin  *string `json:"linkedin" form:"linkedin"`
	Instagram *string `json:"instagram" form:"instagram"`
	AvatarURL *string `json:"avatarUrl" form:"avatarUrl"`
	Rtl       *string `json:"rtl" form:"rtl"`
}

// CardPatch repository'ye iletilen uygulanmaya hazır kısmi değişikliktir.
// nil olmayan her alan kaydın üzerine yazılır.
type CardPatch struct {
	FullName  *string
	JobTitle  *string
	Company   *string
	Phone     *string
	Whatsapp  *string
	Email     *string
	Website   *string
	Linkedin  *string
	Instagram *string
	AvatarURL *string
	RTL       *bool
}
