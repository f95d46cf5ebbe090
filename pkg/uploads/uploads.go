// pkg/uploads avatar yüklemelerinin doğrulanması ve diske yazılmasından sorumludur.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxAvatarSize avatar dosyası için üst sınır (2 MiB).
const MaxAvatarSize = 2 << 20

// PublicPrefix kaydedilen dosyaların URL ön ekidir.
const PublicPrefix = "/uploads/"

var (
	ErrNotImage = errors.New("sadece görsel dosyalarına izin verilir")
	ErrTooLarge = errors.New("dosya boyutu 2MB sınırını aşıyor")
)

// Upload gelen dosyanın transport'tan bağımsız temsilidir.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.ReadCloser
}

// Close dosya içeriğini kapatır.
func (u *Upload) Close() error {
	if u == nil || u.Content == nil {
		return nil
	}
	return u.Content.Close()
}

// FromFileHeader multipart form dosyasından Upload oluşturur.
// Dönen Upload'ı çağıran Close etmelidir.
func FromFileHeader(fh *multipart.FileHeader) (*Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}, nil
}

// Resolver yüklemeleri public dizine yazar ve nihai avatarUrl'i belirler.
type Resolver struct {
	dir string
}

// NewResolver verilen dizine yazan yeni bir Resolver oluşturur.
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)

// fileStem slug'ı dosya adına uygun forma indirger.
func fileStem(slug string) string {
	stem := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(slug)), "-")
	if stem == "" {
		return "card"
	}
	return stem
}

// Resolve nihai avatarUrl değerine karar verir.
// Yükleme varsa doğrulanır, <slug>-<epoch-millis><ext> adıyla diske yazılır ve
// public path döner. Yükleme yoksa trim edilmiş direct URL (veya boş) döner.
// Eski avatar dosyalarına hiçbir zaman dokunulmaz.
func (r *Resolver) Resolve(slug string, up *Upload, directURL string) (string, error) {
	if up == nil {
		return strings.TrimSpace(directURL), nil
	}

	if !strings.HasPrefix(up.ContentType, "image/") {
		return "", ErrNotImage
	}
	if up.Size > MaxAvatarSize {
		return "", ErrTooLarge
	}

	ext := path.Ext(up.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s-%d%s", fileStem(slug), time.Now().UnixMilli(), ext)

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, up.Content); err != nil {
		return "", err
	}

	return PublicPrefix + name, nil
}
