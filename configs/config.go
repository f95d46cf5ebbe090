package configs

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config uygulamanın çalışma zamanı ayarlarını tutar.
// Tüm değerler environment'tan okunur, .env dosyası opsiyoneldir.
type Config struct {
	Port      string
	DataFile  string // Kartların tutulduğu JSON dosyası
	UploadDir string // Avatar yüklemelerinin yazıldığı public dizin

	// Aylık rapor SMTP ayarları
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	SendTimeout time.Duration // Tek bir mail gönderimi için üst sınır
}

// Load .env dosyasını (varsa) yükler ve Config'i oluşturur.
func Load() *Config {
	// .env bulunamazsa sorun değil; environment değerleri yeterli.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "3000"),
		DataFile:    getEnv("DATA_FILE", "data/cards.json"),
		UploadDir:   getEnv("UPLOAD_DIR", "public/uploads"),
		SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:    getEnvInt("SMTP_PORT", 587),
		SMTPUser:    getEnv("REPORT_EMAIL_USER", ""),
		SMTPPass:    getEnv("REPORT_EMAIL_PASS", ""),
		SendTimeout: getEnvDuration("SEND_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
