package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapısal loglama için global zap logger.
// SLog aynı logger'ın sugared versiyonudur (printf tarzı kullanım için).
var Log *zap.Logger
var SLog *zap.SugaredLogger

func init() {
	// InitLogger çağrılmadan (örn. testlerde) loglama nil panic'e yol açmasın.
	Log = zap.NewNop()
	SLog = Log.Sugar()
}

// InitLogger global logger'ları APP_ENV değerine göre başlatır.
// "production" dışındaki ortamlarda okunabilir console çıktısı kullanılır.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger kurulamazsa uygulama devam edemez.
		panic("logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger buffer'daki logları flush eder. main içinde defer ile çağrılmalı.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
