// cmd/report aylık görüntülenme raporunu bir kez koşan batch binary'dir.
// Zamanlama dışarıdan (cron vb.) tetiklenir.
package main

import (
	"flag"
	"time"

	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/pkg/mailer"
	"kartim.link/repositories"
	"kartim.link/services"

	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	dataFlag := flag.String("data", "", "Kart veri dosyası yolu (boşsa DATA_FILE/varsayılan kullanılır)")
	flag.Parse()

	cfg := configs.Load()
	if *dataFlag != "" {
		cfg.DataFile = *dataFlag
	}

	// Seed'siz açılır: dosya eksik/bozuksa iş "kart yok" deyip çıkmalı,
	// örnek kartı mailleyip dosya yaratmamalı.
	cardRepo := repositories.OpenCardRepository(cfg.DataFile)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SendTimeout)
	reportService := services.NewReportService(cardRepo, smtpMailer)

	configslog.SLog.Info("Aylık rapor işi başlıyor...")
	summary, err := reportService.Run(time.Now())
	if err != nil {
		configslog.Log.Fatal("Aylık rapor işi başarısız oldu", zap.Error(err))
	}

	configslog.SLog.Infof("Rapor işi bitti (%s): toplam %d kart, %d gönderildi, %d atlandı, %d başarısız.",
		summary.Period, summary.Total, summary.Sent, summary.Skipped, summary.Failed)
}
