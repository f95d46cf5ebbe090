// services/report_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"kartim.link/configs/configslog"
	"kartim.link/pkg/mailer"
	"kartim.link/repositories"

	"go.uber.org/zap"
)

// ReportOutcome tek bir kart için rapor sonucudur.
type ReportOutcome string

const (
	OutcomeSent    ReportOutcome = "sent"
	OutcomeSkipped ReportOutcome = "skipped" // Mail adresi boş
	OutcomeFailed  ReportOutcome = "failed"  // Gönderim hatası veya timeout
)

// ReportSummary bir rapor koşusunun özetidir.
type ReportSummary struct {
	Period  string
	Total   int
	Sent    int
	Skipped int
	Failed  int
}

// IReportService aylık istatistik raporu işi için arayüz.
type IReportService interface {
	Run(now time.Time) (*ReportSummary, error)
}

// ReportService IReportService arayüzünü uygular.
// İş, kart koleksiyonu üzerinde sıralı bir fold'dur: her kart için
// sent|skipped|failed sonucu üretilir, sayaçlar sıfırlanır ve koleksiyon
// döngü sonunda TEK seferde diske yazılır. At-most-once, best-effort:
// başarısız gönderim tekrar denenmez ve sonraki kartları engellemez.
type ReportService struct {
	repo   repositories.ICardRepository
	mailer mailer.IMailer
}

// NewReportService yeni bir ReportService örneği oluşturur.
func NewReportService(repo repositories.ICardRepository, m mailer.IMailer) IReportService {
	return &ReportService{repo: repo, mailer: m}
}

// PeriodLabel raporun insan okunur dönem etiketini üretir (örn. "August 2026").
func PeriodLabel(now time.Time) string {
	return now.Format("January 2006")
}

// Run raporu bir kez koşar. Koleksiyon boşsa dosyaya dokunmadan döner.
func (s *ReportService) Run(now time.Time) (*ReportSummary, error) {
	cards := s.repo.GetAll()
	summary := &ReportSummary{Period: PeriodLabel(now), Total: len(cards)}

	if len(cards) == 0 {
		configslog.SLog.Info("Kart bulunamadı, rapor gönderilmeyecek.")
		return summary, nil
	}

	processed := make([]string, 0, len(cards))
	for i := range cards {
		email := strings.TrimSpace(cards[i].Email)
		if email == "" {
			// Sahibine ulaşılamayan kartın sayacına dokunulmaz.
			summary.Skipped++
			continue
		}

		name := strings.TrimSpace(cards[i].FullName)
		if name == "" {
			name = "there"
		}

		subject := fmt.Sprintf("Your card stats for %s", summary.Period)
		body := buildReportBody(name, summary.Period, cards[i].Views, cards[i].ViewsMonth)

		if err := s.mailer.Send(email, subject, body); err != nil {
			summary.Failed++
			configslog.Log.Error("Rapor maili gönderilemedi",
				zap.String("slug", cards[i].Slug), zap.String("email", email), zap.Error(err))
		} else {
			summary.Sent++
			configslog.SLog.Infof("Rapor gönderildi: %s <%s>", name, email)
		}

		// Gönderim başarısız olsa da aylık sayaç sıfırlanacak.
		processed = append(processed, cards[i].Slug)
	}

	// Sıfırlama depo kilidi altında güncel duruma uygulanır; döngü sürerken
	// başka yerden kaydedilen sayaç artışları kaybolmaz.
	if err := s.repo.ResetMonthlyViews(processed); err != nil {
		configslog.Log.Error("Rapor sonrası kartlar diske yazılamadı", zap.Error(err))
		return summary, err
	}

	configslog.SLog.Infof("Aylık rapor tamamlandı: %d gönderildi, %d atlandı, %d başarısız.",
		summary.Sent, summary.Skipped, summary.Failed)
	return summary, nil
}

func buildReportBody(name, period string, total, month int) string {
	return fmt.Sprintf(`Hi %s,

Here are your card stats for %s:

- Views this month: %d
- Total views so far: %d

Thanks for using the kartim.link platform.

Best regards,
kartim.link`, name, period, month, total)
}

// Arayüz uyumluluğu kontrolü
var _ IReportService = (*ReportService)(nil)
