package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kartim.link/models"
	"kartim.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mailerFunc testlerde IMailer yerine geçer.
type mailerFunc func(to, subject, body string) error

func (f mailerFunc) Send(to, subject, body string) error { return f(to, subject, body) }

type sentMail struct {
	to, subject, body string
}

func reportRepo(t *testing.T, cards []models.Card) (repositories.ICardRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	repo := repositories.NewCardRepository(path)
	for _, card := range cards {
		require.NoError(t, repo.Create(card))
	}
	return repo, path
}

func TestPeriodLabel(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "March 2026", PeriodLabel(now))
}

func TestReportSendsStatsAndResetsCounter(t *testing.T) {
	repo, path := reportRepo(t, []models.Card{
		{Slug: "ali", FullName: "Ali Hasan", Email: "a@x.com", Views: 12, ViewsMonth: 5},
	})

	var sent []sentMail
	svc := NewReportService(repo, mailerFunc(func(to, subject, body string) error {
		sent = append(sent, sentMail{to, subject, body})
		return nil
	}))

	summary, err := svc.Run(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 0, summary.Failed)

	require.Len(t, sent, 1)
	assert.Equal(t, "a@x.com", sent[0].to)
	assert.Contains(t, sent[0].subject, "August 2026")
	assert.Contains(t, sent[0].body, "Hi Ali Hasan")
	assert.Contains(t, sent[0].body, "Views this month: 5")
	assert.Contains(t, sent[0].body, "Total views so far: 12")

	// Sayaç sıfırlanıp persist edilmiş olmalı; toplam sayaç korunur.
	reloaded := repositories.NewCardRepository(path)
	card, err := reloaded.FindBySlug("ali")
	require.NoError(t, err)
	assert.Equal(t, 0, card.ViewsMonth)
	assert.Equal(t, 12, card.Views)
}

func TestReportResetsCounterEvenWhenSendFails(t *testing.T) {
	repo, _ := reportRepo(t, []models.Card{
		{Slug: "bir", FullName: "Bir", Email: "a@x.com", ViewsMonth: 5},
		{Slug: "iki", FullName: "İki", Email: "", ViewsMonth: 3},
	})

	svc := NewReportService(repo, mailerFunc(func(to, subject, body string) error {
		return errors.New("smtp kapalı")
	}))

	summary, err := svc.Run(time.Now())
	require.NoError(t, err) // Tekil gönderim hatası işi düşürmez
	assert.Equal(t, 0, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)

	one, err := repo.FindBySlug("bir")
	require.NoError(t, err)
	assert.Equal(t, 0, one.ViewsMonth) // Hataya rağmen sıfırlanır

	two, err := repo.FindBySlug("iki")
	require.NoError(t, err)
	assert.Equal(t, 3, two.ViewsMonth) // Maili olmayan karta dokunulmaz
}

func TestReportSkipsBlankEmailAfterTrim(t *testing.T) {
	repo, _ := reportRepo(t, []models.Card{
		{Slug: "bos", FullName: "Boş", Email: "   ", ViewsMonth: 2},
	})

	calls := 0
	svc := NewReportService(repo, mailerFunc(func(to, subject, body string) error {
		calls++
		return nil
	}))

	summary, err := svc.Run(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, summary.Skipped)

	card, err := repo.FindBySlug("bos")
	require.NoError(t, err)
	assert.Equal(t, 2, card.ViewsMonth)
}

func TestReportDefaultsRecipientName(t *testing.T) {
	repo, _ := reportRepo(t, []models.Card{
		{Slug: "adsiz", FullName: "", Email: "a@x.com"},
	})

	var body string
	svc := NewReportService(repo, mailerFunc(func(to, subject, b string) error {
		body = b
		return nil
	}))

	_, err := svc.Run(time.Now())
	require.NoError(t, err)
	assert.Contains(t, body, "Hi there,")
}

func TestReportPreservesViewsRecordedMidRun(t *testing.T) {
	repo, _ := reportRepo(t, []models.Card{
		{Slug: "bir", FullName: "Bir", Email: "a@x.com", Views: 10, ViewsMonth: 5},
		{Slug: "iki", FullName: "İki", Email: "", Views: 0, ViewsMonth: 0},
	})

	// Gönderim sürerken public sayfadan gelen görüntülenmeleri temsil eder.
	svc := NewReportService(repo, mailerFunc(func(to, subject, body string) error {
		require.NoError(t, repo.RecordView("iki"))
		require.NoError(t, repo.RecordView("bir"))
		return nil
	}))

	_, err := svc.Run(time.Now())
	require.NoError(t, err)

	// Raporlanmayan kartın araya giren görüntülenmesi kaybolmaz.
	two, err := repo.FindBySlug("iki")
	require.NoError(t, err)
	assert.Equal(t, 1, two.Views)
	assert.Equal(t, 1, two.ViewsMonth)

	// İşlenen kartın toplam sayacı korunur, aylık sayacı sıfırlanır.
	one, err := repo.FindBySlug("bir")
	require.NoError(t, err)
	assert.Equal(t, 11, one.Views)
	assert.Equal(t, 0, one.ViewsMonth)
}

func TestReportMissingDataFileReportsNoCards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	repo := repositories.OpenCardRepository(path)

	svc := NewReportService(repo, mailerFunc(func(to, subject, body string) error {
		t.Fatal("eksik veri dosyasında mail gönderilmemeli")
		return nil
	}))

	summary, err := svc.Run(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.Sent)

	// İş dosya yaratmamalı; seed kartı da maillenmemeli.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReportEmptyStoreTouchesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	repo := repositories.NewCardRepository(path)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	svc := NewReportService(repo, mailerFunc(func(to, subject, body string) error {
		t.Fatal("boş koleksiyonda mail gönderilmemeli")
		return nil
	}))

	summary, err := svc.Run(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after) // Dosya yeniden yazılmaz
}
