// pkg/mailer aylık rapor işinin kullandığı soyut mail gönderim katmanıdır.
package mailer

import (
	"errors"
	"time"

	"gopkg.in/gomail.v2"
)

// ErrSendTimeout gönderim süre sınırını aştığında döner; iş bunu normal bir
// gönderim hatası olarak ele alır.
var ErrSendTimeout = errors.New("mail gönderimi zaman aşımına uğradı")

// IMailer tek bir mesaj gönderme yeteneği için arayüz.
type IMailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer IMailer arayüzünü gomail/SMTP ile uygular.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
}

// NewSMTPMailer environment'tan gelen kimlik bilgileriyle yeni bir SMTPMailer
// oluşturur. timeout tek bir gönderim için üst sınırdır; 0 verilirse 15s kullanılır.
func NewSMTPMailer(host string, port int, user, pass string, timeout time.Duration) *SMTPMailer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SMTPMailer{
		dialer:  gomail.NewDialer(host, port, user, pass),
		from:    user,
		timeout: timeout,
	}
}

// Send mesajı gönderir. Takılan bir SMTP oturumu sonraki kartları süresiz
// bloklamasın diye gönderim ayrı goroutine'de koşulur ve timeout'ta
// ErrSendTimeout döner.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from, "Kartim Platform"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(m.timeout):
		return ErrSendTimeout
	}
}

// Arayüz uyumluluğu kontrolü
var _ IMailer = (*SMTPMailer)(nil)
