package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// smtpSender is the concrete Sender backed by an SMTP relay reached over
// STARTTLS with PLAIN authentication.
type smtpSender struct {
	host     string
	port     string
	username string // also used as the From address
	password string
	cc       string

	dialTimeout time.Duration
	now         func() time.Time

	// tlsConfig overrides the STARTTLS client config. Nil verifies the
	// relay against the system roots under host.
	tlsConfig *tls.Config
}

// NewSMTPSender returns a Sender that relays through host:port. Every message
// is sent from username and copied to cc (which may be empty).
func NewSMTPSender(host, port, username, password, cc string) Sender {
	return &smtpSender{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		cc:          cc,
		dialTimeout: 30 * time.Second,
		now:         time.Now,
	}
}

// Send composes m and delivers it in a fresh SMTP session. The connection is
// closed before Send returns, whatever the outcome.
func (s *smtpSender) Send(ctx context.Context, m Message) error {
	if m.Cc == "" {
		m.Cc = s.cc
	}
	msg := compose(s.username, m, s.now(), uuid.NewString())

	addr := net.JoinHostPort(s.host, s.port)
	dialer := &net.Dialer{Timeout: s.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("email: dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("email: smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); !ok {
		return errors.New("email: relay does not offer STARTTLS")
	}
	if err := c.StartTLS(s.tlsClientConfig()); err != nil {
		return fmt.Errorf("email: starttls: %w", err)
	}
	if err := c.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
		return fmt.Errorf("email: auth: %w", err)
	}

	if err := c.Mail(s.username); err != nil {
		return fmt.Errorf("email: MAIL FROM: %w", err)
	}
	for _, rcpt := range m.Recipients() {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("email: RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("email: DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("email: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("email: end DATA: %w", err)
	}

	if err := c.Quit(); err != nil {
		return fmt.Errorf("email: QUIT: %w", err)
	}
	return nil
}

func (s *smtpSender) tlsClientConfig() *tls.Config {
	if s.tlsConfig == nil {
		return &tls.Config{ServerName: s.host}
	}
	cfg := s.tlsConfig.Clone()
	if cfg.ServerName == "" {
		cfg.ServerName = s.host
	}
	return cfg
}

// ─── MESSAGE COMPOSITION ─────────────────────────────────────────────────────

// compose renders m as an RFC 5322 message with a quoted-printable UTF-8
// text body. Non-ASCII subjects are RFC 2047 encoded.
func compose(from string, m Message, date time.Time, id string) []byte {
	var buf bytes.Buffer

	header := func(k, v string) {
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(v)
		buf.WriteString("\r\n")
	}

	header("From", from)
	header("To", m.To)
	if m.Cc != "" {
		header("Cc", m.Cc)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	header("Date", date.Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", id, domainOf(from)))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="utf-8"`)
	header("Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	_, _ = qp.Write([]byte(strings.ReplaceAll(body, "\n", "\r\n")))
	_ = qp.Close()
	buf.WriteString("\r\n")

	return buf.Bytes()
}

func domainOf(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 && i < len(addr)-1 {
		return strings.Trim(addr[i+1:], "<> ")
	}
	return "localhost"
}
