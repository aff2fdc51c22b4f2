package mailsvc

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"strings"

	"github.com/avvvet/cardcraft-services/internal/comm"
	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// Sender delivers one contact message.
type Sender interface {
	Send(ctx context.Context, c comm.ContactData) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// ConfigFromEnv reads SMTP_* and CONTACT_* settings.
func ConfigFromEnv() Config {
	c := Config{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     587,
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     os.Getenv("CONTACT_FROM"),
		To:       os.Getenv("CONTACT_TO"),
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			log.Warnf("invalid SMTP_PORT %q, using %d", v, c.Port)
		} else {
			c.Port = p
		}
	}
	if c.From == "" {
		c.From = c.Username
	}
	if c.To == "" {
		c.To = c.From
	}
	return c
}

// Configured reports whether enough is set to talk to a server.
func (c Config) Configured() bool {
	return c.Host != "" && c.From != "" && c.To != ""
}

type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, c comm.ContactData) error {
	msg, err := BuildMessage(m.cfg.From, m.cfg.To, c)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send contact %s: %w", c.ID, err)
	}
	return nil
}

// BuildMessage formats a contact submission. Replies go to the sender.
func BuildMessage(from, to string, c comm.ContactData) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	if err := msg.ReplyTo(c.Email); err != nil {
		return nil, fmt.Errorf("reply-to address: %w", err)
	}
	msg.Subject("New Contact Message from " + c.Name)
	msg.SetBodyString(mail.TypeTextPlain, body(c))
	if err := msg.AddAlternativeHTMLTemplate(htmlBody, c); err != nil {
		return nil, fmt.Errorf("html body: %w", err)
	}
	return msg, nil
}

var htmlBody = template.Must(template.New("contact").Parse(`<h2>New Contact Message</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
<p><strong>Message:</strong></p>
<p style="white-space: pre-wrap">{{.Message}}</p>
`))

func body(c comm.ContactData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	if !c.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Received: %s\n", c.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	b.WriteString("\nMessage:\n")
	b.WriteString(c.Message)
	b.WriteString("\n")
	return b.String()
}

// LogSender only logs; used when SMTP is not configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, c comm.ContactData) error {
	log.Infof("contact message %s from %s <%s> (smtp not configured)", c.ID, c.Name, c.Email)
	return nil
}
