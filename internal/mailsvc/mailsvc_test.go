package mailsvc

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avvvet/cardcraft-services/internal/comm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []comm.ContactData
	err  error
}

func (s *recordingSender) Send(_ context.Context, c comm.ContactData) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, c)
	return nil
}

func contact() comm.ContactData {
	return comm.ContactData{
		ID:        "abc123",
		Name:      "Ana",
		Email:     "ana@example.com",
		Message:   "Do you print on recycled paper?",
		CreatedAt: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestBuildMessage(t *testing.T) {
	msg, err := BuildMessage("site@example.com", "owner@example.com", contact())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "Subject: New Contact Message from Ana")
	assert.Contains(t, out, "owner@example.com")
	assert.Contains(t, out, "Reply-To: <ana@example.com>")
	assert.Contains(t, out, "Do you print on recycled paper?")
	assert.Contains(t, out, "Received: 2024-05-01 10:30 UTC")
}

func TestBuildMessage_HTMLAlternativeIsEscaped(t *testing.T) {
	c := contact()
	c.Message = "<script>alert(1)</script>"
	msg, err := BuildMessage("site@example.com", "owner@example.com", c)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "multipart/alternative")
	assert.Contains(t, out, "text/html")
	assert.Contains(t, out, "Reply-To: <ana@example.com>")
	assert.NotContains(t, out, "<script>alert(1)</script></p>")
}

func TestBuildMessage_BadAddress(t *testing.T) {
	c := contact()
	c.Email = "not an address"

	_, err := BuildMessage("site@example.com", "owner@example.com", c)
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "bot@example.com")
	t.Setenv("SMTP_PASS", "pw")
	t.Setenv("CONTACT_FROM", "")
	t.Setenv("CONTACT_TO", "")

	c := ConfigFromEnv()
	assert.Equal(t, 2525, c.Port)
	assert.Equal(t, "bot@example.com", c.From)
	assert.Equal(t, "bot@example.com", c.To)
	assert.True(t, c.Configured())

	t.Setenv("SMTP_HOST", "")
	assert.False(t, ConfigFromEnv().Configured())
}

func TestConsumer_Handle(t *testing.T) {
	sender := &recordingSender{}
	c := NewConsumer(sender)

	payload, err := comm.Envelope(comm.TypeContactMessage, contact())
	require.NoError(t, err)
	require.NoError(t, c.Handle(payload))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Ana", sender.sent[0].Name)

	other, err := comm.Envelope(comm.TypeCatalogChanged, comm.CatalogChange{Action: "created"})
	require.NoError(t, err)
	require.NoError(t, c.Handle(other))
	assert.Len(t, sender.sent, 1)

	assert.Error(t, c.Handle([]byte("{")))
}

func TestConsumer_SendFailure(t *testing.T) {
	c := NewConsumer(&recordingSender{err: errors.New("smtp down")})

	payload, err := comm.Envelope(comm.TypeContactMessage, contact())
	require.NoError(t, err)
	assert.EqualError(t, c.Handle(payload), "smtp down")
}
