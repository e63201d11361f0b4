package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func orderMail() ports.Mail {
	return ports.Mail{
		To:       []string{"corner@example.co.uk"},
		Subject:  "Complete Order Details",
		HTMLBody: "<p>Dear Corner Shop,</p>",
		Attachments: []ports.Attachment{
			{Filename: "ShopOrder.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
		},
	}
}

func TestSMTPMailer_Send(t *testing.T) {
	d := &fakeDialer{}
	m := &SMTPMailer{from: "orders@wholesale.example", dialer: d}

	require.NoError(t, m.Send(context.Background(), orderMail()))
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"orders@wholesale.example"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"corner@example.co.uk"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Complete Order Details"}, msg.GetHeader("Subject"))

	var raw bytes.Buffer
	_, err := msg.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), `filename="ShopOrder.pdf"`)
	assert.Contains(t, raw.String(), "application/pdf")
}

func TestSMTPMailer_Errors(t *testing.T) {
	d := &fakeDialer{err: errors.New("535 authentication failed")}
	m := &SMTPMailer{from: "orders@wholesale.example", dialer: d}

	err := m.Send(context.Background(), orderMail())
	assert.ErrorContains(t, err, "535")

	err = m.Send(context.Background(), ports.Mail{Subject: "nobody"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, orderMail()), context.Canceled)
}

func TestNewSMTPMailer_FromFallsBackToUser(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "smtp.example", Port: 587, User: "user@example.co.uk"})
	assert.Equal(t, "user@example.co.uk", m.from)
}

func TestLogMailer_NeverFails(t *testing.T) {
	assert.NoError(t, NewLogMailer(logger.Nop()).Send(context.Background(), orderMail()))
}
