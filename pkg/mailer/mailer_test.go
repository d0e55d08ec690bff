package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"net/textproto"
	"testing"

	"github.com/mailjet/mailjet-apiv3-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/loverprompt/loverprompt-backend/pkg/messagequeue"
)

// ---------------------------------------------------------------------------
// SMTP
// ---------------------------------------------------------------------------

func testSMTPConfig() SMTPConfig {
	return SMTPConfig{Host: "smtp.mailtrap.io", Port: "2525", User: "user", Pass: "pass", Sender: "noreply@loverprompt.app"}
}

func TestNewSMTPMailer_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SMTPConfig)
	}{
		{name: "no host", mutate: func(c *SMTPConfig) { c.Host = "" }},
		{name: "no sender", mutate: func(c *SMTPConfig) { c.Sender = "" }},
		{name: "no credentials", mutate: func(c *SMTPConfig) { c.Pass = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testSMTPConfig()
			tt.mutate(&cfg)
			_, err := NewSMTPMailer(cfg)
			assert.Error(t, err)
		})
	}
}

func TestSMTPMailer_Send(t *testing.T) {
	m, err := NewSMTPMailer(testSMTPConfig())
	require.NoError(t, err)

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		assert.Equal(t, "noreply@loverprompt.app", from)
		return nil
	}

	require.NoError(t, m.Send(context.Background(), "love@example.com", "For you", "<p>You are wonderful</p>"))
	assert.Equal(t, "smtp.mailtrap.io:2525", gotAddr)
	assert.Equal(t, []string{"love@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: For you\r\n")
	assert.Contains(t, gotMsg, "Content-Type: text/html; charset=UTF-8")
}

func TestSMTPMailer_SendErrors(t *testing.T) {
	m, err := NewSMTPMailer(testSMTPConfig())
	require.NoError(t, err)
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("535 auth failed") }

	err = m.Send(context.Background(), "", "s", "b")
	assert.ErrorIs(t, err, ErrInvalidMessage)

	err = m.Send(context.Background(), "a@b.c", "s", "plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535")
}

func TestSMTPMailer_RejectsHeaderLineBreaks(t *testing.T) {
	m, err := NewSMTPMailer(testSMTPConfig())
	require.NoError(t, err)
	called := false
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	err = m.Send(context.Background(), "victim@example.com", "Eve\r\nReply-To: phish@evil.example\r\nX-Injected: 1 sent you a compliment", "hi")
	assert.ErrorIs(t, err, ErrInvalidMessage)
	err = m.Send(context.Background(), "victim@example.com\r\nBcc: other@example.com", "hello", "hi")
	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.False(t, called)
}

func TestSMTPMailer_EncodesNonASCIISubject(t *testing.T) {
	m, err := NewSMTPMailer(testSMTPConfig())
	require.NoError(t, err)
	var gotMsg string
	m.sendMail = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = string(msg)
		return nil
	}

	require.NoError(t, m.Send(context.Background(), "love@example.com", "Zoë sent you a compliment", "hi"))
	assert.Contains(t, gotMsg, "Subject: =?utf-8?q?")
	assert.NotContains(t, gotMsg, "Zoë")
}

// ---------------------------------------------------------------------------
// Mailjet
// ---------------------------------------------------------------------------

func TestMailjetMailer_Send(t *testing.T) {
	m, err := NewMailjetMailer("pub", "priv", "noreply@loverprompt.app")
	require.NoError(t, err)

	var sent *mailjet.MessagesV31
	m.send = func(msgs *mailjet.MessagesV31) error {
		sent = msgs
		return nil
	}

	require.NoError(t, m.Send(context.Background(), "love@example.com", "Reminder", "Dinner at 8"))
	require.NotNil(t, sent)
	require.Len(t, sent.Info, 1)
	info := sent.Info[0]
	assert.Equal(t, "noreply@loverprompt.app", info.From.Email)
	assert.Equal(t, "love@example.com", (*info.To)[0].Email)
	assert.Equal(t, "Dinner at 8", info.TextPart)
	assert.Empty(t, info.HTMLPart)
}

func TestNewMailjetMailer_RequiresKeys(t *testing.T) {
	_, err := NewMailjetMailer("", "priv", "a@b.c")
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Queue
// ---------------------------------------------------------------------------

type mockQueue struct {
	mock.Mock
}

func (m *mockQueue) Publish(ctx context.Context, queueName string, body []byte) error {
	return m.Called(ctx, queueName, body).Error(0)
}

func (m *mockQueue) Consume(ctx context.Context, queueName string, handler messagequeue.Handler) error {
	return m.Called(ctx, queueName, handler).Error(0)
}

func (m *mockQueue) Close() error { return m.Called().Error(0) }

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

func TestQueueMailer_PublishesJSON(t *testing.T) {
	mq := &mockQueue{}
	mq.On("Publish", mock.Anything, "loverprompt.email", mock.MatchedBy(func(b []byte) bool {
		return string(b) == `{"to":"a@b.c","subject":"hi","body":"there"}`
	})).Return(nil)

	q := NewQueueMailer(mq, "loverprompt.email")
	require.NoError(t, q.Send(context.Background(), "a@b.c", "hi", "there"))
	mq.AssertExpectations(t)
}

func TestQueueMailer_InvalidNotPublished(t *testing.T) {
	mq := &mockQueue{}
	q := NewQueueMailer(mq, "loverprompt.email")
	assert.ErrorIs(t, q.Send(context.Background(), "a@b.c", "", "body"), ErrInvalidMessage)
	mq.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliver(t *testing.T) {
	ctx := context.Background()
	m := &mockMailer{}
	m.On("Send", ctx, "a@b.c", "hi", "there").Return(nil).Once()
	m.On("Send", ctx, "x@y.z", "retry", "me").Return(errors.New("down")).Once()

	var dropped int
	h := Deliver(m, func([]byte, error) { dropped++ })

	assert.NoError(t, h(ctx, []byte(`{"to":"a@b.c","subject":"hi","body":"there"}`)))
	assert.Error(t, h(ctx, []byte(`{"to":"x@y.z","subject":"retry","body":"me"}`)))
	assert.NoError(t, h(ctx, []byte(`not json`)))
	assert.NoError(t, h(ctx, []byte(`{"to":"","subject":"x"}`)))
	assert.Equal(t, 2, dropped)
	m.AssertExpectations(t)
}

func TestDeliver_PermanentRejectionIsNotRetried(t *testing.T) {
	ctx := context.Background()
	m := &mockMailer{}
	bounce := fmt.Errorf("failed to send email: %w", &textproto.Error{Code: 550, Msg: "mailbox unavailable"})
	m.On("Send", ctx, "gone@example.com", "hi", "there").Return(bounce).Once()
	m.On("Send", ctx, "busy@example.com", "hi", "there").Return(&textproto.Error{Code: 451, Msg: "try later"}).Once()

	h := Deliver(m, func([]byte, error) {})

	err := h(ctx, []byte(`{"to":"gone@example.com","subject":"hi","body":"there"}`))
	assert.ErrorIs(t, err, messagequeue.ErrPermanent)

	err = h(ctx, []byte(`{"to":"busy@example.com","subject":"hi","body":"there"}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, messagequeue.ErrPermanent)
	m.AssertExpectations(t)
}

func TestNewFromProvider(t *testing.T) {
	smtpCfg := SMTPConfig{Host: "smtp.mailtrap.io", Port: "2525", User: "u", Pass: "p", Sender: "noreply@loverprompt.app"}

	m, err := NewFromProvider(ProviderConfig{Provider: "SMTP", SMTP: smtpCfg})
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	m, err = NewFromProvider(ProviderConfig{Provider: "mailjet", SMTP: smtpCfg, MailjetPublicKey: "pub", MailjetPrivateKey: "priv"})
	require.NoError(t, err)
	assert.IsType(t, &MailjetMailer{}, m)

	_, err = NewFromProvider(ProviderConfig{Provider: "mailjet", SMTP: smtpCfg})
	assert.Error(t, err)

	_, err = NewFromProvider(ProviderConfig{Provider: "pigeon"})
	assert.Error(t, err)
}
