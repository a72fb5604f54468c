package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/dmitrijs2005/mediaxis/internal/logging"
)

func TestLogNotifier_Send(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(logging.NewJSON(&buf, "info"))

	require.NoError(t, n.Send(context.Background(), "a@x.com", "Hello", "link"))

	out := buf.String()
	assert.Contains(t, out, `"to":"a@x.com"`)
	assert.Contains(t, out, `"module":"notify"`)
}

func TestSMTPNotifier_SendBuildsMessage(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 465, Username: "u", Password: "p", From: "noreply@example.com"})

	var sent *mail.Msg
	n.dialAndSend = func(ctx context.Context, c *mail.Client, m *mail.Msg) error {
		sent = m
		return nil
	}

	require.NoError(t, n.Send(context.Background(), "a@x.com", "Password Reset Request", "click here"))
	require.NotNil(t, sent)

	assert.Equal(t, []string{"Password Reset Request"}, sent.GetGenHeader(mail.HeaderSubject))

	var raw bytes.Buffer
	_, err := sent.WriteTo(&raw)
	require.NoError(t, err)
	assert.True(t, strings.Contains(raw.String(), "click here"))
}

func TestSMTPNotifier_SendError(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "noreply@example.com"})
	n.dialAndSend = func(ctx context.Context, c *mail.Client, m *mail.Msg) error {
		return errors.New("connection refused")
	}

	err := n.Send(context.Background(), "a@x.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp send: connection refused")
}

func TestSMTPNotifier_InvalidRecipient(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 465, From: "noreply@example.com"})
	called := false
	n.dialAndSend = func(ctx context.Context, c *mail.Client, m *mail.Msg) error {
		called = true
		return nil
	}

	err := n.Send(context.Background(), "not an address", "s", "b")
	require.Error(t, err)
	assert.False(t, called)
}
