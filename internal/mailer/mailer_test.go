// internal/mailer/mailer_test.go
package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	calls    int
	failures int
	inputs   []*ses.SendEmailInput
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	m.inputs = append(m.inputs, params)
	if m.calls <= m.failures {
		return nil, errors.New("ses throttled")
	}
	return &ses.SendEmailOutput{}, nil
}

type noopLogger struct{}

func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}

func newMockedMailer(client SESService) *SESMailer {
	m := newSESMailer(Config{
		Region:     "ap-south-1",
		FromEmail:  "noreply@example.com",
		BaseURL:    "https://app.example.com/",
		MaxRetries: 3,
	}, client, noopLogger{})
	m.sleep = func(time.Duration) {}
	return m
}

func TestSESMailer_SendVerification(t *testing.T) {
	mock := &mockSES{}
	m := newMockedMailer(mock)

	err := m.SendVerification(context.Background(), "user@example.com", "tok123")
	require.NoError(t, err)
	require.Len(t, mock.inputs, 1)

	input := mock.inputs[0]
	assert.Equal(t, []string{"user@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "noreply@example.com", *input.Source)
	assert.Contains(t, *input.Message.Body.Text.Data, "https://app.example.com/auth/verify?token=tok123")
}

func TestSESMailer_RetriesThenSucceeds(t *testing.T) {
	mock := &mockSES{failures: 2}
	m := newMockedMailer(mock)

	err := m.SendVerification(context.Background(), "user@example.com", "tok123")
	require.NoError(t, err)
	assert.Equal(t, 3, mock.calls)
}

func TestSESMailer_ExhaustsRetries(t *testing.T) {
	mock := &mockSES{failures: 10}
	m := newMockedMailer(mock)

	err := m.SendVerification(context.Background(), "user@example.com", "tok123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailSendFailed)
	assert.Equal(t, 3, mock.calls)
}

func TestRenderTemplate_RemovesMissingPlaceholders(t *testing.T) {
	out := renderTemplate("Hello {{name}}, visit {{verifyUrl}}.", map[string]interface{}{
		"verifyUrl": "https://example.com/v",
	})
	assert.Equal(t, "Hello , visit https://example.com/v.", out)
}
