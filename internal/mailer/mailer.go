// internal/mailer/mailer.go
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var ErrEmailSendFailed = errors.New("EMAIL_SEND_FAILED")

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Logger is the minimal logging surface the mailer needs.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

type Config struct {
	Region     string
	FromEmail  string
	BaseURL    string
	MaxRetries int
}

// SESMailer sends transactional email through Amazon SES with retry.
type SESMailer struct {
	config    Config
	client    SESService
	logger    Logger
	templates map[string]emailTemplate
	sleep     func(time.Duration)
}

type emailTemplate struct {
	subject string
	body    string
}

func NewSESMailer(ctx context.Context, config Config, log Logger) (*SESMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return newSESMailer(config, ses.NewFromConfig(awsCfg), log), nil
}

func newSESMailer(config Config, client SESService, log Logger) *SESMailer {
	if config.MaxRetries < 1 {
		config.MaxRetries = 3
	}
	return &SESMailer{
		config:    config,
		client:    client,
		logger:    log,
		templates: loadTemplates(),
		sleep:     time.Sleep,
	}
}

// SendVerification emails the account-verification link.
func (m *SESMailer) SendVerification(ctx context.Context, to, token string) error {
	return m.send(ctx, to, "verification", map[string]interface{}{
		"verifyUrl": fmt.Sprintf("%s/auth/verify?token=%s", strings.TrimRight(m.config.BaseURL, "/"), token),
	})
}

func (m *SESMailer) send(ctx context.Context, to, templateName string, data map[string]interface{}) error {
	template, exists := m.templates[templateName]
	if !exists {
		return fmt.Errorf("template not found: %s", templateName)
	}

	subject := renderTemplate(template.subject, data)
	body := renderTemplate(template.body, data)

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.config.FromEmail),
	}

	var err error
	delay := time.Second
	for attempt := 1; attempt <= m.config.MaxRetries; attempt++ {
		_, err = m.client.SendEmail(ctx, input)
		if err == nil {
			return nil
		}
		if attempt < m.config.MaxRetries {
			m.logger.Warn("email send failed, retrying...", map[string]interface{}{
				"error":       err.Error(),
				"attempt":     attempt,
				"maxRetries":  m.config.MaxRetries,
				"nextRetryIn": delay.String(),
			})
			m.sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	m.logger.Error("email send failed permanently", map[string]interface{}{
		"error":    err.Error(),
		"template": templateName,
	})
	return fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
}

// Simplified template rendering with placeholder removal for missing values
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Remove any remaining placeholders (missing values)
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}

func loadTemplates() map[string]emailTemplate {
	return map[string]emailTemplate{
		"verification": {
			subject: "Verify your NyaySetu account",
			body:    "Welcome to NyaySetu. Please verify your account by visiting {{verifyUrl}} within 24 hours.",
		},
	}
}
