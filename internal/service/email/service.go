package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

// Provider defines the interface for email providers
type Provider interface {
	Send(ctx context.Context, to, subject, body string, isHTML bool) error
}

// Config holds email service configuration
type Config struct {
	// Provider type: "sendgrid" or "log"
	Provider string

	FromEmail string
	FromName  string

	SendGridAPIKey string
}

// DefaultConfig returns a default configuration for development
func DefaultConfig() *Config {
	return &Config{
		Provider:  "log",
		FromEmail: "reports@tradeinsight.local",
		FromName:  "TradeInsight",
	}
}

// Service implements the EmailService interface
type Service struct {
	config   *Config
	provider Provider
	report   *template.Template
	now      func() time.Time
	log      *zap.Logger
}

// NewService creates a new email service
func NewService(config *Config, log *zap.Logger) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var provider Provider
	switch config.Provider {
	case "sendgrid":
		if config.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SendGrid API key is required")
		}
		provider = NewSendGridProvider(config.SendGridAPIKey, config.FromEmail, config.FromName)
	case "log", "":
		provider = NewLogProvider(log)
	default:
		return nil, fmt.Errorf("unknown email provider: %s", config.Provider)
	}

	return newService(config, provider, log), nil
}

func newService(config *Config, provider Provider, log *zap.Logger) *Service {
	return &Service{
		config:   config,
		provider: provider,
		report:   template.Must(template.New("report").Parse(reportTemplate)),
		now:      time.Now,
		log:      log,
	}
}

// SendHTML sends an HTML email
func (s *Service) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	s.log.Info("Sending HTML email",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	if err := s.provider.Send(ctx, to, subject, htmlBody, true); err != nil {
		s.log.Error("Failed to send HTML email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}

	return nil
}

// SendReport wraps the rendered report in the mail layout and sends it.
func (s *Service) SendReport(ctx context.Context, to string, report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	data := map[string]interface{}{
		"Focus": report.Focus,
		// The report HTML comes from our own markdown renderer.
		"Body":        template.HTML(report.HTML),
		"GeneratedAt": s.now().Format("2006-01-02 15:04"),
		"AppName":     s.config.FromName,
	}

	var buf bytes.Buffer
	if err := s.report.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Trade Intelligence Report: %s", report.Focus)
	return s.SendHTML(ctx, to, subject, buf.String())
}
