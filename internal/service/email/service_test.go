package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

// MockProvider is a mock email provider for testing
type MockProvider struct {
	SentEmails []MockEmail
	ShouldFail bool
	FailError  error
}

type MockEmail struct {
	To      string
	Subject string
	Body    string
	IsHTML  bool
}

func (m *MockProvider) Send(ctx context.Context, to, subject, body string, isHTML bool) error {
	if m.ShouldFail {
		if m.FailError != nil {
			return m.FailError
		}
		return errors.New("mock send failed")
	}

	m.SentEmails = append(m.SentEmails, MockEmail{
		To:      to,
		Subject: subject,
		Body:    body,
		IsHTML:  isHTML,
	})
	return nil
}

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestService(provider *MockProvider) *Service {
	s := newService(&Config{
		Provider:  "mock",
		FromEmail: "test@tradeinsight.local",
		FromName:  "TradeInsight Test",
	}, provider, newTestLogger())
	s.now = func() time.Time { return time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC) }
	return s
}

func TestService_SendHTML_Success(t *testing.T) {
	// Arrange
	mockProvider := &MockProvider{}
	service := newTestService(mockProvider)

	// Act
	err := service.SendHTML(context.Background(), "user@example.com", "HTML Subject", "<h1>Hello</h1>")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(mockProvider.SentEmails) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(mockProvider.SentEmails))
	}
	email := mockProvider.SentEmails[0]
	if !email.IsHTML {
		t.Error("expected HTML email, got plain text")
	}
	if email.Body != "<h1>Hello</h1>" {
		t.Errorf("unexpected body '%s'", email.Body)
	}
}

func TestService_SendHTML_Failure(t *testing.T) {
	// Arrange
	mockProvider := &MockProvider{
		ShouldFail: true,
		FailError:  errors.New("sendgrid unavailable"),
	}
	service := newTestService(mockProvider)

	// Act
	err := service.SendHTML(context.Background(), "user@example.com", "Subject", "<p>Body</p>")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "sendgrid unavailable") {
		t.Errorf("expected error to contain 'sendgrid unavailable', got '%s'", err.Error())
	}
}

func TestService_SendReport_Success(t *testing.T) {
	// Arrange
	mockProvider := &MockProvider{}
	service := newTestService(mockProvider)
	report := &domain.Report{
		Focus:    "Port congestion",
		Markdown: "## Executive Summary",
		HTML:     "<h2>Executive Summary</h2>",
	}

	// Act
	err := service.SendReport(context.Background(), "analyst@example.com", report)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(mockProvider.SentEmails) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(mockProvider.SentEmails))
	}
	email := mockProvider.SentEmails[0]
	if email.Subject != "Trade Intelligence Report: Port congestion" {
		t.Errorf("unexpected subject '%s'", email.Subject)
	}
	if !strings.Contains(email.Body, "<h2>Executive Summary</h2>") {
		t.Error("expected report HTML to be embedded unescaped")
	}
	if !strings.Contains(email.Body, "2024-06-01 10:30") {
		t.Error("expected generation time in footer")
	}
	if !strings.Contains(email.Body, "TradeInsight Test") {
		t.Error("expected app name in footer")
	}
}

func TestService_SendReport_Nil(t *testing.T) {
	service := newTestService(&MockProvider{})

	if err := service.SendReport(context.Background(), "a@b.com", nil); err == nil {
		t.Fatal("expected error for nil report")
	}
}

func TestNewService_SendGridProvider(t *testing.T) {
	// Arrange
	config := &Config{
		Provider:       "sendgrid",
		SendGridAPIKey: "test-api-key",
		FromEmail:      "test@example.com",
		FromName:       "Test",
	}

	// Act
	service, err := NewService(config, newTestLogger())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := service.provider.(*SendGridProvider); !ok {
		t.Error("expected SendGridProvider")
	}
}

func TestNewService_UnknownProvider(t *testing.T) {
	// Arrange
	config := &Config{
		Provider: "unknown",
	}

	// Act
	_, err := NewService(config, newTestLogger())

	// Assert
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "unknown email provider") {
		t.Errorf("expected 'unknown email provider' error, got '%s'", err.Error())
	}
}

func TestNewService_SendGridMissingAPIKey(t *testing.T) {
	// Arrange
	config := &Config{
		Provider: "sendgrid",
	}

	// Act
	_, err := NewService(config, newTestLogger())

	// Assert
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewService_DefaultsToLogProvider(t *testing.T) {
	// Act
	service, err := NewService(nil, newTestLogger())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := service.provider.(*LogProvider); !ok {
		t.Error("expected LogProvider")
	}
	if err := service.SendHTML(context.Background(), "a@b.com", "s", "<p>x</p>"); err != nil {
		t.Errorf("log provider should not fail, got %v", err)
	}
}
