package mocks

import (
	"context"
	"sync"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/ports"
)

// MockDatasetService is a mock implementation of DatasetService interface
type MockDatasetService struct {
	ListFunc   func(ctx context.Context, userID string) ([]domain.Dataset, error)
	GetFunc    func(ctx context.Context, userID, datasetID string) (*domain.Dataset, error)
	CreateFunc func(ctx context.Context, userID string, input ports.CreateDatasetInput) (*domain.Dataset, error)
	DeleteFunc func(ctx context.Context, userID, datasetID string) error
	RowsFunc   func(ctx context.Context, userID, datasetID string) ([]domain.RawRecord, error)

	RowsCalls int
}

func (m *MockDatasetService) List(ctx context.Context, userID string) ([]domain.Dataset, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []domain.Dataset{}, nil
}

func (m *MockDatasetService) Get(ctx context.Context, userID, datasetID string) (*domain.Dataset, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, datasetID)
	}
	return nil, nil
}

func (m *MockDatasetService) Create(ctx context.Context, userID string, input ports.CreateDatasetInput) (*domain.Dataset, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, input)
	}
	return &domain.Dataset{UserID: userID, Name: input.Name}, nil
}

func (m *MockDatasetService) Delete(ctx context.Context, userID, datasetID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, datasetID)
	}
	return nil
}

func (m *MockDatasetService) Rows(ctx context.Context, userID, datasetID string) ([]domain.RawRecord, error) {
	m.RowsCalls++
	if m.RowsFunc != nil {
		return m.RowsFunc(ctx, userID, datasetID)
	}
	return nil, nil
}

// MockTextGenerator records prompts and returns canned responses.
type MockTextGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string, opts ports.GenerateOptions) (string, error)
	Response     string

	Prompts []string
	Options []ports.GenerateOptions
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string, opts ports.GenerateOptions) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.Options = append(m.Options, opts)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, opts)
	}
	return m.Response, nil
}

// MockNotifier captures pushed payloads per user.
type MockNotifier struct {
	mu   sync.Mutex
	Sent map[string][]interface{}
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{Sent: make(map[string][]interface{})}
}

func (m *MockNotifier) SendToUser(userID string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent[userID] = append(m.Sent[userID], payload)
}

// MockEmailService is a mock implementation of EmailService interface
type MockEmailService struct {
	SendHTMLFunc   func(ctx context.Context, to, subject, htmlBody string) error
	SendReportFunc func(ctx context.Context, to string, report *domain.Report) error

	// Track sent emails for assertions
	SentEmails []SentEmail
}

// SentEmail represents a sent email for testing
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

func (m *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	m.SentEmails = append(m.SentEmails, SentEmail{To: to, Subject: subject, Body: htmlBody})
	if m.SendHTMLFunc != nil {
		return m.SendHTMLFunc(ctx, to, subject, htmlBody)
	}
	return nil
}

func (m *MockEmailService) SendReport(ctx context.Context, to string, report *domain.Report) error {
	m.SentEmails = append(m.SentEmails, SentEmail{To: to, Subject: "report: " + report.Focus, Body: report.HTML})
	if m.SendReportFunc != nil {
		return m.SendReportFunc(ctx, to, report)
	}
	return nil
}

// MockAuthService is a mock implementation of AuthService interface
type MockAuthService struct {
	SignupFunc        func(ctx context.Context, name, email, password string) (*domain.User, error)
	LoginFunc         func(ctx context.Context, email, password string) (string, *domain.User, error)
	ValidateTokenFunc func(ctx context.Context, token string) (*domain.User, error)
	LogoutFunc        func(ctx context.Context, token string) error
}

func (m *MockAuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, name, email, password)
	}
	return &domain.User{ID: "user-1", Name: name, Email: email}, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "token", &domain.User{ID: "user-1", Email: email}, nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return &domain.User{ID: "user-1", Email: "user@example.com"}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

// MockAnalyticsService is a mock implementation of AnalyticsService interface
type MockAnalyticsService struct {
	DashboardFunc       func(ctx context.Context, userID, datasetID string) (*domain.Dashboard, error)
	ImportDashboardFunc func(ctx context.Context, userID, datasetID string) (*domain.ImportDashboard, error)
	SimulateFunc        func(ctx context.Context, userID, datasetID string, params domain.SimulationParams) (*domain.SimulationResult, error)
	SustainabilityFunc  func(ctx context.Context, userID, datasetID string) (*domain.SustainabilityMetrics, error)
	InvalidateFunc      func(ctx context.Context, userID, datasetID string) error
}

func (m *MockAnalyticsService) Dashboard(ctx context.Context, userID, datasetID string) (*domain.Dashboard, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx, userID, datasetID)
	}
	return &domain.Dashboard{}, nil
}

func (m *MockAnalyticsService) ImportDashboard(ctx context.Context, userID, datasetID string) (*domain.ImportDashboard, error) {
	if m.ImportDashboardFunc != nil {
		return m.ImportDashboardFunc(ctx, userID, datasetID)
	}
	return &domain.ImportDashboard{}, nil
}

func (m *MockAnalyticsService) Simulate(ctx context.Context, userID, datasetID string, params domain.SimulationParams) (*domain.SimulationResult, error) {
	if m.SimulateFunc != nil {
		return m.SimulateFunc(ctx, userID, datasetID, params)
	}
	return &domain.SimulationResult{}, nil
}

func (m *MockAnalyticsService) Sustainability(ctx context.Context, userID, datasetID string) (*domain.SustainabilityMetrics, error) {
	if m.SustainabilityFunc != nil {
		return m.SustainabilityFunc(ctx, userID, datasetID)
	}
	return &domain.SustainabilityMetrics{}, nil
}

func (m *MockAnalyticsService) Invalidate(ctx context.Context, userID, datasetID string) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, userID, datasetID)
	}
	return nil
}

// MockAdvisorService is a mock implementation of AdvisorService interface
type MockAdvisorService struct {
	GenerateReportFunc     func(ctx context.Context, rows []domain.RawRecord, focus string) (*domain.Report, error)
	ClassifyHSFunc         func(ctx context.Context, description string) (*domain.HSClassification, error)
	SustainabilityTipsFunc func(ctx context.Context, metrics domain.SustainabilityMetrics) ([]domain.SustainabilityTip, error)
	OpportunitiesFunc      func(ctx context.Context, products []string) ([]domain.ProductOpportunities, error)
	ChartFunc              func(ctx context.Context, query string, rows []domain.RawRecord) (*domain.ChartPlan, *domain.ChartConfig, error)
}

func (m *MockAdvisorService) GenerateReport(ctx context.Context, rows []domain.RawRecord, focus string) (*domain.Report, error) {
	if m.GenerateReportFunc != nil {
		return m.GenerateReportFunc(ctx, rows, focus)
	}
	return &domain.Report{Focus: focus, Markdown: "# Report", HTML: "<h1>Report</h1>"}, nil
}

func (m *MockAdvisorService) ClassifyHS(ctx context.Context, description string) (*domain.HSClassification, error) {
	if m.ClassifyHSFunc != nil {
		return m.ClassifyHSFunc(ctx, description)
	}
	return &domain.HSClassification{}, nil
}

func (m *MockAdvisorService) SustainabilityTips(ctx context.Context, metrics domain.SustainabilityMetrics) ([]domain.SustainabilityTip, error) {
	if m.SustainabilityTipsFunc != nil {
		return m.SustainabilityTipsFunc(ctx, metrics)
	}
	return []domain.SustainabilityTip{}, nil
}

func (m *MockAdvisorService) Opportunities(ctx context.Context, products []string) ([]domain.ProductOpportunities, error) {
	if m.OpportunitiesFunc != nil {
		return m.OpportunitiesFunc(ctx, products)
	}
	return []domain.ProductOpportunities{}, nil
}

func (m *MockAdvisorService) Chart(ctx context.Context, query string, rows []domain.RawRecord) (*domain.ChartPlan, *domain.ChartConfig, error) {
	if m.ChartFunc != nil {
		return m.ChartFunc(ctx, query, rows)
	}
	return &domain.ChartPlan{}, &domain.ChartConfig{}, nil
}
