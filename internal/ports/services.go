package ports

import (
	"context"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}

// CreateDatasetInput is a dataset upload before mapping.
type CreateDatasetInput struct {
	Name        string
	Description string
	Records     []domain.RawRecord
}

type DatasetService interface {
	List(ctx context.Context, userID string) ([]domain.Dataset, error)
	Get(ctx context.Context, userID, datasetID string) (*domain.Dataset, error)
	Create(ctx context.Context, userID string, input CreateDatasetInput) (*domain.Dataset, error)
	Delete(ctx context.Context, userID, datasetID string) error
	// Rows returns the raw rows of a dataset. The id "default" selects the embedded sample.
	Rows(ctx context.Context, userID, datasetID string) ([]domain.RawRecord, error)
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, userID, datasetID string) (*domain.Dashboard, error)
	ImportDashboard(ctx context.Context, userID, datasetID string) (*domain.ImportDashboard, error)
	Simulate(ctx context.Context, userID, datasetID string, params domain.SimulationParams) (*domain.SimulationResult, error)
	Sustainability(ctx context.Context, userID, datasetID string) (*domain.SustainabilityMetrics, error)
	Invalidate(ctx context.Context, userID, datasetID string) error
}

type AdvisorService interface {
	GenerateReport(ctx context.Context, rows []domain.RawRecord, focus string) (*domain.Report, error)
	ClassifyHS(ctx context.Context, description string) (*domain.HSClassification, error)
	SustainabilityTips(ctx context.Context, metrics domain.SustainabilityMetrics) ([]domain.SustainabilityTip, error)
	Opportunities(ctx context.Context, products []string) ([]domain.ProductOpportunities, error)
	Chart(ctx context.Context, query string, rows []domain.RawRecord) (*domain.ChartPlan, *domain.ChartConfig, error)
}

// EmailService handles outgoing mail.
type EmailService interface {
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
	SendReport(ctx context.Context, to string, report *domain.Report) error
}
