package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	SaveFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

// MockDatasetRepository keeps datasets in memory unless a Func override is set.
type MockDatasetRepository struct {
	CreateFunc      func(ctx context.Context, ds *domain.Dataset) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Dataset, error)
	ListByUserFunc  func(ctx context.Context, userID string) ([]domain.Dataset, error)
	CountByUserFunc func(ctx context.Context, userID string) (int64, error)
	DeleteFunc      func(ctx context.Context, id string) error

	mu       sync.Mutex
	datasets map[string]*domain.Dataset
}

func NewMockDatasetRepository() *MockDatasetRepository {
	return &MockDatasetRepository{datasets: make(map[string]*domain.Dataset)}
}

func (m *MockDatasetRepository) Create(ctx context.Context, ds *domain.Dataset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ds)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *ds
	m.datasets[ds.ID] = &cp
	return nil
}

func (m *MockDatasetRepository) FindByID(ctx context.Context, id string) (*domain.Dataset, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.datasets[id]
	if !ok {
		return nil, nil
	}
	cp := *ds
	cp.RecordCount = len(cp.Records)
	return &cp, nil
}

func (m *MockDatasetRepository) ListByUser(ctx context.Context, userID string) ([]domain.Dataset, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Dataset
	for _, ds := range m.datasets {
		if ds.UserID != userID {
			continue
		}
		cp := *ds
		cp.RecordCount = len(cp.Records)
		cp.Records = nil
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockDatasetRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if m.CountByUserFunc != nil {
		return m.CountByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, ds := range m.datasets {
		if ds.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *MockDatasetRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.datasets, id)
	return nil
}
