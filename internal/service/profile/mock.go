package profile

import (
	"context"
	"sync"
	"time"

	"github.com/coudpouss/coudpouss-api/internal/phone"
)

// MockProfileService implements Service in memory for handler tests.
type MockProfileService struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	norm     normalizer
	now      func() time.Time
}

// NewMockProfileService returns an empty mock using the default phone parser.
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{
		profiles: make(map[string]Profile),
		norm:     newNormalizer(phone.DefaultParser()),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *MockProfileService) Upsert(_ context.Context, userID string, params UpsertParams) (*Profile, error) {
	f, err := m.norm.upsert(params)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	p, exists := m.profiles[userID]
	if !exists {
		p = Profile{ID: userID, Role: roleConsumer, CreatedAt: now}
	}
	f.apply(&p)
	p.UpdatedAt = now
	m.profiles[userID] = p
	return &p, nil
}

func (m *MockProfileService) Get(_ context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MockProfileService) Update(_ context.Context, userID string, params UpdateParams) (*Profile, error) {
	f, err := m.norm.update(params)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	f.apply(&p)
	p.UpdatedAt = m.now()
	m.profiles[userID] = p
	return &p, nil
}

func (m *MockProfileService) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[userID]; !ok {
		return ErrNotFound
	}
	delete(m.profiles, userID)
	return nil
}

var _ Service = (*MockProfileService)(nil)
