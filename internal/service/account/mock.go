package account

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/coudpouss/coudpouss-api/internal/phone"
)

// MockService implements Service in memory for handler tests.
type MockService struct {
	mu      sync.Mutex
	byUID   map[string]*Account
	byEmail map[string]string
	byPhone map[string]string
	seq     int
	parser  *phone.Parser
	region  string
}

// NewMockService returns an empty mock with the default phone settings.
func NewMockService() *MockService {
	return &MockService{
		byUID:   make(map[string]*Account),
		byEmail: make(map[string]string),
		byPhone: make(map[string]string),
		parser:  phone.DefaultParser(),
		region:  phone.DefaultRegion,
	}
}

func (m *MockService) SignUp(_ context.Context, params SignUpParams) (*Account, error) {
	acct, err := newAccount(params, m.region)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[acct.Email]; ok {
		return nil, ErrEmailTaken
	}
	e164 := acct.e164()
	if _, ok := m.byPhone[e164]; ok && e164 != "" {
		return nil, ErrPhoneTaken
	}
	m.seq++
	acct.UID = fmt.Sprintf("mock-uid-%d", m.seq)
	m.byUID[acct.UID] = acct
	m.byEmail[acct.Email] = acct.UID
	if e164 != "" {
		m.byPhone[e164] = acct.UID
	}
	out := *acct
	return &out, nil
}

func (m *MockService) PasswordResetLink(_ context.Context, email string) (string, error) {
	addr, err := resetEmail(email)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[addr]; !ok {
		return "", ErrUserNotFound
	}
	return "https://coudpouss.test/reset?email=" + url.QueryEscape(addr), nil
}

func (m *MockService) ResolveLogin(_ context.Context, emailOrMobile string) (*LoginIdentity, error) {
	in, err := m.parser.BuildInputData(emailOrMobile)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var uid string
	var ok bool
	if in.IsEmail() {
		uid, ok = m.byEmail[in.Email]
	} else {
		uid, ok = m.byPhone[in.E164()]
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return &LoginIdentity{UID: uid, InputData: in}, nil
}

var _ Service = (*MockService)(nil)
