package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider          = (*MockAuthProvider)(nil)
	_ ports.SessionStore          = (*MemorySessionStore)(nil)
	_ ports.ProfileLookup         = (*StaticProfileLookup)(nil)
	_ ports.PasswordAuthenticator = (*MockPasswordAuthenticator)(nil)
	_ ports.ObjectStore           = (*MemoryObjectStore)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce
// values.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultUser: domainauth.Identity{
			UserID: "mock-user-1",
			Email:  "mock.user@example.com",
			Name:   "Mock User",
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}

	state := fmt.Sprintf("%s-%d", m.StatePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", m.NoncePrefix, m.callCount)

	return authURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	user := m.DefaultUser
	if user.UserID == "" {
		user = domainauth.Identity{
			UserID: "mock-user-1",
			Email:  "mock.user@example.com",
			Name:   "Mock User",
		}
	}
	return user, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, errors.New("session not found")
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StaticProfileLookup serves identities from a fixed map keyed by user ID.
// Unknown users get ports.ErrProfileNotFound, like the real repository.
type StaticProfileLookup struct {
	Identities map[string]domainauth.Identity
	// Err, when set, is returned for every lookup to simulate store outages.
	Err error
}

func (s *StaticProfileLookup) Lookup(_ context.Context, userID string) (domainauth.Identity, error) {
	if s.Err != nil {
		return domainauth.Identity{}, s.Err
	}
	identity, ok := s.Identities[userID]
	if !ok {
		return domainauth.Identity{}, ports.ErrProfileNotFound
	}
	return identity, nil
}

// MockPasswordAuthenticator verifies credentials against a fixed table of
// email -> password, returning the associated identity.
type MockPasswordAuthenticator struct {
	Passwords  map[string]string
	Identities map[string]domainauth.Identity
	// Err, when set, is returned for every attempt.
	Err error
}

func (m *MockPasswordAuthenticator) Authenticate(_ context.Context, email, password string) (domainauth.Identity, error) {
	if m.Err != nil {
		return domainauth.Identity{}, m.Err
	}
	want, ok := m.Passwords[email]
	if !ok || want != password {
		return domainauth.Identity{}, errors.New("invalid email or password")
	}
	return m.Identities[email], nil
}

// MemoryObjectStore captures uploads in memory for tests.
type MemoryObjectStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	BaseURL string
}

// NewMemoryObjectStore creates an empty in-memory object store.
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{Objects: make(map[string][]byte), BaseURL: "https://cdn.test"}
}

func (m *MemoryObjectStore) Put(_ context.Context, in ports.PutObjectInput) (string, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return "", fmt.Errorf("read object body: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[in.Key] = body
	return m.BaseURL + "/" + in.Key, nil
}

func (m *MemoryObjectStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	return nil
}
