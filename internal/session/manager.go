package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/internal/repository/specification"
	"notes-repository-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNoSession          = errors.New("no active session")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

type EventKind string

const (
	EventSignedIn  EventKind = "SIGNED_IN"
	EventSignedOut EventKind = "SIGNED_OUT"
)

type Event struct {
	Kind       EventKind
	Identity   Identity
	SessionID  string
	OccurredAt time.Time
}

type Listener func(Event)

type Session struct {
	Token     string    `json:"token"`
	Identity  Identity  `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Manager struct {
	uowFactory unitofwork.RepositoryFactory
	registry   Registry
	secret     []byte
	ttl        time.Duration
	logger     logger.ILogger
	now        func() time.Time

	mu        sync.Mutex
	nextID    uint64
	listeners []listenerEntry
}

type listenerEntry struct {
	id uint64
	fn Listener
}

func NewManager(uowFactory unitofwork.RepositoryFactory, registry Registry, secret string, ttl time.Duration, log logger.ILogger) *Manager {
	return &Manager{
		uowFactory: uowFactory,
		registry:   registry,
		secret:     []byte(secret),
		ttl:        ttl,
		logger:     log,
		now:        time.Now,
	}
}

func (m *Manager) SignUp(ctx context.Context, email, password, fullName string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	uow := m.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ProfileRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return Identity{}, fmt.Errorf("lookup profile: %w", err)
	}
	if existing != nil {
		return Identity{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}

	profile := &entity.Profile{
		Id:           uuid.New(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
		CreatedAt:    m.now(),
	}
	if err := uow.ProfileRepository().Create(ctx, profile); err != nil {
		return Identity{}, fmt.Errorf("create profile: %w", err)
	}

	m.logger.Info("SESSION", "Profile created", map[string]interface{}{"user_id": profile.Id.String()})
	return identityOf(profile), nil
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if profile == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sid := uuid.NewString()
	expiresAt := m.now().Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": profile.Id.String(),
		"sid":     sid,
		"exp":     expiresAt.Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := m.registry.Hold(ctx, sid, profile.Id, m.ttl); err != nil {
		return nil, fmt.Errorf("hold session: %w", err)
	}

	identity := identityOf(profile)
	m.notify(Event{Kind: EventSignedIn, Identity: identity, SessionID: sid, OccurredAt: m.now()})

	return &Session{Token: signed, Identity: identity, ExpiresAt: expiresAt}, nil
}

// SignOut releases the session behind token. Unknown or expired tokens are
// ignored.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}

	held, err := m.registry.Holds(ctx, claims.sid)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if !held {
		return nil
	}
	if err := m.registry.Release(ctx, claims.sid); err != nil {
		return fmt.Errorf("release session: %w", err)
	}

	identity := Identity{UserID: claims.userID}
	uow := m.uowFactory.NewUnitOfWork(ctx)
	if profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: claims.userID}); err == nil && profile != nil {
		identity = identityOf(profile)
	}

	m.notify(Event{Kind: EventSignedOut, Identity: identity, SessionID: claims.sid, OccurredAt: m.now()})
	return nil
}

// Resolve reports the identity behind token. Every failure is ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (Identity, error) {
	claims, err := m.parse(token)
	if err != nil {
		return Identity{}, ErrNoSession
	}

	held, err := m.registry.Holds(ctx, claims.sid)
	if err != nil {
		m.logger.Warn("SESSION", "Session registry unavailable", map[string]interface{}{"error": err.Error()})
		return Identity{}, ErrNoSession
	}
	if !held {
		return Identity{}, ErrNoSession
	}

	uow := m.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: claims.userID})
	if err != nil || profile == nil {
		return Identity{}, ErrNoSession
	}
	return identityOf(profile), nil
}

// Subscribe registers fn for sign-in/sign-out events. Listeners run
// synchronously in registration order. The returned func unsubscribes and is
// safe to call more than once.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listenerEntry{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, l := range m.listeners {
				if l.id == id {
					m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (m *Manager) notify(evt Event) {
	m.mu.Lock()
	snapshot := make([]listenerEntry, len(m.listeners))
	copy(snapshot, m.listeners)
	m.mu.Unlock()

	for _, l := range snapshot {
		l.fn(evt)
	}
}

type tokenClaims struct {
	userID uuid.UUID
	sid    string
}

func (m *Manager) parse(tokenStr string) (tokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return tokenClaims{}, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, ErrNoSession
	}

	rawUserID, _ := claims["user_id"].(string)
	sid, _ := claims["sid"].(string)
	userID, err := uuid.Parse(rawUserID)
	if err != nil || sid == "" {
		return tokenClaims{}, ErrNoSession
	}
	return tokenClaims{userID: userID, sid: sid}, nil
}

func identityOf(p *entity.Profile) Identity {
	return Identity{UserID: p.Id, Email: p.Email, FullName: p.FullName}
}
