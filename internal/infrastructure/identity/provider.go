package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
	"github.com/kusinapp/kusina-api/pkg/utils"
)

// Session is an authenticated session with its token pair.
type Session struct {
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// Provider authenticates users against the account store and publishes
// session transitions on an event channel consumed by the sync controller.
// It tracks at most one active session.
type Provider struct {
	db           *gorm.DB
	jwtManager   *utils.JWTManager
	loginTimeout time.Duration
	logger       *zap.Logger

	mu            sync.Mutex
	currentUser   uuid.UUID
	authenticated bool

	events chan repository.SessionEvent
}

// NewProvider creates a new identity provider
func NewProvider(db *gorm.DB, jwtManager *utils.JWTManager, loginTimeout time.Duration, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loginTimeout <= 0 {
		loginTimeout = 15 * time.Second
	}
	return &Provider{
		db:           db,
		jwtManager:   jwtManager,
		loginTimeout: loginTimeout,
		logger:       logger,
		events:       make(chan repository.SessionEvent, 16),
	}
}

// IsAuthenticated reports whether a session is active
func (p *Provider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.authenticated
}

// CurrentUserID returns the active session's user id
func (p *Provider) CurrentUserID() (uuid.UUID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentUser, p.authenticated
}

// Events returns the session event stream
func (p *Provider) Events() <-chan repository.SessionEvent {
	return p.events
}

// Register creates a new account
func (p *Provider) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing entity.User
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	user := entity.User{Name: name, Email: email}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := p.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login races the credential check against a fixed timer and accepts
// whichever settles first; a late authentication result is discarded. On
// success the signed-in event is published for the sync controller.
func (p *Provider) Login(ctx context.Context, email, password string) (*Session, error) {
	type outcome struct {
		session *Session
		err     error
	}
	done := make(chan outcome, 1)

	go func() {
		session, err := p.authenticate(ctx, email, password)
		done <- outcome{session: session, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		p.beginSession(out.session.UserID)
		return out.session, nil
	case <-time.After(p.loginTimeout):
		p.logger.Warn("login timed out", zap.Duration("timeout", p.loginTimeout))
		return nil, apperror.ErrLoginTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Logout ends the active session and publishes signed-out
func (p *Provider) Logout() {
	p.mu.Lock()
	userID := p.currentUser
	wasAuthenticated := p.authenticated
	p.currentUser = uuid.Nil
	p.authenticated = false
	p.mu.Unlock()

	if wasAuthenticated {
		p.publish(repository.SessionEvent{
			Type:   repository.SessionSignedOut,
			UserID: userID,
			At:     time.Now(),
		})
	}
}

// RefreshSession exchanges a refresh token for a fresh token pair. This is a
// liveness signal only: it publishes token-refreshed, never signed-in.
func (p *Provider) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	userID, err := p.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	var user entity.User
	if err := p.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, apperror.ErrInvalidToken
	}

	session, err := p.issueTokens(&user)
	if err != nil {
		return nil, err
	}

	p.publish(repository.SessionEvent{
		Type:   repository.SessionTokenRefreshed,
		UserID: userID,
		At:     time.Now(),
	})
	return session, nil
}

func (p *Provider) authenticate(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user entity.User
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, apperror.ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := p.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error; err != nil {
		p.logger.Warn("failed to record login time", zap.Error(err))
	}

	return p.issueTokens(&user)
}

func (p *Provider) issueTokens(user *entity.User) (*Session, error) {
	accessToken, err := p.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := p.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (p *Provider) beginSession(userID uuid.UUID) {
	p.mu.Lock()
	p.currentUser = userID
	p.authenticated = true
	p.mu.Unlock()

	p.publish(repository.SessionEvent{
		Type:   repository.SessionSignedIn,
		UserID: userID,
		At:     time.Now(),
	})
}

// publish never blocks a caller; a full channel drops the event with a log
// line instead of stalling the login path.
func (p *Provider) publish(ev repository.SessionEvent) {
	select {
	case p.events <- ev:
	default:
		p.logger.Warn("session event dropped", zap.String("type", ev.Type.String()))
	}
}
