package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aptitude-quiz-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RevocationStore remembers signed-out tokens until they would have expired.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Options configures token validation and issuance.
type Options struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// Provider validates HS256 session tokens shared with the identity provider and
// publishes session lifecycle events.
type Provider struct {
	secret      []byte
	issuer      string
	ttl         time.Duration
	revocations RevocationStore
	now         func() time.Time
	newID       func() string
	events      hub
}

func NewProvider(opts Options, revocations RevocationStore) (*Provider, error) {
	return NewProviderWithClock(opts, revocations, time.Now)
}

// NewProviderWithClock allows deterministic token times in tests.
func NewProviderWithClock(opts Options, revocations RevocationStore, now func() time.Time) (*Provider, error) {
	if opts.Secret == "" {
		return nil, errors.New("auth secret not configured")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}
	return &Provider{
		secret:      []byte(opts.Secret),
		issuer:      opts.Issuer,
		ttl:         opts.TokenTTL,
		revocations: revocations,
		now:         now,
		newID:       uuid.NewString,
	}, nil
}

// OnSessionChange registers fn for sign-in, refresh and sign-out events.
// The returned function unregisters it; calling it more than once is harmless.
func (p *Provider) OnSessionChange(fn func(SessionEvent)) func() {
	return p.events.subscribe(fn)
}

// Issue mints a token for userID.
func (p *Provider) Issue(_ context.Context, userID string) (string, domain.Session, error) {
	token, session, err := p.sign(userID)
	if err != nil {
		return "", domain.Session{}, err
	}
	p.events.publish(SessionEvent{Kind: SignedIn, Session: session})
	return token, session, nil
}

// Authenticate validates a raw bearer token and returns its session.
func (p *Provider) Authenticate(ctx context.Context, raw string) (domain.Session, error) {
	if raw == "" {
		return domain.Session{}, domain.ErrUnauthenticated
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return domain.Session{}, fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}

	revoked, err := p.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return domain.Session{}, domain.DataAccess("check revocation", err)
	}
	if revoked {
		return domain.Session{}, fmt.Errorf("%w: session ended", domain.ErrUnauthenticated)
	}
	return sessionFromClaims(claims), nil
}

// Refresh replaces session's token with a new one for the same user.
func (p *Provider) Refresh(ctx context.Context, session domain.Session) (string, domain.Session, error) {
	token, next, err := p.sign(session.UserID)
	if err != nil {
		return "", domain.Session{}, err
	}
	if err := p.revocations.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return "", domain.Session{}, domain.DataAccess("revoke token", err)
	}
	p.events.publish(SessionEvent{Kind: Refreshed, Session: next, PreviousTokenID: session.TokenID})
	return token, next, nil
}

// SignOut revokes the session's token.
func (p *Provider) SignOut(ctx context.Context, session domain.Session) error {
	if err := p.revocations.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return domain.DataAccess("revoke token", err)
	}
	p.events.publish(SessionEvent{Kind: SignedOut, Session: session})
	return nil
}

func (p *Provider) sign(userID string) (string, domain.Session, error) {
	if userID == "" {
		return "", domain.Session{}, errors.New("user id is required")
	}
	now := p.now()
	claims := jwt.RegisteredClaims{
		ID:        p.newID(),
		Subject:   userID,
		Issuer:    p.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("sign token: %w", err)
	}
	return token, sessionFromClaims(claims), nil
}

func sessionFromClaims(claims jwt.RegisteredClaims) domain.Session {
	session := domain.Session{
		UserID:  claims.Subject,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session
}
