package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"aptitude-quiz-service/internal/domain"
	"aptitude-quiz-service/internal/infra/memory"
	"github.com/golang-jwt/jwt/v5"
)

func newTestProvider(t *testing.T, now *time.Time) *Provider {
	t.Helper()
	p, err := NewProviderWithClock(Options{Secret: "test-secret", Issuer: "quiz-test", TokenTTL: time.Hour}, memory.NewRevocationStore(), func() time.Time { return *now })
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func TestIssueAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	p := newTestProvider(t, &now)

	token, issued, err := p.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	session, err := p.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if session.UserID != "user-1" || session.TokenID != issued.TokenID {
		t.Fatalf("unexpected session %+v", session)
	}
	if !session.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", session.ExpiresAt)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	p := newTestProvider(t, &now)
	token, _, _ := p.Issue(ctx, "user-1")

	other, _ := NewProviderWithClock(Options{Secret: "other-secret", Issuer: "quiz-test"}, memory.NewRevocationStore(), func() time.Time { return now })
	forged, _, _ := other.Issue(ctx, "user-1")

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "t1",
		Issuer:    "quiz-test",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: forged},
		{name: "no subject", token: noSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Authenticate(ctx, tt.token); !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected unauthenticated, got %v", err)
			}
		})
	}

	now = now.Add(2 * time.Hour)
	if _, err := p.Authenticate(ctx, token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestSignOutRevokesAndNotifies(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	p := newTestProvider(t, &now)

	var events []SessionEvent
	unsubscribe := p.OnSessionChange(func(ev SessionEvent) { events = append(events, ev) })

	token, _, _ := p.Issue(ctx, "user-1")
	session, err := p.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if err := p.SignOut(ctx, session); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, err := p.Authenticate(ctx, token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}

	if len(events) != 2 || events[0].Kind != SignedIn || events[1].Kind != SignedOut {
		t.Fatalf("unexpected events %+v", events)
	}
	if events[1].Session.TokenID != session.TokenID {
		t.Fatalf("expected sign-out event for the revoked token")
	}

	unsubscribe()
	unsubscribe()
	if p.events.len() != 0 {
		t.Fatalf("expected subscriber removed")
	}
	_, _, _ = p.Issue(ctx, "user-2")
	if len(events) != 2 {
		t.Fatalf("expected no events after unsubscribe, got %d", len(events))
	}
}

func TestRefreshReplacesToken(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	p := newTestProvider(t, &now)

	var got SessionEvent
	defer p.OnSessionChange(func(ev SessionEvent) { got = ev })()

	token, _, _ := p.Issue(ctx, "user-1")
	session, _ := p.Authenticate(ctx, token)

	fresh, next, err := p.Refresh(ctx, session)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.UserID != "user-1" || next.TokenID == session.TokenID {
		t.Fatalf("unexpected refreshed session %+v", next)
	}
	if got.Kind != Refreshed || got.PreviousTokenID != session.TokenID {
		t.Fatalf("unexpected refresh event %+v", got)
	}
	if _, err := p.Authenticate(ctx, token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected old token rejected, got %v", err)
	}
	if _, err := p.Authenticate(ctx, fresh); err != nil {
		t.Fatalf("expected fresh token accepted: %v", err)
	}
}

func TestCallbacksRunInRegistrationOrder(t *testing.T) {
	now := time.Now()
	p := newTestProvider(t, &now)

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		p.OnSessionChange(func(SessionEvent) { order = append(order, i) })
	}
	_, _, _ = p.Issue(context.Background(), "user-1")
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestNewProviderRequiresSecret(t *testing.T) {
	if _, err := NewProvider(Options{}, memory.NewRevocationStore()); err == nil {
		t.Fatalf("expected error without secret")
	}
}

func TestSessionContext(t *testing.T) {
	ctx := WithSession(context.Background(), domain.Session{UserID: "u1"})
	session, ok := SessionFromContext(ctx)
	if !ok || session.UserID != "u1" {
		t.Fatalf("expected session from context, got %+v", session)
	}
	if _, ok := SessionFromContext(context.Background()); ok {
		t.Fatalf("expected no session on bare context")
	}
}
