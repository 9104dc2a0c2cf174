package auth

import (
	"context"
	"testing"
	"time"

	pkgauth "github.com/fieldline/fieldline-backend/pkg/auth"
	"github.com/fieldline/fieldline-backend/pkg/auth/session"
	"github.com/fieldline/fieldline-backend/pkg/config"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/security"
	"gorm.io/gorm"
)

type fakeAccounts struct {
	byEmailFn func(ctx context.Context, role enums.Role, email string) (*Account, error)
	byIDFn    func(ctx context.Context, role enums.Role, id int64) (*Account, error)
}

func (f *fakeAccounts) FindAccountByEmail(ctx context.Context, role enums.Role, email string) (*Account, error) {
	if f.byEmailFn != nil {
		return f.byEmailFn(ctx, role, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccounts) FindAccountByID(ctx context.Context, role enums.Role, id int64) (*Account, error) {
	if f.byIDFn != nil {
		return f.byIDFn(ctx, role, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSessions struct {
	generated string
	revoked   string
	rotatedID string
	rotateErr error
}

func (f *fakeSessions) Generate(ctx context.Context, accessID string) (string, error) {
	f.generated = accessID
	return "refresh-token", nil
}

func (f *fakeSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if f.rotateErr != nil {
		return "", "", f.rotateErr
	}
	f.rotatedID = oldAccessID
	return "rotated-access-id", "rotated-refresh-token", nil
}

func (f *fakeSessions) Revoke(ctx context.Context, accessID string) error {
	f.revoked = accessID
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "fieldline-test",
		ExpirationMinutes: 15,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newTestService(t *testing.T, accounts Repository, sessions *fakeSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Accounts:       accounts,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
}

func dispatcherAccount(t *testing.T, password string) *Account {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &Account{
		ID:           2,
		Name:         "Priya Shah",
		Email:        "priya@example.com",
		PasswordHash: hash,
		Role:         enums.RoleDispatcher,
	}
}

func TestLogin_IssuesTokensForValidCredentials(t *testing.T) {
	account := dispatcherAccount(t, "dispatch-pass")
	accounts := &fakeAccounts{
		byEmailFn: func(ctx context.Context, role enums.Role, email string) (*Account, error) {
			if role != enums.RoleDispatcher || email != "priya@example.com" {
				return nil, gorm.ErrRecordNotFound
			}
			return account, nil
		},
	}
	sessions := &fakeSessions{}
	svc := newTestService(t, accounts, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    " Priya@Example.com ",
		Password: "dispatch-pass",
		Role:     "dispatcher",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.UserID != 2 || resp.Role != enums.RoleDispatcher || resp.Name != "Priya Shah" {
		t.Fatalf("unexpected identity %+v", resp)
	}
	if resp.RefreshToken != "refresh-token" {
		t.Fatalf("expected stored refresh token, got %q", resp.RefreshToken)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 2 || claims.Role != enums.RoleDispatcher {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID != sessions.generated {
		t.Fatalf("expected jti %q to match session access id %q", claims.ID, sessions.generated)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	account := dispatcherAccount(t, "dispatch-pass")
	accounts := &fakeAccounts{
		byEmailFn: func(ctx context.Context, role enums.Role, email string) (*Account, error) {
			return account, nil
		},
	}
	svc := newTestService(t, accounts, &fakeSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "priya@example.com",
		Password: "wrong-pass",
		Role:     "dispatcher",
	})
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLogin_UnknownAccountAndRole(t *testing.T) {
	svc := newTestService(t, &fakeAccounts{}, &fakeSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
		Role:     "dispatcher",
	})
	expectCode(t, err, pkgerrors.CodeUnauthorized)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
		Role:     "superuser",
	})
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestRefresh_RotatesSessionAndReissuesToken(t *testing.T) {
	account := dispatcherAccount(t, "dispatch-pass")
	accounts := &fakeAccounts{
		byIDFn: func(ctx context.Context, role enums.Role, id int64) (*Account, error) {
			if role == enums.RoleDispatcher && id == account.ID {
				return account, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	sessions := &fakeSessions{}
	svc := newTestService(t, accounts, sessions)

	expired, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC().Add(-time.Hour), pkgauth.AccessTokenPayload{
		UserID: account.ID,
		Role:   enums.RoleDispatcher,
		JTI:    "old-access-id",
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), expired, "stored-refresh-token")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if sessions.rotatedID != "old-access-id" {
		t.Fatalf("expected rotation of old-access-id, got %q", sessions.rotatedID)
	}
	if resp.RefreshToken != "rotated-refresh-token" {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.ID != "rotated-access-id" || claims.UserID != account.ID {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestRefresh_RejectsBadInputs(t *testing.T) {
	account := dispatcherAccount(t, "dispatch-pass")
	accounts := &fakeAccounts{
		byIDFn: func(ctx context.Context, role enums.Role, id int64) (*Account, error) {
			return account, nil
		},
	}
	sessions := &fakeSessions{rotateErr: session.ErrInvalidRefreshToken}
	svc := newTestService(t, accounts, sessions)

	_, err := svc.Refresh(context.Background(), "", "refresh")
	expectCode(t, err, pkgerrors.CodeUnauthorized)

	_, err = svc.Refresh(context.Background(), "not-a-jwt", "refresh")
	expectCode(t, err, pkgerrors.CodeUnauthorized)

	valid, mintErr := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: account.ID,
		Role:   enums.RoleDispatcher,
		JTI:    "access-id",
	})
	if mintErr != nil {
		t.Fatalf("MintAccessToken: %v", mintErr)
	}
	_, err = svc.Refresh(context.Background(), valid, "stolen-refresh-token")
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLogout_RevokesSession(t *testing.T) {
	sessions := &fakeSessions{}
	svc := newTestService(t, &fakeAccounts{}, sessions)

	if err := svc.Logout(context.Background(), "access-123"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if sessions.revoked != "access-123" {
		t.Fatalf("expected access-123 revoked, got %q", sessions.revoked)
	}

	err := svc.Logout(context.Background(), " ")
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestVerify_ReturnsIdentity(t *testing.T) {
	accounts := &fakeAccounts{
		byIDFn: func(ctx context.Context, role enums.Role, id int64) (*Account, error) {
			if role == enums.RoleFieldAgent && id == 5 {
				return &Account{ID: 5, Name: "Dana Wells", Email: "dana@example.com", Role: role}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(t, accounts, &fakeSessions{})

	identity, err := svc.Verify(context.Background(), enums.RoleFieldAgent, 5)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.Name != "Dana Wells" || identity.Role != enums.RoleFieldAgent {
		t.Fatalf("unexpected identity %+v", identity)
	}

	_, err = svc.Verify(context.Background(), enums.RoleFieldAgent, 99)
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}
