package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/scintilla-cusat/recruit-api/internal/models"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
)

type fakeAdminSessionRepo struct {
	admins map[string]*models.Admin
	tokens map[string]string
}

func newFakeAdminSessionRepo() *fakeAdminSessionRepo {
	return &fakeAdminSessionRepo{
		admins: map[string]*models.Admin{},
		tokens: map[string]string{},
	}
}

func (f *fakeAdminSessionRepo) addAdmin(id, email, password string) *models.Admin {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	admin := &models.Admin{ID: id, Email: email, PasswordHash: string(hash)}
	f.admins[email] = admin
	return admin
}

func (f *fakeAdminSessionRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if admin, ok := f.admins[email]; ok {
		return admin, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminSessionRepo) AddSessionToken(ctx context.Context, token *models.DeviceToken) error {
	f.tokens[token.Token] = token.AdminID
	return nil
}

func (f *fakeAdminSessionRepo) RemoveSessionToken(ctx context.Context, adminID, token string) error {
	if f.tokens[token] == adminID {
		delete(f.tokens, token)
	}
	return nil
}

func (f *fakeAdminSessionRepo) FindBySessionToken(ctx context.Context, token string) (*models.Admin, error) {
	adminID, ok := f.tokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	for _, admin := range f.admins {
		if admin.ID == adminID {
			return admin, nil
		}
	}
	return nil, sql.ErrNoRows
}

func newAuthService(repo *fakeAdminSessionRepo, ttl time.Duration) *AuthService {
	return NewAuthService(repo, nil, nil, nil, AuthServiceConfig{Secret: "test_secret", TTL: ttl})
}

func TestAuthServiceLogin(t *testing.T) {
	t.Run("issues a verifiable session", func(t *testing.T) {
		repo := newFakeAdminSessionRepo()
		repo.addAdmin("admin-1", "admin@example.com", "hunter2")
		svc := newAuthService(repo, time.Hour)

		admin, envelope, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "hunter2"})
		require.NoError(t, err)
		assert.Equal(t, "admin-1", admin.ID)
		require.NotEmpty(t, envelope)
		require.Len(t, repo.tokens, 1)

		resolved, err := svc.Verify(context.Background(), envelope)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", resolved.ID)
	})

	t.Run("wrong password persists no token", func(t *testing.T) {
		repo := newFakeAdminSessionRepo()
		repo.addAdmin("admin-1", "admin@example.com", "hunter2")
		svc := newAuthService(repo, time.Hour)

		_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
		var appErr *appErrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
		assert.Empty(t, repo.tokens)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := newFakeAdminSessionRepo()
		svc := newAuthService(repo, time.Hour)

		_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "hunter2"})
		var appErr *appErrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	})

	t.Run("missing credentials fail validation", func(t *testing.T) {
		repo := newFakeAdminSessionRepo()
		svc := newAuthService(repo, time.Hour)

		_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com"})
		var appErr *appErrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	})
}

func TestAuthServiceVerify(t *testing.T) {
	t.Run("empty envelope is unauthorized", func(t *testing.T) {
		svc := newAuthService(newFakeAdminSessionRepo(), time.Hour)

		_, err := svc.Verify(context.Background(), "")
		var appErr *appErrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
	})

	t.Run("garbage envelope is an invalid token", func(t *testing.T) {
		svc := newAuthService(newFakeAdminSessionRepo(), time.Hour)

		_, err := svc.Verify(context.Background(), "not-a-jwt")
		var appErr *appErrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrInvalidToken.Code, appErr.Code)
	})

	t.Run("expired envelope is rejected", func(t *testing.T) {
		repo := newFakeAdminSessionRepo()
		repo.addAdmin("admin-1", "admin@example.com", "hunter2")
		svc := newAuthService(repo, time.Millisecond)

		_, envelope, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "hunter2"})
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		_, err = svc.Verify(context.Background(), envelope)
		var appErr *appErrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrInvalidToken.Code, appErr.Code)
	})

	t.Run("revoked token is rejected even with a valid envelope", func(t *testing.T) {
		repo := newFakeAdminSessionRepo()
		repo.addAdmin("admin-1", "admin@example.com", "hunter2")
		svc := newAuthService(repo, time.Hour)

		_, envelope, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "hunter2"})
		require.NoError(t, err)

		for token := range repo.tokens {
			delete(repo.tokens, token)
		}
		_, err = svc.Verify(context.Background(), envelope)
		var appErr *appErrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrInvalidToken.Code, appErr.Code)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	t.Run("removes only the presented session", func(t *testing.T) {
		repo := newFakeAdminSessionRepo()
		repo.addAdmin("admin-1", "admin@example.com", "hunter2")
		svc := newAuthService(repo, time.Hour)

		_, first, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "hunter2"})
		require.NoError(t, err)
		_, second, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "hunter2"})
		require.NoError(t, err)
		require.Len(t, repo.tokens, 2)

		require.NoError(t, svc.Logout(context.Background(), first))
		assert.Len(t, repo.tokens, 1)

		_, err = svc.Verify(context.Background(), first)
		assert.Error(t, err)
		_, err = svc.Verify(context.Background(), second)
		assert.NoError(t, err)
	})

	t.Run("logout with a stale envelope still succeeds", func(t *testing.T) {
		svc := newAuthService(newFakeAdminSessionRepo(), time.Hour)
		assert.NoError(t, svc.Logout(context.Background(), "not-a-jwt"))
		assert.NoError(t, svc.Logout(context.Background(), ""))
	})
}
