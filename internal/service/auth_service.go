package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/models"
	"github.com/scintilla-cusat/recruit-api/internal/notifier"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

type adminSessionRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	AddSessionToken(ctx context.Context, token *models.DeviceToken) error
	RemoveSessionToken(ctx context.Context, adminID, token string) error
	FindBySessionToken(ctx context.Context, token string) (*models.Admin, error)
}

// AuthServiceConfig carries session signing parameters.
type AuthServiceConfig struct {
	Secret string
	TTL    time.Duration
}

// AuthService authenticates admins and manages their device-token sessions.
// A session is valid only while both its signed envelope verifies and its raw
// token still sits in the admin's allow-list.
type AuthService struct {
	repo      adminSessionRepository
	validator *validator.Validate
	logger    *zap.Logger
	notifier  *notifier.Notifier
	cfg       AuthServiceConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(repo adminSessionRepository, validate *validator.Validate, logger *zap.Logger, n *notifier.Notifier, cfg AuthServiceConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * 24 * time.Hour
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, notifier: n, cfg: cfg}
}

// Login verifies credentials, registers a fresh device token and returns the
// signed session envelope to set as the cookie value. No token is persisted
// when the credentials are wrong.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Admin, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "email and password are required")
	}

	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.emitLoginFailure(req)
			return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.emitLoginFailure(req)
		return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	rawToken, err := generateSessionToken()
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate session token")
	}

	if err := s.repo.AddSessionToken(ctx, &models.DeviceToken{AdminID: admin.ID, Token: rawToken}); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register session")
	}

	envelope, err := s.signEnvelope(rawToken)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session")
	}

	s.notifier.Emit(notifier.EventLoginSuccess,
		notifier.EmbedField{Name: "Email", Value: admin.Email, Inline: true},
		notifier.EmbedField{Name: "IP", Value: orUnknown(req.IP), Inline: true},
		notifier.EmbedField{Name: "User Agent", Value: notifier.Truncate(orUnknown(req.UserAgent))},
	)

	return admin, envelope, nil
}

// Verify resolves the admin behind a session envelope. An empty envelope is
// unauthorized; anything malformed, expired or revoked is an invalid token.
func (s *AuthService) Verify(ctx context.Context, envelope string) (*models.Admin, error) {
	if envelope == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}

	rawToken, err := s.openEnvelope(envelope)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidToken, "")
	}

	admin, err := s.repo.FindBySessionToken(ctx, rawToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidToken, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve session")
	}
	return admin, nil
}

// Logout revokes the session behind the envelope. Only the presented device
// token is removed; the admin's other sessions stay valid. Logout always
// succeeds from the caller's point of view.
func (s *AuthService) Logout(ctx context.Context, envelope string) error {
	if envelope == "" {
		return nil
	}

	rawToken, err := s.openEnvelope(envelope)
	if err != nil {
		return nil
	}

	admin, err := s.repo.FindBySessionToken(ctx, rawToken)
	if err != nil {
		return nil
	}

	if err := s.repo.RemoveSessionToken(ctx, admin.ID, rawToken); err != nil {
		s.logger.Warn("failed to remove session token", zap.Error(err))
		return nil
	}

	s.notifier.Emit(notifier.EventLogout,
		notifier.EmbedField{Name: "Email", Value: admin.Email, Inline: true},
	)
	return nil
}

func (s *AuthService) signEnvelope(rawToken string) (string, error) {
	now := time.Now()
	claims := models.SessionClaims{
		Token: rawToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *AuthService) openEnvelope(envelope string) (string, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(envelope, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid || claims.Token == "" {
		return "", appErrors.Clone(appErrors.ErrInvalidToken, "")
	}
	return claims.Token, nil
}

func (s *AuthService) emitLoginFailure(req models.LoginRequest) {
	s.notifier.Emit(notifier.EventLoginFailure,
		notifier.EmbedField{Name: "Email", Value: req.Email, Inline: true},
		notifier.EmbedField{Name: "IP", Value: orUnknown(req.IP), Inline: true},
		notifier.EmbedField{Name: "User Agent", Value: notifier.Truncate(orUnknown(req.UserAgent))},
	)
}

func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
