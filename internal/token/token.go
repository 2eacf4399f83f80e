package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/models"
)

const (
	defaultTTL           = 24 * time.Hour
	defaultSigningMethod = "HS256"
)

// Manager configuration with sensible defaults
type Config struct {
	// Secret key used for the token MAC
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Token lifetime
	// If not set than default is used
	TTL time.Duration
}

// Manager issues and validates signed, time bound tokens. It keeps no
// state: validity is proven by the signature and expiry alone, so a
// token cannot be revoked before it expires.
type Manager struct {
	key string
	alg jwt.SigningMethod
	ttl time.Duration
}

func New(cfg Config) (*Manager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}
	if cfg.TTL == 0 {
		cfg.TTL = defaultTTL
	}

	alg := jwt.GetSigningMethod(cfg.Alg)
	if alg == nil {
		return nil, fmt.Errorf("unknown signing method %q", cfg.Alg)
	}

	return &Manager{
		key: cfg.SecretKey,
		alg: alg,
		ttl: cfg.TTL,
	}, nil
}

// Generate signs a fresh token binding the subject for the configured TTL
func (m *Manager) Generate(subject string) (models.IssuedToken, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(
		m.alg,
		jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	)

	signed, err := token.SignedString([]byte(m.key))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing token. Err: %w", err)
	}

	return models.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Validate parses the token, verifies the MAC with the shared key and
// checks expiry. The failure kind is preserved in the returned error so
// callers can log it, but every kind means "unauthenticated".
func (m *Manager) Validate(tokenString string) (models.Claims, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			return []byte(m.key), nil
		},
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.Claims{}, fmt.Errorf("error while validating token. Err: %w", apperrors.ErrTokenExpired)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return models.Claims{}, fmt.Errorf("error while validating token. Err: %w", apperrors.ErrTokenInvalidSignature)
	default:
		return models.Claims{}, fmt.Errorf("error while validating token. Err: %w", apperrors.ErrTokenMalformed)
	}

	res := models.Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}
	if claims.IssuedAt != nil {
		res.IssuedAt = claims.IssuedAt.Unix()
	}

	return res, nil
}
