package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pema-project/pema/internal/apperrors"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m, err := New(Config{SecretKey: "secret"})

		require.NoError(t, err, "manager should be created without errors")
		require.Equal(t, "secret", m.key, "secret key should be set")
		require.Equal(t, defaultTTL, m.ttl, "default TTL should be set")
		require.Equal(t, defaultSigningMethod, m.alg.Alg(), "default signing method should be set")
	})

	t.Run("empty secret rejected", func(t *testing.T) {
		_, err := New(Config{})

		require.Error(t, err)
	})

	t.Run("unknown alg rejected", func(t *testing.T) {
		_, err := New(Config{SecretKey: "secret", Alg: "XX999"})

		require.Error(t, err)
	})
}

func TestGenerate(t *testing.T) {
	m, err := New(Config{SecretKey: "test-secret-key"})
	require.NoError(t, err)

	t.Run("token has correct claims", func(t *testing.T) {
		subject := uuid.NewString()

		issued, err := m.Generate(subject)
		require.NoError(t, err)
		require.NotEmpty(t, issued.Value, "token should not be empty")
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), issued.ExpiresAt, time.Second)

		// Parse with the library directly to inspect the raw claims
		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(issued.Value, claims, func(t *jwt.Token) (any, error) {
			return []byte("test-secret-key"), nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid, "token should be valid")

		assert.Equal(t, subject, claims.Subject, "subject should match")
		assert.NotEmpty(t, claims.ID, "token has to has jti")
		assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second, "issued at should be close to now")
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Second, "expires at should be 24 hours from now")
	})

	t.Run("generate different tokens", func(t *testing.T) {
		first, err := m.Generate("u1")
		require.NoError(t, err)

		second, err := m.Generate("u1")
		require.NoError(t, err)

		assert.NotEqual(t, first.Value, second.Value, "tokens should differ by jti even for one subject")
	})
}

func TestValidate(t *testing.T) {
	m, err := New(Config{SecretKey: "test-secret-key"})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		issued, err := m.Generate("u1")
		require.NoError(t, err)

		claims, err := m.Validate(issued.Value)

		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Subject)
		assert.Equal(t, issued.ExpiresAt.Unix(), claims.ExpiresAt)
		assert.Greater(t, claims.ExpiresAt, claims.IssuedAt, "expiry must be after issue")
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := New(Config{SecretKey: "test-secret-key", TTL: -time.Hour})
		require.NoError(t, err)

		issued, err := expired.Generate("u1")
		require.NoError(t, err)

		_, err = m.Validate(issued.Value)

		require.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("tampered signature", func(t *testing.T) {
		issued, err := m.Generate("u1")
		require.NoError(t, err)

		parts := strings.Split(issued.Value, ".")
		require.Len(t, parts, 3)

		// Flip one byte of the signature segment
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		tampered := strings.Join([]string{parts[0], parts[1], string(sig)}, ".")

		_, err = m.Validate(tampered)

		require.ErrorIs(t, err, apperrors.ErrTokenInvalidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		issued, err := m.Generate("u1")
		require.NoError(t, err)

		parts := strings.Split(issued.Value, ".")
		require.Len(t, parts, 3)

		payload := []byte(parts[1])
		if payload[0] == 'A' {
			payload[0] = 'B'
		} else {
			payload[0] = 'A'
		}
		tampered := strings.Join([]string{parts[0], string(payload), parts[2]}, ".")

		_, err = m.Validate(tampered)

		require.Error(t, err, "any payload modification must be rejected")
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := New(Config{SecretKey: "other-secret-key"})
		require.NoError(t, err)

		issued, err := other.Generate("u1")
		require.NoError(t, err)

		_, err = m.Validate(issued.Value)

		require.ErrorIs(t, err, apperrors.ErrTokenInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, tokenString := range []string{"", "garbage", "a.b", "a.b.c.d"} {
			_, err := m.Validate(tokenString)

			require.ErrorIs(t, err, apperrors.ErrTokenMalformed, "token %q", tokenString)
		}
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		value, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Validate(value)

		require.Error(t, err, "alg=none must never validate")
	})
}
