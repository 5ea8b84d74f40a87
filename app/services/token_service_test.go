package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-32-chars"

// createTestTokenService creates a token service for testing with symmetric key
func createTestTokenService(t *testing.T, accessTTL time.Duration) TokenService {
	t.Helper()
	service, err := NewTokenService(accessTTL, 7*24*time.Hour, "test-issuer", "test-audience", false, "", "", testSecret)
	require.NoError(t, err)
	return service
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		useRSAKeys  bool
		privateKey  string
		publicKey   string
		secretKey   string
		expectError bool
	}{
		{name: "symmetric key", secretKey: testSecret},
		{name: "missing secret key", expectError: true},
		{name: "rsa without keys", useRSAKeys: true, expectError: true},
		{name: "rsa with garbage keys", useRSAKeys: true, privateKey: "nope", publicKey: "nope", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewTokenService(time.Hour, 24*time.Hour, "iss", "aud", tt.useRSAKeys, tt.privateKey, tt.publicKey, tt.secretKey)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, service)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, service)
		})
	}
}

func TestGenerateAndValidateAdminTokens(t *testing.T) {
	service := createTestTokenService(t, 15*time.Minute)

	accessToken, refreshToken, err := service.GenerateAdminTokens(42)
	require.NoError(t, err)
	assert.NotEqual(t, accessToken, refreshToken)

	tests := []struct {
		name      string
		token     string
		tokenType string
	}{
		{name: "access token", token: accessToken, tokenType: TokenTypeAccess},
		{name: "refresh token", token: refreshToken, tokenType: TokenTypeRefresh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateAdminToken(tt.token)
			require.NoError(t, err)
			assert.Equal(t, uint(42), claims.AdminID)
			assert.Equal(t, tt.tokenType, claims.TokenType)
			assert.NotEmpty(t, claims.TokenID)
			assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
		})
	}
}

func TestValidateAdminTokenRejects(t *testing.T) {
	service := createTestTokenService(t, 15*time.Minute)
	other, err := NewTokenService(15*time.Minute, time.Hour, "test-issuer", "test-audience", false, "", "", "another-secret-key-for-jwt-signing-32")
	require.NoError(t, err)
	foreign, _, err := other.GenerateAdminTokens(1)
	require.NoError(t, err)

	wrongAudience, err := NewTokenService(15*time.Minute, time.Hour, "test-issuer", "someone-else", false, "", "", testSecret)
	require.NoError(t, err)
	misdirected, _, err := wrongAudience.GenerateAdminTokens(1)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "", want: ErrTokenInvalid},
		{name: "garbage", token: "invalid.token.format", want: ErrTokenInvalid},
		{name: "foreign signature", token: foreign, want: ErrTokenInvalid},
		{name: "wrong audience", token: misdirected, want: ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateAdminToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, claims)
		})
	}
}

func TestExpiredAdminToken(t *testing.T) {
	service := createTestTokenService(t, -time.Minute)

	accessToken, _, err := service.GenerateAdminTokens(7)
	require.NoError(t, err)

	_, err = service.ValidateAdminToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshAdminToken(t *testing.T) {
	service := createTestTokenService(t, 15*time.Minute)

	accessToken, refreshToken, err := service.GenerateAdminTokens(9)
	require.NoError(t, err)

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, _, err := service.RefreshAdminToken(accessToken)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("refresh token rotates", func(t *testing.T) {
		newAccess, newRefresh, err := service.RefreshAdminToken(refreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEqual(t, refreshToken, newRefresh)

		_, _, err = service.RefreshAdminToken(refreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})
}

func TestRevokeToken(t *testing.T) {
	service := createTestTokenService(t, 15*time.Minute)

	accessToken, _, err := service.GenerateAdminTokens(3)
	require.NoError(t, err)
	assert.False(t, service.IsTokenRevoked(accessToken))

	require.NoError(t, service.RevokeToken(accessToken))
	assert.True(t, service.IsTokenRevoked(accessToken))

	_, err = service.ValidateAdminToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	assert.False(t, service.IsTokenRevoked("not-a-token"))
}

func TestConcurrentTokenGeneration(t *testing.T) {
	service := createTestTokenService(t, 15*time.Minute)

	const workers = 20
	tokens := make([]string, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			access, _, err := service.GenerateAdminTokens(uint(i + 1))
			assert.NoError(t, err)
			tokens[i] = access
		}()
	}
	wg.Wait()

	seen := make(map[string]struct{}, workers)
	for _, token := range tokens {
		_, dup := seen[token]
		assert.False(t, dup)
		seen[token] = struct{}{}
	}
}
