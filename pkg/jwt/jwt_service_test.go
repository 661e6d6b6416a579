package jwt_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"foodgram/domain"
	"foodgram/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]uuid.UUID
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{revoked: map[string]uuid.UUID{}}
}

func (m *memoryRevocations) RevokeToken(_ context.Context, jti string, userID uuid.UUID, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = userID
	return nil
}

func (m *memoryRevocations) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

func newService(t *testing.T, secret string, ttl time.Duration) jwt.JWTService {
	t.Helper()
	service, err := jwt.NewJWTService(secret, ttl, newMemoryRevocations())
	require.NoError(t, err)
	return service
}

func TestNewJWTServiceRejectsEmptySecret(t *testing.T) {
	service, err := jwt.NewJWTService("", time.Hour, newMemoryRevocations())
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
	assert.Nil(t, service)
}

func TestGetUserIDByToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	service := newService(t, "secret", time.Hour)

	token, err := service.GenerateTokenUser(userID)
	require.NoError(t, err)

	expired, err := newService(t, "secret", -time.Minute).GenerateTokenUser(userID)
	require.NoError(t, err)

	foreign, err := newService(t, "other-secret", time.Hour).GenerateTokenUser(userID)
	require.NoError(t, err)

	emptyKey, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(""))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    uuid.UUID
		wantErr error
	}{
		{"valid", token, userID, nil},
		{"expired", expired, uuid.Nil, domain.ErrTokenExpired},
		{"wrong signature", foreign, uuid.Nil, domain.ErrTokenInvalid},
		{"signed with empty key", emptyKey, uuid.Nil, domain.ErrTokenInvalid},
		{"garbage", "not-a-token", uuid.Nil, domain.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.GetUserIDByToken(ctx, tt.token)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.ErrorIs(t, err, domain.ErrAuthFailure)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	service := newService(t, "secret", time.Hour)

	first, err := service.GenerateTokenUser(userID)
	require.NoError(t, err)
	second, err := service.GenerateTokenUser(userID)
	require.NoError(t, err)

	require.NoError(t, service.RevokeToken(ctx, first))

	_, err = service.GetUserIDByToken(ctx, first)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	// Each token has its own jti; revoking one leaves the others valid.
	got, err := service.GetUserIDByToken(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
