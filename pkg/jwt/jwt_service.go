package jwt

import (
	"context"
	"errors"
	"fmt"
	"foodgram/domain"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"time"
)

type (
	JWTService interface {
		GenerateTokenUser(userID uuid.UUID) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(ctx context.Context, token string) (uuid.UUID, error)
		RevokeToken(ctx context.Context, token string) error
	}

	// RevocationStore remembers logged out tokens by jti.
	RevocationStore interface {
		RevokeToken(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) error
		IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey   string
		issuer      string
		ttl         time.Duration
		revocations RevocationStore
	}
)

// ErrEmptySecret is returned by NewJWTService for an empty signing key.
var ErrEmptySecret = errors.New("jwt secret must not be empty")

func NewJWTService(secretKey string, ttl time.Duration, revocations RevocationStore) (JWTService, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}
	return &jwtService{
		secretKey:   secretKey,
		issuer:      "FOODGRAM",
		ttl:         ttl,
		revocations: revocations,
	}, nil
}

func (j *jwtService) GenerateTokenUser(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwtUserClaim{
		userID.String(),
		jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) claims(token string) (*jwtUserClaim, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return t_Token.Claims.(*jwtUserClaim), nil
}

func (j *jwtService) GetUserIDByToken(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := j.claims(token)
	if err != nil {
		return uuid.Nil, err
	}

	revoked, err := j.revocations.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return uuid.Nil, err
	}
	if revoked {
		return uuid.Nil, domain.ErrTokenRevoked
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, domain.ErrTokenInvalid
	}
	return id, nil
}

func (j *jwtService) RevokeToken(ctx context.Context, token string) error {
	claims, err := j.claims(token)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	return j.revocations.RevokeToken(ctx, claims.ID, userID, claims.ExpiresAt.Time)
}
