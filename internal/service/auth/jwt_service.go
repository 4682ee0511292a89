package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/ports"
)

// Claims represents the custom JWT claims used by the application.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// JWTService handles generation, validation, and revocation of JWT tokens.
type JWTService struct {
	secret         []byte
	issuer         string
	accessDuration time.Duration
	cache          ports.Cache
	log            *zap.Logger
}

// NewJWTService creates a new JWTService instance.
func NewJWTService(secret, issuer string, accessDuration time.Duration, cache ports.Cache, log *zap.Logger) *JWTService {
	if accessDuration <= 0 {
		accessDuration = 24 * time.Hour
	}
	log.Info("JWT service initialized",
		zap.Duration("access_duration", accessDuration),
	)

	return &JWTService{
		secret:         []byte(secret),
		issuer:         issuer,
		accessDuration: accessDuration,
		cache:          cache,
		log:            log,
	}
}

// GenerateAccessToken creates a signed HS256 token carrying sub, email and a unique jti.
func (s *JWTService) GenerateAccessToken(user *domain.User) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
		Email: user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		s.log.Error("failed to sign access token",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	s.log.Debug("access token generated",
		zap.String("user_id", user.ID),
		zap.String("jti", jti),
	)

	return signedToken, nil
}

// ValidateToken parses and validates a JWT token string, returning the claims
// if the token is valid and has not been revoked.
func (s *JWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		s.log.Debug("token validation failed", zap.Error(err))
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.ID != "" && s.IsTokenRevoked(ctx, claims.ID) {
		return nil, fmt.Errorf("token revoked")
	}

	return claims, nil
}

// RevokeToken blacklists a token ID until it would have expired anyway.
func (s *JWTService) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	err := s.cache.Set(ctx, revokedKey(tokenID), "revoked", ttl)
	if err != nil {
		s.log.Error("failed to revoke token",
			zap.String("token_id", tokenID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.log.Info("token revoked",
		zap.String("token_id", tokenID),
	)

	return nil
}

// IsTokenRevoked checks the cache for a revocation marker.
func (s *JWTService) IsTokenRevoked(ctx context.Context, tokenID string) bool {
	if s.cache == nil {
		return false
	}
	val, err := s.cache.Get(ctx, revokedKey(tokenID))
	if err != nil {
		// If the key does not exist or there is an error, treat as not revoked.
		return false
	}

	return val == "revoked"
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}
