// Package auth issues and validates the bearer tokens that guard the
// operational endpoints (cache management, prewarming).
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// OpsTokenExpiry is how long operator tokens are valid. They are meant
	// for short maintenance sessions, not long-lived automation.
	OpsTokenExpiry = 12 * time.Hour

	// RoleOperator may manage the route cache and trigger prewarming.
	RoleOperator = "operator"
)

// Predefined token errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
	ErrWrongRole    = errors.New("token role not permitted")
)

// Claims are the claims carried by operator tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Role authorizes specific operational surfaces.
	Role string `json:"role"`
}

// ServiceConfig holds configuration for the token service.
type ServiceConfig struct {
	// SigningKey is the secret key used to sign tokens.
	SigningKey string

	// Issuer is the issuer claim (e.g., "https://api.kyubii.jp").
	Issuer string

	// Audience is the audience claim (e.g., "kyubii-api").
	Audience string
}

// Service signs and validates operator tokens with HS256.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
}

// NewService creates a token service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
	}
}

// GenerateOpsToken issues an operator token for the given subject.
func (s *Service) GenerateOpsToken(subject string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(OpsTokenExpiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			ID:        newTokenID(),
		},
		Role: RoleOperator,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing ops token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateOpsToken validates a token and checks it carries the operator role.
func (s *Service) ValidateOpsToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleOperator {
		return nil, ErrWrongRole
	}
	return claims, nil
}

func newTokenID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
