package preview

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sofrahq/sofra/internal/common/config"
)

var (
	ErrInvalidToken     = errors.New("invalid preview token")
	ErrExpiredToken     = errors.New("preview token has expired")
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrEmptySecretKey   = errors.New("secret key cannot be empty")
	ErrWeakSecretKey    = errors.New("secret key must be at least 32 characters")
	ErrInvalidDuration  = errors.New("duration must be positive")
)

// Claims ties a preview token to a single restaurant. A valid token lets
// the public menu render while the restaurant is still hidden, nothing more.
type Claims struct {
	RestaurantID uint   `json:"restaurant_id"`
	Slug         string `json:"slug"`
	jwt.RegisteredClaims
}

// Service issues and validates signed menu preview tokens.
type Service struct {
	config config.PreviewConfig
}

// NewService creates a new preview token service
func NewService(cfg config.PreviewConfig) (*Service, error) {
	if cfg.SecretKey == "" {
		return nil, ErrEmptySecretKey
	}
	if len(cfg.SecretKey) < 32 {
		return nil, ErrWeakSecretKey
	}
	if cfg.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Service{
		config: cfg,
	}, nil
}

// GenerateToken mints a preview token for the restaurant and returns it
// together with its expiry.
func (s *Service) GenerateToken(restaurantID uint, slug string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.config.Duration)
	claims := &Claims{
		RestaurantID: restaurantID,
		Slug:         slug,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken validates a preview token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidAlgorithm
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
