package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lzradio/lzradio-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrPairingDisabled   = errors.New("no access code hash configured")
	ErrTokenInvalid      = errors.New("invalid token")
)

// Claims extends JWT standard claims with the paired device's name.
type Claims struct {
	jwt.RegisteredClaims
	DeviceName string `json:"device_name"`
}

// AuthService handles device pairing and JWT validation. There is a
// single station identity; a device pairs once with the station access
// code and holds a long-lived token afterwards.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashAccessCode hashes an access code with the configured bcrypt cost.
// Used by cmd/hash-access-code to produce the ACCESS_CODE_HASH value.
func (s *AuthService) HashAccessCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cfg.BcryptCost)
	return string(hash), err
}

// PairDevice checks the access code against the configured hash and
// issues a device token.
func (s *AuthService) PairDevice(code, deviceName string) (string, error) {
	if s.cfg.AccessCodeHash == "" {
		return "", ErrPairingDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AccessCodeHash), []byte(code)); err != nil {
		return "", ErrInvalidAccessCode
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   deviceName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		DeviceName: deviceName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a device token.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
