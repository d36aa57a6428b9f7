package jwt

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskana/taskana/application/port/outbound"
)

type tokenKind string

const (
	kindAccess  tokenKind = "access"
	kindRefresh tokenKind = "refresh"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// JWTService signs and verifies both token kinds with HS256. Access and
// refresh tokens use distinct secrets so one kind can never pass as the other.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewJWTService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*JWTService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("jwt: both token secrets are required")
	}
	if accessTTL <= 0 {
		accessTTL = 5 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &JWTService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

// SetTimeFunc replaces the clock behind the iat and exp claims. Tests use it
// to mint tokens at chosen instants instead of sleeping across second
// boundaries.
func (s *JWTService) SetTimeFunc(now func() time.Time) {
	s.now = now
}

func (s *JWTService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	return s.sign(kindAccess, claims)
}

func (s *JWTService) GenerateRefreshToken(claims outbound.TokenClaims) (string, error) {
	return s.sign(kindRefresh, claims)
}

func (s *JWTService) ValidateAccessToken(token string) (*outbound.TokenClaims, error) {
	return s.parse(kindAccess, token)
}

func (s *JWTService) ValidateRefreshToken(token string) (*outbound.TokenClaims, error) {
	return s.parse(kindRefresh, token)
}

// validateClaims guards the invariant that only well-formed identities are
// ever signed; this is not user-input validation.
func validateClaims(claims outbound.TokenClaims) error {
	if claims.EmpNumber <= 0 {
		return fmt.Errorf("%w: employee number must be positive", outbound.ErrInvalidClaims)
	}
	if !emailRegex.MatchString(claims.Email) {
		return fmt.Errorf("%w: malformed email", outbound.ErrInvalidClaims)
	}
	return nil
}

func (s *JWTService) sign(kind tokenKind, claims outbound.TokenClaims) (string, error) {
	if err := validateClaims(claims); err != nil {
		return "", err
	}

	now := s.now()
	tokenClaims := jwt.MapClaims{
		"empNumber": claims.EmpNumber,
		"email":     claims.Email,
		"isAdmin":   claims.IsAdmin,
		"iat":       now.Unix(),
		"exp":       now.Add(s.ttl(kind)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	signed, err := token.SignedString(s.secret(kind))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

func (s *JWTService) parse(kind tokenKind, tokenString string) (*outbound.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret(kind), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, outbound.ErrTokenExpired
		}
		return nil, outbound.ErrInvalidToken
	}
	if !token.Valid {
		return nil, outbound.ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, outbound.ErrInvalidToken
	}

	empNumber, ok := mapClaims["empNumber"].(float64)
	if !ok {
		return nil, outbound.ErrInvalidToken
	}
	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, outbound.ErrInvalidToken
	}
	isAdmin, _ := mapClaims["isAdmin"].(bool)

	return &outbound.TokenClaims{
		EmpNumber: int64(empNumber),
		Email:     email,
		IsAdmin:   isAdmin,
	}, nil
}

func (s *JWTService) secret(kind tokenKind) []byte {
	if kind == kindRefresh {
		return s.refreshSecret
	}
	return s.accessSecret
}

func (s *JWTService) ttl(kind tokenKind) time.Duration {
	if kind == kindRefresh {
		return s.refreshTTL
	}
	return s.accessTTL
}
