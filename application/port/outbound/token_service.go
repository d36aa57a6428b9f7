package outbound

import "errors"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// TokenClaims is the exact claim set carried by both token kinds.
type TokenClaims struct {
	EmpNumber int64  `json:"empNumber"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

// TokenService signs and verifies the two bearer-token kinds. Access and
// refresh tokens use distinct secrets and lifetimes; claims are schema-checked
// before signing and ErrInvalidClaims is returned when they do not conform.
type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	GenerateRefreshToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}
