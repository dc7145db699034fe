package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/eskalate/jobboard/internal/model"
)

const (
	// SessionTokenExpiry is how long a login session token stays valid.
	SessionTokenExpiry = 24 * time.Hour
	// VerifyTokenExpiry is how long an email verification token stays valid.
	VerifyTokenExpiry = time.Hour
)

// SessionClaims carries the authenticated identity on session tokens.
type SessionClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// VerifyClaims carries the subject of an email verification token.
type VerifyClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTService signs and validates session and verification tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// GenerateSessionToken signs a token asserting the user's identity and role.
func (s *JWTService) GenerateSessionToken(userID uuid.UUID, role model.Role) (string, error) {
	claims := &SessionClaims{
		UserID: userID.String(),
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseSessionToken validates a session token and returns its claims.
func (s *JWTService) ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, s.keyFunc)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GenerateVerifyToken signs a short-lived email verification token.
func (s *JWTService) GenerateVerifyToken(userID uuid.UUID) (string, error) {
	claims := &VerifyClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(VerifyTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// TokenStatus classifies the outcome of checking a verification token.
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenExpired
	TokenInvalid
)

// VerifyTokenResult makes the expired-token branch an explicit case instead
// of an error to untangle. UserID is set for Valid and Expired results.
type VerifyTokenResult struct {
	Status TokenStatus
	UserID uuid.UUID
}

// CheckVerifyToken validates a verification token. A token that is expired
// but otherwise well-signed still yields its subject so a fresh token can be
// issued.
func (s *JWTService) CheckVerifyToken(tokenString string) VerifyTokenResult {
	claims := &VerifyClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc)
	switch {
	case err == nil:
		id, perr := uuid.Parse(claims.UserID)
		if perr != nil {
			return VerifyTokenResult{Status: TokenInvalid}
		}
		return VerifyTokenResult{Status: TokenValid, UserID: id}
	case errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid):
		expired := &VerifyClaims{}
		if _, _, derr := jwt.NewParser().ParseUnverified(tokenString, expired); derr != nil {
			return VerifyTokenResult{Status: TokenInvalid}
		}
		id, perr := uuid.Parse(expired.UserID)
		if perr != nil {
			return VerifyTokenResult{Status: TokenInvalid}
		}
		return VerifyTokenResult{Status: TokenExpired, UserID: id}
	default:
		return VerifyTokenResult{Status: TokenInvalid}
	}
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.secret, nil
}
