package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the claim set embedded in a token: just enough to know who is
// calling without a database round trip.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// VerifyStatus distinguishes why a token failed verification. Only
// TokenValid grants access; the split exists for logging.
type VerifyStatus int

const (
	TokenValid VerifyStatus = iota
	TokenExpired
	TokenMalformed
)

func (s VerifyStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	default:
		return "malformed"
	}
}

// VerifyResult is the outcome of TokenService.Verify. Identity is non-nil
// only when Status is TokenValid.
type VerifyResult struct {
	Status   VerifyStatus
	Identity *Identity
}

// TokenService issues and verifies HS256-signed bearer tokens. Tokens are
// not persisted anywhere; signature plus expiry fully determine validity.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token carrying identity, valid for the service's TTL from
// now. There is no refresh; callers log in again when it expires.
func (s *TokenService) Issue(identity Identity) (string, error) {
	now := s.now()
	claims := &Claims{
		Username: identity.Username,
		Email:    identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and decodes the embedded identity.
// Failures are reported as a status, never as an error: an expired or
// mangled token means an unauthenticated request, not a failed one.
func (s *TokenService) Verify(tokenString string) VerifyResult {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return VerifyResult{Status: TokenExpired}
		}
		return VerifyResult{Status: TokenMalformed}
	}
	if !token.Valid {
		return VerifyResult{Status: TokenMalformed}
	}
	return VerifyResult{
		Status: TokenValid,
		Identity: &Identity{
			ID:       claims.Subject,
			Username: claims.Username,
			Email:    claims.Email,
		},
	}
}
