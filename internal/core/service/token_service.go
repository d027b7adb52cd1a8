package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// DefaultTokenTTL matches the 1440-minute access token lifetime.
const DefaultTokenTTL = 24 * time.Hour

// TokenService issues and validates signed bearer tokens. It is stateless
// beyond the signing secret and the clock; expiry is the only revocation
// mechanism. Signing is symmetric HS256; the HMAC comparison inside the
// jwt library is constant-time.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token identifying subjectID, expiring after the
// configured TTL.
func (s *TokenService) Issue(subjectID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subjectID,
		"exp": s.now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate parses and verifies token, returning the subject id. Expired
// tokens yield domain.ErrTokenExpired; anything that fails to parse or
// verify yields domain.ErrTokenMalformed. Validation never consults a
// store.
func (s *TokenService) Validate(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenMalformed
	}
	if !parsed.Valid {
		return "", domain.ErrTokenMalformed
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", domain.ErrTokenMalformed
	}
	return subject, nil
}
