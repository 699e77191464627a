package checkout

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidState is returned for state tokens that fail verification.
var ErrInvalidState = errors.New("invalid or expired checkout state")

// StateClaims tie a return URL to the checkout that produced it.
type StateClaims struct {
	ModuleID string `json:"moduleId"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 state tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a Signer using secret, or a random key when secret is empty.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate state key: %w", err)
		}
	}
	return &Signer{secret: key, ttl: ttl, now: time.Now}, nil
}

// Sign returns a token for moduleID together with its unique id.
func (s *Signer) Sign(moduleID string) (token, ref string, err error) {
	now := s.now()
	ref = uuid.NewString()
	claims := &StateClaims{
		ModuleID: moduleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ref,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign state: %w", err)
	}
	return token, ref, nil
}

// Verify checks the signature and expiry of token.
func (s *Signer) Verify(token string) (*StateClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &StateClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	claims, ok := parsed.Claims.(*StateClaims)
	if !ok || !parsed.Valid || claims.ModuleID == "" {
		return nil, ErrInvalidState
	}
	return claims, nil
}
