package auth

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/goccy/go-json"

	"github.com/curatorapp/curator-server/internal/id"
)

const (
	tokenIssuer   = "curator-server"
	tokenAudience = "curator-client"
)

// TokenService issues and verifies PASETO v4.local access tokens.
// Registration and login live outside this server; it only needs to
// recognise the bearer.
type TokenService struct {
	key      paseto.V4SymmetricKey
	duration time.Duration
	now      func() time.Time
}

// NewTokenService creates a token service from a raw 32-byte key.
func NewTokenService(key []byte, duration time.Duration) (*TokenService, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d bytes, got %d", keyLength, len(key))
	}
	k, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("create PASETO symmetric key: %w", err)
	}
	if duration <= 0 {
		return nil, errors.New("token duration must be positive")
	}
	return &TokenService{key: k, duration: duration, now: time.Now}, nil
}

// Issue mints an access token for userID.
func (s *TokenService) Issue(userID, displayName string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := s.now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(userID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.duration))

	jti, err := id.Generate("tok")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(jti)

	//nolint:errcheck // Set only fails on unmarshalable values
	_ = token.Set("user_id", userID)
	if displayName != "" {
		//nolint:errcheck // as above
		_ = token.Set("display_name", displayName)
	}

	return token.V4Encrypt(s.key, nil), nil
}

// Verify decrypts and validates a token, returning its claims.
func (s *TokenService) Verify(tokenString string) (*AccessClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Local(s.key, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims AccessClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return &claims, nil
}

// Duration returns the configured token lifetime.
func (s *TokenService) Duration() time.Duration {
	return s.duration
}
