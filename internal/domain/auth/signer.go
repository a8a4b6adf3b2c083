package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// Claims is the payload carried by a bearer token.
type Claims struct {
	UserID    string `json:"uid"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Signer produces tokens of the form base64url(json || hmac-sha256(json)).
type Signer struct {
	key []byte
}

func NewSigner(key string) *Signer {
	return &Signer{key: []byte(key)}
}

func (s *Signer) Sign(c Claims) (string, error) {
	if len(s.key) == 0 {
		return "", errors.New("session key not configured")
	}

	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	combined := append(data, h.Sum(nil)...)

	return base64.URLEncoding.EncodeToString(combined), nil
}

func (s *Signer) Verify(token string) (*Claims, error) {
	if len(s.key) == 0 {
		return nil, errors.New("session key not configured")
	}

	combined, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	if len(combined) <= sha256.Size {
		return nil, errors.New("invalid token length")
	}

	data := combined[:len(combined)-sha256.Size]
	received := combined[len(combined)-sha256.Size:]

	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	if !hmac.Equal(received, h.Sum(nil)) {
		return nil, errors.New("signature verification failed")
	}

	var c Claims
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claims: %w", err)
	}
	return &c, nil
}
