package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"billingform/internal/platform/config"
)

var ErrInvalidClient = errors.New("invalid client credentials")

// ClientStore authenticates integrator backends against bcrypt hashed
// secrets from configuration.
type ClientStore struct {
	hashes map[string][]byte
}

func NewClientStore(clients []config.ClientConfig) *ClientStore {
	hashes := make(map[string][]byte, len(clients))
	for _, c := range clients {
		hashes[c.ID] = []byte(c.SecretHash)
	}
	return &ClientStore{hashes: hashes}
}

func (s *ClientStore) Authenticate(clientID, secret string) error {
	hash, ok := s.hashes[clientID]
	if !ok {
		// Compare anyway so unknown ids take as long as wrong secrets.
		bcrypt.CompareHashAndPassword(dummyHash, []byte(secret))
		return ErrInvalidClient
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(secret)); err != nil {
		return ErrInvalidClient
	}
	return nil
}

// HashSecret produces a value suitable for auth.clients[].secret_hash.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unknown-client"), bcrypt.MinCost)
