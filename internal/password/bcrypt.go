// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/filedrop/internal/model"
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements model.PasswordHasher. Every hash carries its own random
// salt, so hashing the same password twice gives different strings.
//
// Passwords are reduced to a base64 SHA-256 digest before bcrypt, which
// otherwise refuses input longer than 72 bytes.
type Bcrypt struct {
	cost  int
	dummy []byte
}

// NewBcrypt creates a hasher with the given cost. Costs outside the range
// accepted by bcrypt fall back to bcrypt.DefaultCost.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword(prehash("filedrop-missing-user"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Bcrypt{cost: cost, dummy: dummy}, nil
}

// Hash returns the bcrypt hash of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password: %w", model.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify reports whether password matches hash.
func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(password)) == nil
}

// VerifyMissing performs one comparison against a fixed hash. Callers use it
// when the account does not exist, so that an unknown username costs the same
// time as a wrong password.
func (b *Bcrypt) VerifyMissing(password string) {
	_ = bcrypt.CompareHashAndPassword(b.dummy, prehash(password))
}

// prehash maps a password of any length to 44 bytes.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
