package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptVerifier hashes and checks passwords with bcrypt at a fixed cost.
type BcryptVerifier struct {
	Cost int
}

func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{Cost: cost}
}

func (v *BcryptVerifier) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), v.Cost)
	return string(bytes), err
}

// Verify reports whether password matches hash. Malformed hashes never match.
func (v *BcryptVerifier) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
