package session

import "golang.org/x/crypto/bcrypt"

// Hasher turns passwords into stored credentials and checks them.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(credential, password string) error
}

// BcryptHasher stores credentials as bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

// Hash returns the bcrypt hash of password.
// PRE: password is non-empty
// POST: Returns a hash that Compare accepts for the same password
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns nil only when password matches credential exactly.
func (h BcryptHasher) Compare(credential, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(password))
}
