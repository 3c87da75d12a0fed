package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost stays at the library default. Raise it here if login latency
// allows.
const bcryptCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash for storage. The plaintext is never
// persisted anywhere else.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
