package security

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted one-way hash of the plaintext. The salt is
// generated per call and embedded in the returned hash.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext candidate against a stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
