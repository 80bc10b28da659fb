package helpers

import "golang.org/x/crypto/bcrypt"

// bcryptCost pins the work factor; DefaultCost today, explicit so a future
// bump is a one-line change.
const bcryptCost = bcrypt.DefaultCost

// HashPassword hashes the plain text password using bcrypt.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
