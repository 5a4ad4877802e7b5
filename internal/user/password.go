package user

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// hashPassword hashes a plain text password with bcrypt
func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// checkPassword reports whether password matches the stored hash
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
