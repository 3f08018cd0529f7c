package utils

import (
	"learninglife/config"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext credential with the configured bcrypt cost.
// Hashing happens exactly once, before the user record is first persisted;
// nothing in the codebase stores or logs the plaintext.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), config.AppConfig.SaltRound)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored hash. bcrypt does
// the salt extraction and constant-time comparison internally.
func CheckPassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
