package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login, without saying
// whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("incorrect username or password")

const bcryptCost = bcrypt.DefaultCost

// dummyHash is compared against when the username does not exist so that
// both failure paths spend the same bcrypt time.
var dummyHash = mustHash("expense-tracker-dummy")

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		panic("auth: generate dummy hash: " + err.Error())
	}
	return hash
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SpendTime runs one bcrypt comparison against a throwaway hash.
func SpendTime(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
