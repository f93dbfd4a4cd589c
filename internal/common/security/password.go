package security

import (
	"golang.org/x/crypto/bcrypt"
)

var passwordCost = bcrypt.DefaultCost

// SetPasswordCost sets the bcrypt cost used by HashPassword, clamped to bcrypt's range.
func SetPasswordCost(cost int) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	passwordCost = cost
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash. Malformed hashes never match.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
