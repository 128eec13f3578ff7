package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the original deployment's 10-round hashes.
const DefaultBcryptCost = 10

func HashPassword(pw string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

// CheckPassword verifies pw against a bcrypt hash. bcrypt's own comparison is
// constant-time; never compare hash bytes manually.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
