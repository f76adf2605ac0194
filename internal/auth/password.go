package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash of the raw password with a
// per-call salt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword reports whether the raw password matches the stored
// hash. The comparison is constant time; a mismatch is never an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
