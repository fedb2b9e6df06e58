package auth

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength is enforced at the API boundary before hashing.
const MinPasswordLength = 6

// HashPassword produces a salted bcrypt hash. Repeated calls with the same
// input yield different hashes; compare only via CheckPassword.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash. It returns
// false for malformed hashes instead of failing.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
