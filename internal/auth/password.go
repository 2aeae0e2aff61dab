package auth

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor for stored credentials.
const HashCost = 10

// HashPassword returns a salted bcrypt digest of plain. Two calls with the
// same input produce different digests.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches digest. A malformed digest is
// treated as a mismatch, never an error.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
