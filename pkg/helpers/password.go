package helpers

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the stored bcrypt hash for an account password.
// Callers trim JSON-body passwords before hashing; the input here is taken
// verbatim.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches the stored hash.
// Basic-auth passwords arrive here untrimmed, so a padded password is a
// different password.
func CompareHashAndPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
