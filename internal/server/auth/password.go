package auth

import (
	"sync"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

// HashPassword returns the bcrypt digest of password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches digest. A malformed digest
// counts as a mismatch.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// DummyDigest is a digest of a random password at PasswordCost. Checking
// against it costs as much as checking a real user, so a login for an
// unknown email takes as long as one with a wrong password.
var DummyDigest = sync.OnceValue(func() string {
	b, err := bcrypt.GenerateFromPassword(common.GenerateRandByteArray(32), PasswordCost)
	if err != nil {
		panic(err)
	}
	return string(b)
})
