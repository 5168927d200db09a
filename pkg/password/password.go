// Package password wraps the credential hashing capability used by the
// identity layer: hash, verify, and mark-unusable. A profile created without
// a password gets an unusable marker so it can never authenticate until a
// real password is set.
package password

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// unusablePrefix can never appear in a bcrypt hash, so a stored value
// starting with it always fails verification.
const unusablePrefix = "!"

// Hash returns the bcrypt hash for the given raw password.
func Hash(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether raw matches the stored hash. Unusable markers
// never verify.
func Verify(hashed, raw string) bool {
	if !IsUsable(hashed) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

// MakeUnusable returns a marker value that fails every verification attempt.
// The random suffix keeps two unusable markers from comparing equal.
func MakeUnusable() string {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return unusablePrefix + hex.EncodeToString(buf)
}

// IsUsable reports whether the stored value is a real hash rather than an
// unusable marker.
func IsUsable(hashed string) bool {
	return hashed != "" && !strings.HasPrefix(hashed, unusablePrefix)
}
