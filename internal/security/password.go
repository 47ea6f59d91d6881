package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

var defaultParams = Argon2Params{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 2,
	KeyLen:  32,
	SaltLen: 16,
}

// HashPassword derives a salted digest for a new credential. The salt is
// generated fresh per call and returned alongside the digest; both are
// persisted as separate columns on the user record.
func HashPassword(password string) (salt string, digest string, err error) {
	raw := make([]byte, defaultParams.SaltLen)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = base64.StdEncoding.EncodeToString(raw)
	return salt, HashWithSalt(password, salt), nil
}

// HashWithSalt recomputes the digest for a supplied password and a stored
// salt. Deterministic: signin verification depends on it.
func HashWithSalt(password, salt string) string {
	sum := argon2.IDKey([]byte(password), []byte(salt), defaultParams.Time, defaultParams.Memory, defaultParams.Threads, defaultParams.KeyLen)
	return base64.StdEncoding.EncodeToString(sum)
}

// VerifyPassword compares a recomputed digest against the stored one in
// constant time.
func VerifyPassword(password, salt, storedDigest string) bool {
	computed := HashWithSalt(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedDigest)) == 1
}
