package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Passwords are stored as PBKDF2-HMAC-SHA256 hashes in the passlib string
// format: $pbkdf2-sha256$<rounds>$<salt>$<hash>, with salt and hash in
// adapted base64 ('+' replaced by '.', no padding). Hashes written by the
// previous Python deployment remain verifiable.
const (
	hashIdentifier = "pbkdf2-sha256"
	defaultRounds  = 29000
	saltLen        = 16
	keyLen         = 32
)

// HashPassword derives a salted PBKDF2-SHA256 hash for the given password.
// A fresh random salt is generated per call, so hashing the same password
// twice yields different strings.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, defaultRounds, keyLen, sha256.New)

	return fmt.Sprintf("$%s$%d$%s$%s",
		hashIdentifier, defaultRounds, ab64Encode(salt), ab64Encode(key)), nil
}

// VerifyPassword reports whether password matches the encoded hash.
// Malformed hashes verify false; the function never panics or errors so a
// corrupt stored credential behaves like a wrong password. The digest
// comparison is constant time.
func VerifyPassword(password, encoded string) bool {
	rounds, salt, expected, ok := decodeHash(encoded)
	if !ok {
		return false
	}

	computed := pbkdf2.Key([]byte(password), salt, rounds, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(expected, computed) == 1
}

func decodeHash(encoded string) (rounds int, salt, hash []byte, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != hashIdentifier {
		return 0, nil, nil, false
	}

	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds <= 0 {
		return 0, nil, nil, false
	}

	salt, err = ab64Decode(parts[3])
	if err != nil || len(salt) == 0 {
		return 0, nil, nil, false
	}

	hash, err = ab64Decode(parts[4])
	if err != nil || len(hash) == 0 {
		return 0, nil, nil, false
	}

	return rounds, salt, hash, true
}

// ab64Encode applies passlib's adapted base64: standard alphabet with '+'
// swapped for '.', no padding.
func ab64Encode(b []byte) string {
	return strings.ReplaceAll(base64.RawStdEncoding.EncodeToString(b), "+", ".")
}

func ab64Decode(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.ReplaceAll(s, ".", "+"))
}
