package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 defaults based on OWASP recommendations
const (
	DefaultMemory      = 64 * 1024 // 64 MB
	DefaultIterations  = 3
	DefaultParallelism = 2
	SaltLength         = 16
	KeyLength          = 32
)

var errInvalidHash = errors.New("invalid hash format")

// PasswordHasher produces the encoded argon2id string stored in User.PasswordHash.
type PasswordHasher struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

func NewPasswordHasher(memory, iterations uint32, parallelism uint8) PasswordHasher {
	return PasswordHasher{Memory: memory, Iterations: iterations, Parallelism: parallelism}
}

func DefaultPasswordHasher() PasswordHasher {
	return NewPasswordHasher(DefaultMemory, DefaultIterations, DefaultParallelism)
}

// Hash salts and hashes password, returning "$argon2id$v=..$m=..,t=..,p=..$salt$hash".
func (h PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, h.Iterations, h.Memory, h.Parallelism, KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.Memory, h.Iterations, h.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Compare re-hashes password with the parameters embedded in encodedHash,
// so hashes produced with older settings keep verifying.
func (h PasswordHasher) Compare(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errInvalidHash
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false, fmt.Errorf("%w: %v", errInvalidHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}
	stored, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(stored)))

	// Constant time comparison
	return subtle.ConstantTimeCompare(stored, candidate) == 1, nil
}
