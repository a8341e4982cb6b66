package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt

	// Upper bounds accepted when verifying stored hashes.
	maxMemoryKiB  = 1 << 22 // 4 GiB
	maxIterations = 64
)

// ErrHashFormat is returned by Verify when the stored hash cannot be parsed.
// A malformed hash is never reported as a plain mismatch.
var ErrHashFormat = errors.New("cryptox: malformed password hash")

// Hasher hashes passwords into PHC-format Argon2id strings. Pepper, when set,
// is appended to every password before hashing and must stay stable for the
// lifetime of the stored hashes.
type Hasher struct {
	Pepper string
}

// NewHasher returns a Hasher using the given pepper (may be empty).
func NewHasher(pepper string) *Hasher {
	return &Hasher{Pepper: pepper}
}

// Hash generates a PHC-format Argon2id hash string including salt and parameters.
// Two calls with the same password never return the same string.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("PASSWORD_SALT_FAILED").Wrap(err)
	}

	hash := argon2.IDKey([]byte(password+h.Pepper), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify compares a plaintext password against a stored hash.
//
// Returns (true, nil) on match and (false, nil) on mismatch. Hashes that
// cannot be parsed yield an error wrapping ErrHashFormat. Argon2id hashes are
// compared in constant time; bcrypt hashes (the format used by the service
// this one replaced) go through bcrypt's own comparison and ignore the pepper.
func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	if isBcrypt(encodedHash) {
		return verifyBcrypt(password, encodedHash)
	}

	// $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return false, formatError("expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return false, formatError("unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, formatError("unsupported version %q", parts[2])
	}

	var mem, iters, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return false, formatError("bad parameters %q", parts[3])
	}
	if par == 0 || par > 255 || iters == 0 || iters > maxIterations || mem < 8*par || mem > maxMemoryKiB {
		return false, formatError("parameters out of range %q", parts[3])
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, formatError("bad salt encoding")
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false, formatError("bad hash encoding")
	}

	computed := argon2.IDKey(
		[]byte(password+h.Pepper),
		salt,
		iters,
		mem,
		uint8(par),
		uint32(len(expected)), // #nosec G115 - bounded by the decoded hash
	)

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// NeedsRehash reports whether a stored hash is in a legacy format and should
// be replaced with an Argon2id hash the next time the password is known.
func (h *Hasher) NeedsRehash(encodedHash string) bool {
	return !strings.HasPrefix(encodedHash, "$argon2id$")
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func verifyBcrypt(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, oops.Code("PASSWORD_HASH_FORMAT").With("algorithm", "bcrypt").Wrap(errors.Join(ErrHashFormat, err))
	}
}

func formatError(format string, args ...any) error {
	return oops.Code("PASSWORD_HASH_FORMAT").With("algorithm", "argon2id").Wrapf(ErrHashFormat, format, args...)
}
