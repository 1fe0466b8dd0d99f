package crypto

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// BcryptCost is the work factor for the secondary credential field.
const BcryptCost = 12

// MaxBcryptPasswordLen is the longest password, in bytes, bcrypt will hash.
const MaxBcryptPasswordLen = 72

// werkzeug's default when the method string omits an iteration count.
const defaultPBKDF2Iterations = 600000

// HashBcrypt hashes a password with bcrypt for the password_hash field.
func HashBcrypt(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyCredential checks password against a stored hash in any supported
// format: argon2id PHC, werkzeug pbkdf2/scrypt, or bcrypt. Unknown or
// malformed hashes never match.
func VerifyCredential(password, stored string) bool {
	switch {
	case stored == "":
		return false
	case strings.HasPrefix(stored, "$argon2id$"):
		ok, err := VerifyPassword(password, stored)
		return err == nil && ok
	case strings.HasPrefix(stored, "pbkdf2:"), strings.HasPrefix(stored, "scrypt:"):
		return verifyWerkzeug(password, stored)
	case strings.HasPrefix(stored, "$2a$"), strings.HasPrefix(stored, "$2b$"), strings.HasPrefix(stored, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	default:
		return false
	}
}

// verifyWerkzeug handles "method$salt$hexdigest" strings.
func verifyWerkzeug(password, stored string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, digest := parts[0], parts[1], parts[2]

	want, err := hex.DecodeString(digest)
	if err != nil || len(want) == 0 {
		return false
	}

	got, ok := werkzeugDerive(method, []byte(password), []byte(salt), len(want))
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare(want, got) == 1
}

func werkzeugDerive(method string, password, salt []byte, keyLen int) ([]byte, bool) {
	fields := strings.Split(method, ":")

	switch fields[0] {
	case "pbkdf2":
		if len(fields) < 2 || len(fields) > 3 {
			return nil, false
		}
		newHash, size := digestFor(fields[1])
		if newHash == nil || keyLen != size {
			return nil, false
		}
		iterations := defaultPBKDF2Iterations
		if len(fields) == 3 {
			n, err := strconv.Atoi(fields[2])
			if err != nil || n <= 0 {
				return nil, false
			}
			iterations = n
		}
		return pbkdf2.Key(password, salt, iterations, keyLen, newHash), true

	case "scrypt":
		if len(fields) != 4 {
			return nil, false
		}
		n, errN := strconv.Atoi(fields[1])
		r, errR := strconv.Atoi(fields[2])
		p, errP := strconv.Atoi(fields[3])
		if errN != nil || errR != nil || errP != nil {
			return nil, false
		}
		key, err := scrypt.Key(password, salt, n, r, p, keyLen)
		if err != nil {
			return nil, false
		}
		return key, true
	}

	return nil, false
}

func digestFor(name string) (func() hash.Hash, int) {
	switch name {
	case "sha256":
		return sha256.New, sha256.Size
	case "sha512":
		return sha512.New, sha512.Size
	case "sha1":
		return sha1.New, sha1.Size
	}
	return nil, 0
}
