package ids

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const (
	// ShareCodeLength is the length of generated share codes.
	ShareCodeLength = 10

	// ShareCodeAlphabet is the set of characters share codes are drawn from.
	// Every character is safe in a URL path segment without escaping.
	ShareCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// NewTaskID returns a random task identifier.
func NewTaskID() string {
	return uuid.NewString()
}

// NewShareCode returns a random share code of ShareCodeLength characters.
func NewShareCode() string {
	return RandomString(ShareCodeAlphabet, ShareCodeLength)
}

// RandomString draws length characters uniformly from alphabet.
func RandomString(alphabet string, length int) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the kernel entropy source is broken.
			panic("ids: read random: " + err.Error())
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out)
}

// IsShareCode reports whether code has the shape of a generated share code.
func IsShareCode(code string) bool {
	if len(code) != ShareCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
