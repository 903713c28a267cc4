package userid

import (
	"crypto/rand"
	"fmt"
)

const (
	// Prefix tags every applicant identifier.
	Prefix = "SC_"

	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLen  = 10
)

// Length is the total length of a generated identifier.
const Length = len(Prefix) + codeLen

// Generate produces a short, human-typable applicant identifier of the form
// SC_XXXXXXXXXX drawn from digits and uppercase letters. Uniqueness is the
// caller's responsibility.
func Generate() (string, error) {
	buf := make([]byte, codeLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	code := make([]byte, codeLen)
	for i, b := range buf {
		code[i] = alphabet[int(b)%len(alphabet)]
	}

	return Prefix + string(code), nil
}
