package receipts

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Reference prefixes
const (
	PrefixPayment = "RCP"
	PrefixExam    = "EXM"
)

// Ambiguous characters (0/O, 1/I) are left out so references can be read aloud
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const refLength = 8

// NewReference generates a reference in the format "PREFIX-XXXXXXXX"
func NewReference(prefix string) (string, error) {
	var b strings.Builder
	b.Grow(len(prefix) + 1 + refLength)
	b.WriteString(prefix)
	b.WriteByte('-')

	for i := 0; i < refLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[num.Int64()])
	}

	return b.String(), nil
}

// Valid reports whether ref was produced by NewReference with prefix
func Valid(prefix, ref string) bool {
	body, ok := strings.CutPrefix(ref, prefix+"-")
	if !ok || len(body) != refLength {
		return false
	}
	for i := 0; i < len(body); i++ {
		if strings.IndexByte(alphabet, body[i]) < 0 {
			return false
		}
	}
	return true
}
