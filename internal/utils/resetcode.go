package utils

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// resetCodeSpan covers the 6-digit range 100000-999999 inclusive.
var resetCodeSpan = big.NewInt(900000)

// GenerateResetCode draws a 6-digit numeric code from the given source,
// or crypto/rand when the source is nil.
func GenerateResetCode(src io.Reader) (string, error) {
	if src == nil {
		src = rand.Reader
	}
	n, err := rand.Int(src, resetCodeSpan)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
