package coordinator

import (
	"crypto/rand"
	"math/big"
)

const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// GenerateRoomCode - generates a short code used to pair two players.
// Lookalike symbols are left out of the alphabet.
func GenerateRoomCode() string {
	code := make([]byte, codeLength)

	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "error-generating-room-code"
		}

		code[i] = codeAlphabet[n.Int64()]
	}

	return string(code)
}
