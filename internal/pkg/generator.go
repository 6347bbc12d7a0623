package pkg

import (
	"math/rand"

	"github.com/google/uuid"
)

// Room codes avoid visually ambiguous characters (no 0/O or 1/I overlap).
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// GenerateRoomCode - returns a fixed-length code drawn uniformly from the
// unambiguous alphabet. Uniqueness is the registry's job, not ours.
func GenerateRoomCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))] //nolint: gosec // it's ok
	}

	return string(code)
}

// GenerateConnectionID - mints an identifier for a freshly upgraded socket.
func GenerateConnectionID() string {
	return uuid.NewString()
}
