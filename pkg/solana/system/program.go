package system

import (
	"crypto/ed25519"
)

// ProgramKey is the address of the system program.
//
// Current key: 11111111111111111111111111111111
var ProgramKey = ed25519.PublicKey(make([]byte, ed25519.PublicKeySize))

// IsProgram reports whether key is the system program.
func IsProgram(key ed25519.PublicKey) bool {
	if len(key) != ed25519.PublicKeySize {
		return false
	}
	for _, b := range key {
		if b != 0 {
			return false
		}
	}
	return true
}
