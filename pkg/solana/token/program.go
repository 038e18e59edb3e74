package token

import (
	"bytes"
	"crypto/ed25519"
)

// ProgramKey is the address of the legacy SPL token program.
//
// Current key: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramKey = ed25519.PublicKey{6, 221, 246, 225, 215, 101, 161, 147, 217, 203, 225, 70, 206, 235, 121, 172, 28, 180, 133, 237, 95, 91, 55, 145, 58, 140, 245, 133, 126, 255, 0, 169}

// Program2022Key is the address of the token extensions program.
//
// Current key: TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb
var Program2022Key = ed25519.PublicKey{6, 221, 246, 225, 238, 117, 143, 222, 24, 66, 93, 188, 228, 108, 205, 218, 182, 26, 252, 77, 131, 185, 13, 39, 254, 189, 249, 40, 216, 161, 139, 252}

// WrappedSolMint is the native mint, whose tokens are wrapped SOL.
//
// Current key: So11111111111111111111111111111111111111112
var WrappedSolMint = ed25519.PublicKey{6, 155, 136, 87, 254, 171, 129, 132, 251, 104, 127, 99, 70, 24, 192, 53, 218, 196, 57, 220, 26, 235, 59, 85, 152, 160, 240, 0, 0, 0, 0, 1}

// IsTokenProgram reports whether key is one of the two token programs.
func IsTokenProgram(key ed25519.PublicKey) bool {
	return bytes.Equal(key, ProgramKey) || bytes.Equal(key, Program2022Key)
}
