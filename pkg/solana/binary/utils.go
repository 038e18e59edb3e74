package binary

import (
	"crypto/ed25519"
	"encoding/binary"
)

// The offset helpers below operate on fixed layouts where the caller has
// already checked the buffer length. Variable length layouts go through
// Decoder and Encoder instead.

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst, src)
	*offset += ed25519.PublicKeySize
}

func PutOptionalKey32(dst []byte, src []byte, offset *int, optionSize int) {
	if len(src) > 0 {
		dst[0] = 1
		copy(dst[optionSize:], src)
	}

	*offset += optionSize + ed25519.PublicKeySize
}

func PutOptionalUint64(dst []byte, src *uint64, offset *int, optionSize int) {
	if src != nil {
		dst[0] = 1
		binary.LittleEndian.PutUint64(dst[optionSize:], *src)
	}
	*offset += optionSize + 8
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst, v)
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst, v)
	*offset += 4
}

func PutUint16(dst []byte, v uint16, offset *int) {
	binary.LittleEndian.PutUint16(dst, v)
	*offset += 2
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[0] = v
	*offset += 1
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src)
	*offset += ed25519.PublicKeySize
}

func GetOptionalKey32(src []byte, dst *ed25519.PublicKey, offset *int, optionSize int) {
	if src[0] == 1 {
		*dst = make([]byte, ed25519.PublicKeySize)
		copy(*dst, src[optionSize:])
	}
	*offset += optionSize + ed25519.PublicKeySize
}

// GetNonZeroKey32 reads a 32 byte key where the all zero key means absent.
func GetNonZeroKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*offset += ed25519.PublicKeySize
	for _, b := range src[:ed25519.PublicKeySize] {
		if b != 0 {
			*dst = make([]byte, ed25519.PublicKeySize)
			copy(*dst, src)
			return
		}
	}
}

func GetOptionalUint64(src []byte, dst **uint64, offset *int, optionSize int) {
	if src[0] == 1 {
		v := binary.LittleEndian.Uint64(src[optionSize:])
		*dst = &v
	}
	*offset += optionSize + 8
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src)
	*offset += 8
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src)
	*offset += 4
}

func GetUint16(src []byte, dst *uint16, offset *int) {
	*dst = binary.LittleEndian.Uint16(src)
	*offset += 2
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[0]
	*offset += 1
}

func GetBool(src []byte, dst *bool, offset *int) {
	*dst = src[0] != 0
	*offset += 1
}
