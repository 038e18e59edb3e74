package binary

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrInvalidKeyLength indicates an address that is not 32 bytes.
var ErrInvalidKeyLength = errors.New("invalid key length")

// Encoder appends the layout read by Decoder. Like Decoder its errors are
// sticky and reported by Err.
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder returns an Encoder with sizeHint bytes preallocated.
func NewEncoder(sizeHint int) *Encoder {
	return &Encoder{buf: make([]byte, 0, sizeHint)}
}

// Result returns the encoded output, or the first error.
func (e *Encoder) Result() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf, nil
}

func (e *Encoder) Err() error {
	return e.err
}

// Fail records err unless an earlier error is already held.
func (e *Encoder) Fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// UnknownVariant records ErrUnknownVariant for a union value, nil included,
// that has no tag.
func (e *Encoder) UnknownVariant(union string, v interface{}) {
	e.Fail(errors.Wrapf(ErrUnknownVariant, "%s %T at offset %d", union, v, len(e.buf)))
}

func (e *Encoder) Len() int {
	return len(e.buf)
}

func (e *Encoder) Uint8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *Encoder) Uint16(v uint16) {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
}

func (e *Encoder) Uint32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

func (e *Encoder) Uint64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

func (e *Encoder) Int64(v int64) {
	e.Uint64(uint64(v))
}

func (e *Encoder) Bool(v bool) {
	if v {
		e.Uint8(1)
	} else {
		e.Uint8(0)
	}
}

// Key appends a raw 32 byte address. A nil key is encoded as all zeros.
func (e *Encoder) Key(key ed25519.PublicKey) {
	switch len(key) {
	case 0:
		e.buf = append(e.buf, make([]byte, ed25519.PublicKeySize)...)
	case ed25519.PublicKeySize:
		e.buf = append(e.buf, key...)
	default:
		if e.err == nil {
			e.err = errors.Wrapf(ErrInvalidKeyLength, "%d bytes at offset %d", len(key), len(e.buf))
		}
		e.buf = append(e.buf, make([]byte, ed25519.PublicKeySize)...)
	}
}

// Fixed appends b as a fixed size array of n bytes. Short input is zero padded
// and long input is an error.
func (e *Encoder) Fixed(b []byte, n int) {
	if len(b) > n && e.err == nil {
		e.err = errors.Errorf("fixed array of %d bytes given %d", n, len(b))
	}

	out := make([]byte, n)
	copy(out, b)
	e.buf = append(e.buf, out...)
}

// Bytes appends a u32 length prefixed byte sequence.
func (e *Encoder) Bytes(b []byte) {
	e.Uint32(uint32(len(b)))
	e.buf = append(e.buf, b...)
}

// Text appends a u32 length prefixed string.
func (e *Encoder) Text(s string) {
	e.Uint32(uint32(len(s)))
	e.buf = append(e.buf, s...)
}

// SeqLen appends a u32 element count.
func (e *Encoder) SeqLen(n int) {
	e.Uint32(uint32(n))
}

// Tag appends a single byte union discriminant.
func (e *Encoder) Tag(tag uint8) {
	e.Uint8(tag)
}

func (e *Encoder) Texts(values []string) {
	e.SeqLen(len(values))
	for _, v := range values {
		e.Text(v)
	}
}

func (e *Encoder) Keys(keys []ed25519.PublicKey) {
	e.SeqLen(len(keys))
	for _, k := range keys {
		e.Key(k)
	}
}
