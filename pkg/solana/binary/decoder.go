package binary

import (
	"crypto/ed25519"
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	// ErrTruncatedInput indicates the buffer ended before a field was complete.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrUnknownVariant indicates a union tag outside of the known variant table.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrInvalidEncoding indicates a field whose bytes are not a valid encoding
	// of its type, such as text that is not UTF-8.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// Decoder reads a little endian, length prefixed layout from a byte buffer.
//
// Errors are sticky. After the first failure every read returns the zero value
// and Err reports the original failure, so a record can be decoded field by
// field and checked once at the end. Offset reports how many bytes have been
// consumed, which is how callers learn the length of variable sized records.
type Decoder struct {
	buf    []byte
	offset int
	err    error
}

// NewDecoder returns a Decoder positioned at the start of buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// NewDecoderAt returns a Decoder positioned at offset within buf.
func NewDecoderAt(buf []byte, offset int) *Decoder {
	d := &Decoder{buf: buf, offset: offset}
	if offset < 0 || offset > len(buf) {
		d.err = errors.Wrapf(ErrTruncatedInput, "offset %d outside buffer of %d bytes", offset, len(buf))
	}
	return d
}

// Err returns the first error encountered.
func (d *Decoder) Err() error {
	return d.err
}

// Fail records err unless an earlier error is already recorded.
func (d *Decoder) Fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Offset returns the number of bytes consumed from the start of the buffer.
func (d *Decoder) Offset() int {
	return d.offset
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.offset
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || d.Remaining() < n {
		d.err = errors.Wrapf(ErrTruncatedInput, "need %d bytes at offset %d, have %d", n, d.offset, d.Remaining())
		return nil
	}

	b := d.buf[d.offset : d.offset+n]
	d.offset += n
	return b
}

func (d *Decoder) Uint8() uint8 {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *Decoder) Uint16() uint16 {
	b := d.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (d *Decoder) Uint32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *Decoder) Uint64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *Decoder) Int64() int64 {
	return int64(d.Uint64())
}

// Bool reads a single byte where any non zero value is true.
func (d *Decoder) Bool() bool {
	return d.Uint8() != 0
}

// Key reads a raw 32 byte address.
func (d *Decoder) Key() ed25519.PublicKey {
	b := d.take(ed25519.PublicKeySize)
	if b == nil {
		return nil
	}

	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(key, b)
	return key
}

// Fixed reads exactly n bytes with no length prefix.
func (d *Decoder) Fixed(n int) []byte {
	b := d.take(n)
	if b == nil {
		return nil
	}

	out := make([]byte, n)
	copy(out, b)
	return out
}

// Bytes reads a u32 length prefixed byte sequence.
func (d *Decoder) Bytes() []byte {
	n := d.Uint32()
	if d.err != nil {
		return nil
	}
	if uint64(n) > math.MaxInt32 {
		d.err = errors.Wrapf(ErrTruncatedInput, "byte sequence of %d at offset %d", n, d.offset)
		return nil
	}
	return d.Fixed(int(n))
}

// Text reads a u32 length prefixed UTF-8 string.
func (d *Decoder) Text() string {
	start := d.offset
	b := d.Bytes()
	if d.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		d.err = errors.Wrapf(ErrInvalidEncoding, "non utf-8 text at offset %d", start)
		return ""
	}
	return string(b)
}

// SeqLen reads a u32 element count. minElemSize is the smallest encoding of a
// single element and bounds the count by the bytes left in the buffer, so that
// a corrupt count fails as truncated input instead of allocating.
func (d *Decoder) SeqLen(minElemSize int) int {
	n := d.Uint32()
	if d.err != nil {
		return 0
	}
	if minElemSize < 1 {
		minElemSize = 1
	}
	if uint64(n)*uint64(minElemSize) > uint64(d.Remaining()) {
		d.err = errors.Wrapf(ErrTruncatedInput, "sequence of %d elements at offset %d exceeds %d remaining bytes", n, d.offset, d.Remaining())
		return 0
	}
	return int(n)
}

// Tag reads a single byte union discriminant.
func (d *Decoder) Tag() uint8 {
	return d.Uint8()
}

// UnknownTag records ErrUnknownVariant for a tag read just before.
func (d *Decoder) UnknownTag(union string, tag uint8) {
	d.Fail(errors.Wrapf(ErrUnknownVariant, "%s tag %d at offset %d", union, tag, d.offset-1))
}

// Texts reads a u32 counted sequence of strings.
func (d *Decoder) Texts() []string {
	n := d.SeqLen(4)
	out := make([]string, 0, n)
	for i := 0; i < n && d.err == nil; i++ {
		out = append(out, d.Text())
	}
	if d.err != nil {
		return nil
	}
	return out
}

// Keys reads a u32 counted sequence of addresses.
func (d *Decoder) Keys() []ed25519.PublicKey {
	n := d.SeqLen(ed25519.PublicKeySize)
	out := make([]ed25519.PublicKey, 0, n)
	for i := 0; i < n && d.err == nil; i++ {
		out = append(out, d.Key())
	}
	if d.err != nil {
		return nil
	}
	return out
}
