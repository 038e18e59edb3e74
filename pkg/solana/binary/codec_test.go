package binary

import (
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_Primitives(t *testing.T) {
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	key[0], key[31] = 1, 2

	e := NewEncoder(0)
	e.Uint8(0xab)
	e.Uint16(0x0102)
	e.Uint32(5)
	e.Uint64(0x0807060504030201)
	e.Int64(-1)
	e.Bool(true)
	e.Key(key)
	e.Fixed([]byte{9, 9}, 4)
	e.Bytes([]byte{7})
	e.Text("héllo")
	e.Texts([]string{"", "a"})
	e.Keys([]ed25519.PublicKey{key})

	encoded, err := e.Result()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xab, 0x02, 0x01, 0x05, 0, 0, 0}, encoded[:7])

	d := NewDecoder(encoded)
	assert.EqualValues(t, 0xab, d.Uint8())
	assert.EqualValues(t, 0x0102, d.Uint16())
	assert.EqualValues(t, 5, d.Uint32())
	assert.EqualValues(t, uint64(0x0807060504030201), d.Uint64())
	assert.EqualValues(t, -1, d.Int64())
	assert.True(t, d.Bool())
	assert.Equal(t, key, d.Key())
	assert.Equal(t, []byte{9, 9, 0, 0}, d.Fixed(4))
	assert.Equal(t, []byte{7}, d.Bytes())
	assert.Equal(t, "héllo", d.Text())
	assert.Equal(t, []string{"", "a"}, d.Texts())
	assert.Equal(t, []ed25519.PublicKey{key}, d.Keys())
	require.NoError(t, d.Err())
	assert.Equal(t, len(encoded), d.Offset())
	assert.Zero(t, d.Remaining())
}

func TestDecoder_Truncated(t *testing.T) {
	e := NewEncoder(0)
	e.Uint64(1)
	e.Text("launch")
	e.Keys(make([]ed25519.PublicKey, 2))
	encoded, err := e.Result()
	require.NoError(t, err)

	for i := 0; i < len(encoded); i++ {
		d := NewDecoder(encoded[:i])
		d.Uint64()
		d.Text()
		d.Keys()
		assert.True(t, errors.Is(d.Err(), ErrTruncatedInput), "offset %d", i)
	}
}

func TestDecoder_StickyError(t *testing.T) {
	d := NewDecoder([]byte{1})
	assert.Zero(t, d.Uint32())
	assert.True(t, errors.Is(d.Err(), ErrTruncatedInput))

	// later reads do not advance or replace the error
	assert.Zero(t, d.Uint8())
	assert.Equal(t, 0, d.Offset())
	d.UnknownTag("plugin", 9)
	assert.True(t, errors.Is(d.Err(), ErrTruncatedInput))
}

func TestDecoder_InvalidUTF8(t *testing.T) {
	d := NewDecoder([]byte{2, 0, 0, 0, 0xff, 0xfe})
	assert.Empty(t, d.Text())
	assert.True(t, errors.Is(d.Err(), ErrInvalidEncoding))
}

func TestDecoder_CorruptCount(t *testing.T) {
	d := NewDecoder([]byte{0xff, 0xff, 0xff, 0xff, 0})
	assert.Nil(t, d.Keys())
	assert.True(t, errors.Is(d.Err(), ErrTruncatedInput))
}

func TestDecoder_UnknownTag(t *testing.T) {
	d := NewDecoder([]byte{7})
	tag := d.Tag()
	d.UnknownTag("plugin", tag)
	assert.True(t, errors.Is(d.Err(), ErrUnknownVariant))
	assert.Contains(t, d.Err().Error(), "plugin tag 7 at offset 0")
}

func TestDecoderAt(t *testing.T) {
	d := NewDecoderAt([]byte{0, 0, 5, 0, 0, 0}, 2)
	assert.EqualValues(t, 5, d.Uint32())
	assert.Equal(t, 6, d.Offset())

	d = NewDecoderAt([]byte{0}, 3)
	assert.True(t, errors.Is(d.Err(), ErrTruncatedInput))
}

func TestEncoder_InvalidKey(t *testing.T) {
	e := NewEncoder(0)
	e.Key([]byte{1, 2, 3})
	_, err := e.Result()
	assert.True(t, errors.Is(err, ErrInvalidKeyLength))

	e = NewEncoder(0)
	e.Fixed([]byte{1, 2, 3}, 2)
	_, err = e.Result()
	assert.Error(t, err)
}
