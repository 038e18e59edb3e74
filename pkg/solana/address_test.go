package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"hash"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProgramAddress(t *testing.T) {
	exceededSeed := make([]byte, maxSeedLength+1)
	maxSeed := make([]byte, maxSeedLength)

	// The typo here was taken directly from the Solana test case,
	// which was used to derive the expected outputs.
	publicKey, err := base58.Decode("SeedPubey1111111111111111111111111111111111")
	require.NoError(t, err)
	programID, err := base58.Decode("BPFLoader1111111111111111111111111111111111")
	require.NoError(t, err)

	_, err = CreateProgramAddress(programID, exceededSeed)
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
	_, err = CreateProgramAddress(programID, []byte("short seed"), exceededSeed)
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)

	_, err = CreateProgramAddress(programID, make([][]byte, maxSeeds+1)...)
	assert.Equal(t, ErrTooManySeeds, err)

	_, err = CreateProgramAddress(programID, maxSeed)
	assert.NoError(t, err)

	for _, tc := range []struct {
		expected string
		input    [][]byte
	}{
		{
			expected: "3gF2KMe9KiC6FNVBmfg9i267aMPvK37FewCip4eGBFcT",
			input:    [][]byte{{}, {1}},
		},
		{
			expected: "7ytmC1nT1xY4RfxCV2ZgyA7UakC93do5ZdyhdF3EtPj7",
			input:    [][]byte{[]byte("☉")},
		},
		{
			expected: "HwRVBufQ4haG5XSgpspwKtNd3PC9GM9m1196uJW36vds",
			input:    [][]byte{[]byte("Talking"), []byte("Squirrels")},
		},
		{
			expected: "GUs5qLUfsEHkcMB9T38vjr18ypEhRuNWiePW2LoK4E3K",
			input:    [][]byte{publicKey},
		},
	} {
		key, err := CreateProgramAddress(programID, tc.input...)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, base58.Encode(key))
	}
}

type fixedHash struct {
	sumResult []byte
}

func (f *fixedHash) Write(p []byte) (n int, err error) { return len(p), nil }
func (f *fixedHash) Sum(b []byte) []byte              { return f.sumResult }
func (f *fixedHash) Reset()                           {}
func (f *fixedHash) Size() int                        { return sha256.Size }
func (f *fixedHash) BlockSize() int                   { return sha256.BlockSize }

func TestCreateProgramAddress_OnCurve(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	programHashCtor = func() hash.Hash {
		return &fixedHash{sumResult: pub}
	}
	defer func() {
		programHashCtor = sha256.New
	}()

	_, err = CreateProgramAddress(pub, []byte("Lil'"), []byte("Bits"))
	assert.Equal(t, ErrInvalidPublicKey, err)

	_, _, err = FindProgramAddressAndBump(pub, []byte("Lil'"))
	assert.Equal(t, ErrNoViableBumpSeed, err)
}

func TestFindProgramAddress_Ref(t *testing.T) {
	for _, r := range []struct {
		programID string
		expected  string
	}{
		{
			programID: "4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM",
			expected:  "Bn9pAWUXWc5Kd849xTkQcHqiCbHUEizLFn4r5Cf8XYnd",
		},
		{
			programID: "8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh",
			expected:  "oDvUHiiGdMo31xYzjefAzUekWH8EbCKrxgs2FkyTs1S",
		},
		{
			programID: "CiDwVBFgWV9E5MvXWoLgnEgn2hK7rJikbvfWavzAQz3",
			expected:  "B2vBn2bmF9GuaGkebrm8oUqDC34pE6m4bagjNcVE6msv",
		},
		{
			programID: "2M59vuWgsiuHAqQVB6KvuXuaBCJR8138gMAm4uCuR6Du",
			expected:  "E5dLtHAM353EPnHyuZ32sKREn26VW4Y8bzb2KQJTBHQh",
		},
	} {
		programID, err := base58.Decode(r.programID)
		require.NoError(t, err)

		actual, err := FindProgramAddress(programID, []byte("Lil'"), []byte("Bits"))
		require.NoError(t, err)
		assert.Equal(t, r.expected, base58.Encode(actual))
	}
}

func TestFindProgramAddress_MatchesSDK(t *testing.T) {
	program := MustPublicKeyFromString("Cook7kyoaKaiG57VBDUjE2KuPXrWdLEu7d3FdDgsijHU")

	for _, seeds := range [][][]byte{
		{[]byte("my-page"), []byte("Launchs")},
		{[]byte("my-page"), []byte("Collection")},
		{SeedUint32(59957379)},
		{program, []byte("User")},
	} {
		actual, bump, err := FindProgramAddressAndBump(program, seeds...)
		require.NoError(t, err)

		expected, expectedBump, err := common.FindProgramAddress(seeds, common.PublicKeyFromBytes(program))
		require.NoError(t, err)

		assert.Equal(t, expected.Bytes(), []byte(actual))
		assert.Equal(t, expectedBump, bump)
	}
}

func TestFindProgramAddress_Deterministic(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	a, err := FindProgramAddress(program, []byte("Launchs"), []byte("my-page"))
	require.NoError(t, err)
	b, err := FindProgramAddress(program, []byte("Launchs"), []byte("my-page"))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	reversed, err := FindProgramAddress(program, []byte("my-page"), []byte("Launchs"))
	require.NoError(t, err)
	assert.NotEqual(t, a, reversed)
}

func TestPublicKeyFromString(t *testing.T) {
	key, err := PublicKeyFromString("11111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), []byte(key))

	_, err = PublicKeyFromString("not-base58-0OIl")
	assert.Error(t, err)

	_, err = PublicKeyFromString("abc")
	assert.Error(t, err)
}

func TestSeedUint32(t *testing.T) {
	assert.Equal(t, []byte{0x83, 0xe0, 0x92, 0x03}, SeedUint32(59957379))
}
