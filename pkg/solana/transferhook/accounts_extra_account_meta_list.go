package transferhook

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

const (
	AddressConfigSize = 32

	ExtraAccountMetaSize = (1 + // discriminator
		AddressConfigSize + // address_config
		1 + // is_signer
		1) // is_writable

	extraAccountMetaListHeaderSize = (8 + // instruction discriminator
		4 + // length
		4) // count
)

// Discriminator values for an ExtraAccountMeta. Values at or above
// DiscriminatorExternalPDA encode the index of the program account within the
// accounts resolved so far.
const (
	DiscriminatorFixed       uint8 = 0
	DiscriminatorPDA         uint8 = 1
	DiscriminatorExternalPDA uint8 = 1 << 7
)

type ExtraAccountMeta struct {
	Discriminator uint8
	AddressConfig [AddressConfigSize]byte
	IsSigner      bool
	IsWritable    bool
}

// ExtraAccountMetaList is the first TLV entry of a validation account.
type ExtraAccountMetaList struct {
	InstructionDiscriminator uint64
	Length                   uint32
	Entries                  []ExtraAccountMeta
}

func UnmarshalExtraAccountMetaList(data []byte) (*ExtraAccountMetaList, error) {
	d := binary.NewDecoder(data)

	var list ExtraAccountMetaList
	list.InstructionDiscriminator = d.Uint64()
	list.Length = d.Uint32()

	n := d.SeqLen(ExtraAccountMetaSize)
	list.Entries = make([]ExtraAccountMeta, 0, n)
	for i := 0; i < n && d.Err() == nil; i++ {
		var entry ExtraAccountMeta
		entry.Discriminator = d.Uint8()
		copy(entry.AddressConfig[:], d.Fixed(AddressConfigSize))
		entry.IsSigner = d.Bool()
		entry.IsWritable = d.Bool()
		list.Entries = append(list.Entries, entry)
	}

	if err := d.Err(); err != nil {
		return nil, errors.Wrap(err, "invalid extra account meta list")
	}
	return &list, nil
}

func (l *ExtraAccountMetaList) Marshal() []byte {
	e := binary.NewEncoder(extraAccountMetaListHeaderSize + len(l.Entries)*ExtraAccountMetaSize)

	e.Uint64(l.InstructionDiscriminator)
	e.Uint32(uint32(4 + len(l.Entries)*ExtraAccountMetaSize))
	e.SeqLen(len(l.Entries))
	for _, entry := range l.Entries {
		e.Uint8(entry.Discriminator)
		e.Fixed(entry.AddressConfig[:], AddressConfigSize)
		e.Bool(entry.IsSigner)
		e.Bool(entry.IsWritable)
	}

	b, _ := e.Result()
	return b
}

// NewFixedExtraAccountMeta returns an entry that resolves to key.
func NewFixedExtraAccountMeta(key ed25519.PublicKey, isSigner, isWritable bool) ExtraAccountMeta {
	entry := ExtraAccountMeta{
		Discriminator: DiscriminatorFixed,
		IsSigner:      isSigner,
		IsWritable:    isWritable,
	}
	copy(entry.AddressConfig[:], key)
	return entry
}

// NewPDAExtraAccountMeta returns an entry derived from packed seeds. programIndex
// selects the program: nil derives under the hook program, otherwise under the
// account resolved at that index.
func NewPDAExtraAccountMeta(seeds []Seed, programIndex *uint8, isSigner, isWritable bool) (ExtraAccountMeta, error) {
	config, err := PackSeeds(seeds)
	if err != nil {
		return ExtraAccountMeta{}, err
	}

	entry := ExtraAccountMeta{
		Discriminator: DiscriminatorPDA,
		AddressConfig: config,
		IsSigner:      isSigner,
		IsWritable:    isWritable,
	}
	if programIndex != nil {
		if *programIndex >= DiscriminatorExternalPDA {
			return ExtraAccountMeta{}, errors.Wrapf(ErrInvalidExtraAccountMeta, "program index %d", *programIndex)
		}
		entry.Discriminator = DiscriminatorExternalPDA + *programIndex
	}
	return entry, nil
}
