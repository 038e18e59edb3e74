package transferhook

import (
	"github.com/pkg/errors"
)

type SeedKind uint8

const (
	SeedKindUninitialized SeedKind = iota
	SeedKindLiteral
	SeedKindInstructionData
	SeedKindAccountKey
	SeedKindAccountData
)

// Seed is one packed seed of a PDA address config.
type Seed struct {
	Kind SeedKind

	// Literal
	Bytes []byte

	// InstructionData and AccountData
	Index  uint8
	Length uint8

	// AccountKey and AccountData
	AccountIndex uint8
}

// headerSize is the packed size of a seed excluding literal bytes, zero for
// unknown kinds.
func headerSize(kind SeedKind) int {
	switch kind {
	case SeedKindLiteral, SeedKindAccountKey:
		return 2
	case SeedKindInstructionData:
		return 3
	case SeedKindAccountData:
		return 4
	}
	return 0
}

func (s Seed) packedSize() int {
	size := headerSize(s.Kind)
	if s.Kind == SeedKindLiteral {
		size += len(s.Bytes)
	}
	return size
}

// PackSeeds packs seeds into an address config. Unused trailing bytes are zero,
// which terminates the list when unpacked.
func PackSeeds(seeds []Seed) ([AddressConfigSize]byte, error) {
	var config [AddressConfigSize]byte

	var offset int
	for _, s := range seeds {
		size := s.packedSize()
		if size == 0 {
			return config, errors.Wrapf(ErrInvalidExtraAccountMeta, "seed kind %d", s.Kind)
		}
		if offset+size > AddressConfigSize {
			return config, errors.Wrap(ErrInvalidExtraAccountMeta, "seeds exceed address config")
		}

		config[offset] = byte(s.Kind)
		switch s.Kind {
		case SeedKindLiteral:
			config[offset+1] = byte(len(s.Bytes))
			copy(config[offset+2:], s.Bytes)
		case SeedKindInstructionData:
			config[offset+1] = s.Index
			config[offset+2] = s.Length
		case SeedKindAccountKey:
			config[offset+1] = s.AccountIndex
		case SeedKindAccountData:
			config[offset+1] = s.AccountIndex
			config[offset+2] = s.Index
			config[offset+3] = s.Length
		}
		offset += size
	}

	return config, nil
}

// UnpackSeeds is the inverse of PackSeeds.
func UnpackSeeds(config [AddressConfigSize]byte) ([]Seed, error) {
	var seeds []Seed

	for i := 0; i < AddressConfigSize; {
		kind := SeedKind(config[i])
		if kind == SeedKindUninitialized {
			break
		}

		need := headerSize(kind)
		if need == 0 {
			return nil, errors.Wrapf(ErrInvalidExtraAccountMeta, "unknown seed kind %d at %d", kind, i)
		}
		if i+need > AddressConfigSize {
			return nil, errors.Wrapf(ErrInvalidExtraAccountMeta, "seed at %d overruns address config", i)
		}

		s := Seed{Kind: kind}
		switch kind {
		case SeedKindLiteral:
			length := int(config[i+1])
			if i+2+length > AddressConfigSize {
				return nil, errors.Wrapf(ErrInvalidExtraAccountMeta, "literal seed at %d overruns address config", i)
			}
			s.Bytes = append([]byte{}, config[i+2:i+2+length]...)
			need += length
		case SeedKindInstructionData:
			s.Index = config[i+1]
			s.Length = config[i+2]
		case SeedKindAccountKey:
			s.AccountIndex = config[i+1]
		case SeedKindAccountData:
			s.AccountIndex = config[i+1]
			s.Index = config[i+2]
			s.Length = config[i+3]
		}

		seeds = append(seeds, s)
		i += need
	}

	return seeds, nil
}
