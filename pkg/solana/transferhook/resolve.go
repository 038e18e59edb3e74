package transferhook

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/solana"
)

// AccountDataResolver reads account data for account-data seeds.
type AccountDataResolver interface {
	GetAccountBytes(ctx context.Context, address ed25519.PublicKey) ([]byte, bool, error)
}

// Resolve folds list into concrete account metas.
//
// Seed and program indices address the accounts in base followed by the
// accounts resolved so far, so an entry may only reference entries before it.
// Only the resolved accounts are returned. The resolver is only consulted for
// account-data seeds.
func Resolve(
	ctx context.Context,
	list *ExtraAccountMetaList,
	hookProgram ed25519.PublicKey,
	instructionData []byte,
	base []solana.AccountMeta,
	resolver AccountDataResolver,
) ([]solana.AccountMeta, error) {
	previous := make([]solana.AccountMeta, len(base), len(base)+len(list.Entries))
	copy(previous, base)

	for i, entry := range list.Entries {
		meta, err := resolveEntry(ctx, entry, hookProgram, instructionData, previous, resolver)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve extra account %d", i)
		}
		previous = append(previous, meta)
	}

	return previous[len(base):], nil
}

func resolveEntry(
	ctx context.Context,
	entry ExtraAccountMeta,
	hookProgram ed25519.PublicKey,
	instructionData []byte,
	previous []solana.AccountMeta,
	resolver AccountDataResolver,
) (solana.AccountMeta, error) {
	meta := solana.AccountMeta{
		IsSigner:   entry.IsSigner,
		IsWritable: entry.IsWritable,
	}

	var program ed25519.PublicKey
	switch {
	case entry.Discriminator == DiscriminatorFixed:
		meta.PublicKey = append(ed25519.PublicKey{}, entry.AddressConfig[:]...)
		return meta, nil
	case entry.Discriminator == DiscriminatorPDA:
		program = hookProgram
	case entry.Discriminator >= DiscriminatorExternalPDA:
		index := int(entry.Discriminator - DiscriminatorExternalPDA)
		if index >= len(previous) {
			return meta, errors.Wrapf(ErrSeedOutOfRange, "program account index %d of %d", index, len(previous))
		}
		program = previous[index].PublicKey
	default:
		return meta, errors.Wrapf(ErrInvalidExtraAccountMeta, "discriminator %d", entry.Discriminator)
	}

	seeds, err := UnpackSeeds(entry.AddressConfig)
	if err != nil {
		return meta, err
	}

	values := make([][]byte, 0, len(seeds))
	for _, s := range seeds {
		value, err := seedValue(ctx, s, instructionData, previous, resolver)
		if err != nil {
			return meta, err
		}
		values = append(values, value)
	}

	meta.PublicKey, err = solana.FindProgramAddress(program, values...)
	if err != nil {
		return meta, errors.Wrap(err, "failed to derive extra account")
	}
	return meta, nil
}

func seedValue(
	ctx context.Context,
	s Seed,
	instructionData []byte,
	previous []solana.AccountMeta,
	resolver AccountDataResolver,
) ([]byte, error) {
	switch s.Kind {
	case SeedKindLiteral:
		return s.Bytes, nil
	case SeedKindInstructionData:
		end := int(s.Index) + int(s.Length)
		if end > len(instructionData) {
			return nil, errors.Wrapf(ErrSeedOutOfRange, "instruction data [%d:%d] of %d bytes", s.Index, end, len(instructionData))
		}
		return instructionData[s.Index:end], nil
	case SeedKindAccountKey:
		if int(s.AccountIndex) >= len(previous) {
			return nil, errors.Wrapf(ErrSeedOutOfRange, "account key index %d of %d", s.AccountIndex, len(previous))
		}
		return previous[s.AccountIndex].PublicKey, nil
	case SeedKindAccountData:
		if int(s.AccountIndex) >= len(previous) {
			return nil, errors.Wrapf(ErrSeedOutOfRange, "account data index %d of %d", s.AccountIndex, len(previous))
		}
		if resolver == nil {
			return nil, errors.New("account data seed requires a resolver")
		}

		data, ok, err := resolver.GetAccountBytes(ctx, previous[s.AccountIndex].PublicKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get seed account data")
		}
		if !ok {
			return nil, errors.Wrapf(ErrSeedOutOfRange, "seed account %d not found", s.AccountIndex)
		}

		end := int(s.Index) + int(s.Length)
		if end > len(data) {
			return nil, errors.Wrapf(ErrSeedOutOfRange, "account data [%d:%d] of %d bytes", s.Index, end, len(data))
		}
		return data[s.Index:end], nil
	}

	return nil, errors.Wrapf(ErrInvalidExtraAccountMeta, "seed kind %d", s.Kind)
}
