package transaction

import (
	"context"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/launchpad/mint"
	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/transferhook"
)

// appendTransferHook appends the hook program, its validation account and the
// resolved extra accounts when the mint declares a transfer hook. Nothing is
// appended when there is no hook or the validation account does not exist.
func (b *Builder) appendTransferHook(ctx context.Context, accounts []solana.AccountMeta, m *mint.Data) ([]solana.AccountMeta, error) {
	hookProgram := m.TransferHookProgram()
	if hookProgram == nil {
		return accounts, nil
	}

	validation, _, err := transferhook.GetExtraAccountMetasAddress(&transferhook.GetExtraAccountMetasAddressArgs{
		Mint:        m.Address,
		HookProgram: hookProgram,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive transfer hook validation address")
	}

	data, ok, err := b.reader.GetAccountBytes(ctx, validation)
	if err != nil {
		return nil, err
	} else if !ok {
		return accounts, nil
	}

	list, err := transferhook.UnmarshalExtraAccountMetaList(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid transfer hook validation account %s", solana.PublicKeyString(validation))
	}

	// Extra accounts are resolved against each other only, with no
	// instruction data.
	extra, err := transferhook.Resolve(ctx, list, hookProgram, []byte{}, nil, b.reader)
	if err != nil {
		return nil, err
	}

	res := make([]solana.AccountMeta, 0, len(accounts)+2+len(extra))
	res = append(res, accounts...)
	res = append(res,
		solana.NewAccountMeta(hookProgram, false),
		solana.NewAccountMeta(validation, false),
	)
	return append(res, extra...), nil
}
