package cook

import (
	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/binary"
)

func putInstructionType(e *binary.Encoder, t InstructionType) {
	e.Uint8(uint8(t))
}

func newInstruction(e *binary.Encoder, accounts []solana.AccountMeta) (solana.Instruction, error) {
	data, err := e.Result()
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to encode instruction args")
	}

	for i, account := range accounts {
		if len(account.PublicKey) == 0 {
			return solana.Instruction{}, errors.Errorf("missing account at index %d", i)
		}
	}

	return solana.Instruction{
		Program: PROGRAM_ID,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: accounts,
	}, nil
}
