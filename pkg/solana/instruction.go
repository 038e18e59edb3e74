package solana

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// AccountMeta represents the account information required
// for building transactions.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta creates a new AccountMeta representing a writable
// account.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a new AccountMeta representing a readonly
// account.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

// Equal reports whether two metas reference the same account with the same
// permissions.
func (m AccountMeta) Equal(other AccountMeta) bool {
	return bytes.Equal(m.PublicKey, other.PublicKey) &&
		m.IsSigner == other.IsSigner &&
		m.IsWritable == other.IsWritable
}

func (m AccountMeta) String() string {
	flags := "r"
	if m.IsWritable {
		flags = "w"
	}
	if m.IsSigner {
		flags += "s"
	}
	return base58.Encode(m.PublicKey) + ":" + flags
}

// Instruction represents a transaction instruction. The first byte of Data is
// the opcode for programs that dispatch on a leading u8.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// Opcode returns the leading byte of the instruction data.
func (i Instruction) Opcode() (byte, bool) {
	if len(i.Data) == 0 {
		return 0, false
	}
	return i.Data[0], true
}
