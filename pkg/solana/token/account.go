package token

import (
	"crypto/ed25519"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	codec "github.com/letscook/cook-client/pkg/solana/binary"
)

// AccountSize is the size of the base token account state.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L125
const AccountSize = 165

const optionSize = 4

type AccountState byte

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

func (s AccountState) String() string {
	switch s {
	case AccountStateUninitialized:
		return "uninitialized"
	case AccountStateInitialized:
		return "initialized"
	case AccountStateFrozen:
		return "frozen"
	}
	return "unknown"
}

// Account is a token account, such as the associated account a launchpad
// user holds a collection or whitelist token in.
type Account struct {
	Mint   ed25519.PublicKey
	Owner  ed25519.PublicKey
	Amount uint64

	// Delegate may move up to DelegatedAmount when set.
	Delegate        ed25519.PublicKey
	State           AccountState
	IsNative        *uint64
	DelegatedAmount uint64
	CloseAuthority  ed25519.PublicKey
}

// Balance is Amount scaled by the mint's decimals.
func (a *Account) Balance(decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(a.Amount), -int32(decimals))
}

func (a *Account) Marshal() []byte {
	b := make([]byte, AccountSize)

	var offset int
	codec.PutKey32(b, a.Mint, &offset)
	codec.PutKey32(b[offset:], a.Owner, &offset)
	codec.PutUint64(b[offset:], a.Amount, &offset)
	codec.PutOptionalKey32(b[offset:], a.Delegate, &offset, optionSize)
	codec.PutUint8(b[offset:], uint8(a.State), &offset)
	codec.PutOptionalUint64(b[offset:], a.IsNative, &offset, optionSize)
	codec.PutUint64(b[offset:], a.DelegatedAmount, &offset)
	codec.PutOptionalKey32(b[offset:], a.CloseAuthority, &offset, optionSize)

	return b
}

// UnmarshalAccount parses a token account of either token program. Extension
// data after the base state of a Token-2022 account is ignored.
func UnmarshalAccount(b []byte) (*Account, error) {
	if len(b) < AccountSize {
		return nil, errors.Errorf("token account too short: %d bytes", len(b))
	}
	if len(b) > AccountSize && b[AccountSize] != byte(AccountTypeAccount) {
		return nil, errors.Errorf("not a token account: account type %d", b[AccountSize])
	}

	var a Account
	var offset int
	codec.GetKey32(b, &a.Mint, &offset)
	codec.GetKey32(b[offset:], &a.Owner, &offset)
	codec.GetUint64(b[offset:], &a.Amount, &offset)
	codec.GetOptionalKey32(b[offset:], &a.Delegate, &offset, optionSize)

	var state uint8
	codec.GetUint8(b[offset:], &state, &offset)
	a.State = AccountState(state)

	codec.GetOptionalUint64(b[offset:], &a.IsNative, &offset, optionSize)
	codec.GetUint64(b[offset:], &a.DelegatedAmount, &offset)
	codec.GetOptionalKey32(b[offset:], &a.CloseAuthority, &offset, optionSize)

	if a.State > AccountStateFrozen {
		return nil, errors.Errorf("invalid token account state %d", state)
	}
	return &a, nil
}
