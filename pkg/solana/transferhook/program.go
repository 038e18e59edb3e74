// Package transferhook resolves the extra accounts a Token-2022 transfer hook
// program requires on every transfer of its mint.
//
// Reference: https://github.com/solana-labs/solana-program-library/tree/master/libraries/tlv-account-resolution
package transferhook

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidExtraAccountMeta = errors.New("invalid extra account meta")
	ErrSeedOutOfRange          = errors.New("seed out of range")
)
