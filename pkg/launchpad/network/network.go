// Package network is the read side of the chain as seen by the launchpad:
// account reads, owner scoped program scans and change notifications.
package network

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/solana"
)

var (
	// ErrNetworkUnavailable wraps any transport failure. It is propagated to
	// callers and never retried by consumers of a Reader.
	ErrNetworkUnavailable = errors.New("network unavailable")
)

// Handle identifies an active account watch.
type Handle string

// ChangeFunc receives the full account data after every change. An empty
// slice means the account was closed.
type ChangeFunc func(data []byte)

// Account is the subset of account state the launchpad reads.
type Account struct {
	Owner    ed25519.PublicKey
	Lamports uint64
	Data     []byte
}

// KeyedAccount is an account returned by a program scan.
type KeyedAccount struct {
	Address ed25519.PublicKey
	Account
}

// Reader provides account state.
//
// Missing accounts are reported with ok set to false and no error. Transport
// failures are wrapped with ErrNetworkUnavailable.
type Reader interface {
	GetAccount(ctx context.Context, address ed25519.PublicKey) (*Account, bool, error)

	GetAccountBytes(ctx context.Context, address ed25519.PublicKey) ([]byte, bool, error)

	GetAccountOwner(ctx context.Context, address ed25519.PublicKey) (ed25519.PublicKey, bool, error)

	// GetAccountsMatching scans the accounts owned by program that pass every
	// filter.
	GetAccountsMatching(ctx context.Context, program ed25519.PublicKey, filters ...solana.ProgramAccountsFilter) ([]KeyedAccount, error)

	// WatchAccount calls onChange for every change to address until the
	// returned handle is passed to Unwatch. onChange is never called
	// concurrently for the same handle.
	WatchAccount(ctx context.Context, address ed25519.PublicKey, onChange ChangeFunc) (Handle, error)

	// Unwatch is idempotent and safe to call with an unknown handle.
	Unwatch(handle Handle)
}

// MatchesFilters evaluates program scan filters against account data, the way
// the RPC node does.
func MatchesFilters(data []byte, filters ...solana.ProgramAccountsFilter) bool {
	for _, f := range filters {
		if f.DataSize != nil && uint64(len(data)) != *f.DataSize {
			return false
		}

		if f.Memcmp != nil {
			end := f.Memcmp.Offset + uint64(len(f.Memcmp.Bytes))
			if end > uint64(len(data)) {
				return false
			}
			if string(data[f.Memcmp.Offset:end]) != string(f.Memcmp.Bytes) {
				return false
			}
		}
	}
	return true
}

func unavailable(err error, format string, args ...interface{}) error {
	return errors.Wrapf(ErrNetworkUnavailable, format+": %v", append(args, err)...)
}
