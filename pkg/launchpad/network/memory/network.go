// Package memory is an in memory network.Reader for tests and local tools.
package memory

import (
	"context"
	"crypto/ed25519"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"

	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/solana"
)

type watch struct {
	address  string
	onChange network.ChangeFunc
}

// Network holds accounts in memory. Watchers are notified synchronously from
// SetAccount and DeleteAccount.
type Network struct {
	mu       sync.Mutex
	accounts map[string]network.Account
	watches  map[network.Handle]*watch
	err      error

	reads map[string]int
	scans int
}

var _ network.Reader = (*Network)(nil)

func New() *Network {
	n := &Network{}
	n.reset()
	return n
}

func (n *Network) reset() {
	n.mu.Lock()
	n.accounts = make(map[string]network.Account)
	n.watches = make(map[network.Handle]*watch)
	n.reads = make(map[string]int)
	n.scans = 0
	n.err = nil
	n.mu.Unlock()
}

// SetAccount stores data owned by owner at address and notifies watchers.
func (n *Network) SetAccount(address, owner ed25519.PublicKey, data []byte) {
	key := base58.Encode(address)

	n.mu.Lock()
	n.accounts[key] = network.Account{
		Owner:    clone(owner),
		Lamports: 1,
		Data:     clone(data),
	}
	targets := n.watchersFor(key)
	n.mu.Unlock()

	for _, fn := range targets {
		fn(clone(data))
	}
}

// DeleteAccount removes the account and notifies watchers with empty data.
func (n *Network) DeleteAccount(address ed25519.PublicKey) {
	key := base58.Encode(address)

	n.mu.Lock()
	delete(n.accounts, key)
	targets := n.watchersFor(key)
	n.mu.Unlock()

	for _, fn := range targets {
		fn(nil)
	}
}

// InduceErrors makes every read and watch fail with ErrNetworkUnavailable.
func (n *Network) InduceErrors() {
	n.mu.Lock()
	n.err = network.ErrNetworkUnavailable
	n.mu.Unlock()
}

func (n *Network) StopInducingErrors() {
	n.mu.Lock()
	n.err = nil
	n.mu.Unlock()
}

// Reads returns how many times address has been read.
func (n *Network) Reads(address ed25519.PublicKey) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.reads[base58.Encode(address)]
}

// Scans returns how many program scans have run.
func (n *Network) Scans() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scans
}

// ActiveWatches returns the number of watches on address.
func (n *Network) ActiveWatches(address ed25519.PublicKey) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.watchersFor(base58.Encode(address)))
}

func (n *Network) GetAccount(ctx context.Context, address ed25519.PublicKey) (*network.Account, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	key := base58.Encode(address)

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return nil, false, n.err
	}

	n.reads[key]++
	account, ok := n.accounts[key]
	if !ok {
		return nil, false, nil
	}

	cloned := network.Account{
		Owner:    clone(account.Owner),
		Lamports: account.Lamports,
		Data:     clone(account.Data),
	}
	return &cloned, true, nil
}

func (n *Network) GetAccountBytes(ctx context.Context, address ed25519.PublicKey) ([]byte, bool, error) {
	account, ok, err := n.GetAccount(ctx, address)
	if err != nil || !ok {
		return nil, ok, err
	}
	return account.Data, true, nil
}

func (n *Network) GetAccountOwner(ctx context.Context, address ed25519.PublicKey) (ed25519.PublicKey, bool, error) {
	account, ok, err := n.GetAccount(ctx, address)
	if err != nil || !ok {
		return nil, ok, err
	}
	return account.Owner, true, nil
}

// GetAccountsMatching returns matches sorted by address so results are stable.
func (n *Network) GetAccountsMatching(ctx context.Context, program ed25519.PublicKey, filters ...solana.ProgramAccountsFilter) ([]network.KeyedAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return nil, n.err
	}
	n.scans++

	var res []network.KeyedAccount
	for key, account := range n.accounts {
		if string(account.Owner) != string(program) {
			continue
		}
		if !network.MatchesFilters(account.Data, filters...) {
			continue
		}

		address, _ := base58.Decode(key)
		res = append(res, network.KeyedAccount{
			Address: address,
			Account: network.Account{
				Owner:    clone(account.Owner),
				Lamports: account.Lamports,
				Data:     clone(account.Data),
			},
		})
	}

	sort.Slice(res, func(i, j int) bool {
		return base58.Encode(res[i].Address) < base58.Encode(res[j].Address)
	})
	return res, nil
}

func (n *Network) WatchAccount(ctx context.Context, address ed25519.PublicKey, onChange network.ChangeFunc) (network.Handle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return "", n.err
	}

	handle := network.Handle(uuid.New().String())
	n.watches[handle] = &watch{
		address:  base58.Encode(address),
		onChange: onChange,
	}
	return handle, nil
}

func (n *Network) Unwatch(handle network.Handle) {
	n.mu.Lock()
	delete(n.watches, handle)
	n.mu.Unlock()
}

func (n *Network) watchersFor(key string) []network.ChangeFunc {
	var res []network.ChangeFunc
	for _, w := range n.watches {
		if w.address == key {
			res = append(res, w.onChange)
		}
	}
	return res
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
