package solana

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/letscook/cook-client/pkg/retry"
	"github.com/letscook/cook-client/pkg/retry/backoff"
)

const (
	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

const (
	confirmationStatusProcessed = "processed"
	confirmationStatusConfirmed = "confirmed"
	confirmationStatusFinalized = "finalized"
)

var (
	CommitmentProcessed = Commitment{Commitment: confirmationStatusProcessed}
	CommitmentConfirmed = Commitment{Commitment: confirmationStatusConfirmed}
	CommitmentFinalized = Commitment{Commitment: confirmationStatusFinalized}
)

var (
	ErrNoAccountInfo = errors.New("no account info")
)

// AccountInfo contains the Solana account information (not to be confused with a TokenAccount)
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

// KeyedAccountInfo is an AccountInfo returned from a program scan.
type KeyedAccountInfo struct {
	PublicKey ed25519.PublicKey
	AccountInfo
}

// ProgramAccountsFilter restricts the accounts returned by GetProgramAccounts.
//
// Reference: https://solana.com/docs/rpc/http/getprogramaccounts#filters
type ProgramAccountsFilter struct {
	DataSize *uint64
	Memcmp   *MemcmpFilter
}

// MemcmpFilter matches accounts whose data equals Bytes at Offset.
type MemcmpFilter struct {
	Offset uint64
	Bytes  []byte
}

// DataSizeFilter matches accounts with exactly size bytes of data.
func DataSizeFilter(size uint64) ProgramAccountsFilter {
	return ProgramAccountsFilter{DataSize: &size}
}

// MemcmpAt matches accounts with value at offset.
func MemcmpAt(offset uint64, value []byte) ProgramAccountsFilter {
	return ProgramAccountsFilter{Memcmp: &MemcmpFilter{Offset: offset, Bytes: value}}
}

func (f ProgramAccountsFilter) toRPC() interface{} {
	type memcmp struct {
		Offset uint64 `json:"offset"`
		Bytes  string `json:"bytes"`
	}

	if f.DataSize != nil {
		return struct {
			DataSize uint64 `json:"dataSize"`
		}{DataSize: *f.DataSize}
	}

	return struct {
		Memcmp memcmp `json:"memcmp"`
	}{
		Memcmp: memcmp{
			Offset: f.Memcmp.Offset,
			Bytes:  base58.Encode(f.Memcmp.Bytes),
		},
	}
}

// Client provides an interaction with the Solana JSON RPC API.
//
// Reference: https://docs.solana.com/apps/jsonrpc-api
type Client interface {
	GetAccountInfo(ed25519.PublicKey, Commitment) (AccountInfo, error)
	GetMultipleAccounts([]ed25519.PublicKey, Commitment) ([]*AccountInfo, error)
	GetProgramAccounts(program ed25519.PublicKey, commitment Commitment, filters ...ProgramAccountsFilter) ([]KeyedAccountInfo, error)
	GetSlot(Commitment) (uint64, error)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

type client struct {
	log     *logrus.Entry
	client  jsonrpc.RPCClient
	retrier *retry.Retrier
}

// New returns a client using the specified endpoint.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, nil)
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
//
// Only rate limiting and node health failures are retried. Everything else is
// surfaced to the caller on the first attempt.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log:    logrus.StandardLogger().WithField("type", "solana/client"),
		client: jsonrpc.NewClientWithOpts(endpoint, opts),
		retrier: retry.NewRetrier(
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.Limit(3),
			retry.BackoffWithJitter(backoff.BinaryExponential(time.Second), 10*time.Second, 0.1),
		),
	}
}

func (c *client) call(out interface{}, method string, params ...interface{}) error {
	// RPC calls carry no context of their own, so backoff is never cut short.
	_, err := c.retrier.Retry(context.Background(), func(context.Context) error {
		err := c.client.CallFor(out, method, params...)
		if err == nil {
			return nil
		}

		return c.handleRpcError(method, err)
	})

	return err
}

func (c *client) handleRpcError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return err
	}
	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Warn("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 || rpcErr.Code == rpcNodeUnhealthyCode {
		return errServiceError
	}

	return err
}

type rpcAccount struct {
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	Data       []string `json:"data"`
	Executable bool     `json:"executable"`
}

func (a *rpcAccount) toAccountInfo() (info AccountInfo, err error) {
	info.Owner, err = base58.Decode(a.Owner)
	if err != nil {
		return info, errors.Wrap(err, "invalid base58 encoded owner")
	}

	if len(a.Data) == 0 {
		return info, errors.New("missing account data")
	}
	info.Data, err = base64.StdEncoding.DecodeString(a.Data[0])
	if err != nil {
		return info, errors.Wrap(err, "invalid base64 encoded data")
	}

	info.Lamports = a.Lamports
	info.Executable = a.Executable
	return info, nil
}

type accountRPCConfig struct {
	Commitment string `json:"commitment"`
	Encoding   string `json:"encoding"`
}

func (c *client) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (AccountInfo, error) {
	var resp struct {
		Value *rpcAccount `json:"value"`
	}

	config := accountRPCConfig{
		Commitment: commitment.Commitment,
		Encoding:   "base64",
	}
	if err := c.call(&resp, "getAccountInfo", base58.Encode(account), config); err != nil {
		return AccountInfo{}, errors.Wrap(err, "getAccountInfo() failed to send request")
	}

	if resp.Value == nil {
		return AccountInfo{}, ErrNoAccountInfo
	}

	return resp.Value.toAccountInfo()
}

// GetMultipleAccounts returns account infos in the order requested. Accounts
// that do not exist are returned as nil entries.
func (c *client) GetMultipleAccounts(accounts []ed25519.PublicKey, commitment Commitment) ([]*AccountInfo, error) {
	if len(accounts) == 0 {
		return nil, nil
	}

	encoded := make([]string, len(accounts))
	for i, account := range accounts {
		encoded[i] = base58.Encode(account)
	}

	var resp struct {
		Value []*rpcAccount `json:"value"`
	}

	config := accountRPCConfig{
		Commitment: commitment.Commitment,
		Encoding:   "base64",
	}
	if err := c.call(&resp, "getMultipleAccounts", encoded, config); err != nil {
		return nil, errors.Wrap(err, "getMultipleAccounts() failed to send request")
	}

	if len(resp.Value) != len(accounts) {
		return nil, errors.Errorf("unexpected number of accounts: %d (expected %d)", len(resp.Value), len(accounts))
	}

	infos := make([]*AccountInfo, len(accounts))
	for i, value := range resp.Value {
		if value == nil {
			continue
		}

		info, err := value.toAccountInfo()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid account at index %d", i)
		}
		infos[i] = &info
	}

	return infos, nil
}

func (c *client) GetProgramAccounts(program ed25519.PublicKey, commitment Commitment, filters ...ProgramAccountsFilter) ([]KeyedAccountInfo, error) {
	rpcFilters := make([]interface{}, 0, len(filters))
	for _, filter := range filters {
		if filter.DataSize == nil && filter.Memcmp == nil {
			return nil, errors.New("empty program accounts filter")
		}
		rpcFilters = append(rpcFilters, filter.toRPC())
	}

	config := struct {
		Commitment string        `json:"commitment"`
		Encoding   string        `json:"encoding"`
		Filters    []interface{} `json:"filters,omitempty"`
	}{
		Commitment: commitment.Commitment,
		Encoding:   "base64",
		Filters:    rpcFilters,
	}

	var resp []struct {
		PubKey  string     `json:"pubkey"`
		Account rpcAccount `json:"account"`
	}
	if err := c.call(&resp, "getProgramAccounts", base58.Encode(program), config); err != nil {
		return nil, errors.Wrap(err, "getProgramAccounts() failed to send request")
	}

	accounts := make([]KeyedAccountInfo, 0, len(resp))
	for _, entry := range resp {
		key, err := base58.Decode(entry.PubKey)
		if err != nil {
			return nil, errors.Wrap(err, "invalid base58 encoded account key")
		}

		info, err := entry.Account.toAccountInfo()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid account %s", entry.PubKey)
		}

		accounts = append(accounts, KeyedAccountInfo{
			PublicKey:   key,
			AccountInfo: info,
		})
	}

	return accounts, nil
}

func (c *client) GetSlot(commitment Commitment) (slot uint64, err error) {
	// note: we have to wrap the commitment in an []interface{} otherwise the
	//       solana RPC node complains.
	if err := c.call(&slot, "getSlot", []interface{}{commitment}); err != nil {
		return 0, errors.Wrap(err, "getSlot() failed to send request")
	}

	return slot, nil
}
