package network

import (
	"context"
	"crypto/ed25519"
	"sync"
	"time"

	gsolana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/letscook/cook-client/pkg/metrics"
	"github.com/letscook/cook-client/pkg/retry"
	"github.com/letscook/cook-client/pkg/retry/backoff"
	"github.com/letscook/cook-client/pkg/solana"
)

const (
	metricsStructName = "network.RPCReader"

	maxSubscribeAttempts = 3
	maxResubscribeDelay  = 30 * time.Second
)

type subscription struct {
	address ed25519.PublicKey
	sub     *ws.AccountSubscription
	socket  *ws.Client

	// cancel stops a resubscribe in progress.
	cancel context.CancelFunc

	// closed is set before Unsubscribe so the receive loop can tell a
	// requested shutdown from a dropped connection.
	closed bool
}

var _ Reader = (*RPCReader)(nil)

// RPCReader is a Reader over JSON-RPC and the pubsub websocket.
type RPCReader struct {
	log        *logrus.Entry
	client     solana.Client
	commitment solana.Commitment
	wsEndpoint string

	mu      sync.Mutex
	ws      *ws.Client
	watches map[Handle]*subscription
}

// NewRPCReader returns a Reader that reads through client and watches through
// the pubsub endpoint. The websocket is dialed on the first watch.
func NewRPCReader(client solana.Client, wsEndpoint string) *RPCReader {
	return &RPCReader{
		log:        logrus.StandardLogger().WithField("type", "launchpad/network/rpc"),
		client:     client,
		commitment: solana.CommitmentConfirmed,
		wsEndpoint: wsEndpoint,
		watches:    make(map[Handle]*subscription),
	}
}

func (r *RPCReader) GetAccount(ctx context.Context, address ed25519.PublicKey) (*Account, bool, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetAccount")
	defer tracer.End()

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	info, err := r.client.GetAccountInfo(address, r.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, false, nil
	} else if err != nil {
		tracer.OnError(err)
		return nil, false, unavailable(err, "get account %s", solana.PublicKeyString(address))
	}

	return &Account{
		Owner:    info.Owner,
		Lamports: info.Lamports,
		Data:     info.Data,
	}, true, nil
}

func (r *RPCReader) GetAccountBytes(ctx context.Context, address ed25519.PublicKey) ([]byte, bool, error) {
	account, ok, err := r.GetAccount(ctx, address)
	if err != nil || !ok {
		return nil, ok, err
	}
	return account.Data, true, nil
}

func (r *RPCReader) GetAccountOwner(ctx context.Context, address ed25519.PublicKey) (ed25519.PublicKey, bool, error) {
	account, ok, err := r.GetAccount(ctx, address)
	if err != nil || !ok {
		return nil, ok, err
	}
	return account.Owner, true, nil
}

func (r *RPCReader) GetAccountsMatching(ctx context.Context, program ed25519.PublicKey, filters ...solana.ProgramAccountsFilter) ([]KeyedAccount, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetAccountsMatching")
	defer tracer.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos, err := r.client.GetProgramAccounts(program, r.commitment, filters...)
	if err != nil {
		tracer.OnError(err)
		return nil, unavailable(err, "scan program %s", solana.PublicKeyString(program))
	}
	tracer.AddAttribute("accounts", len(infos))

	accounts := make([]KeyedAccount, len(infos))
	for i, info := range infos {
		accounts[i] = KeyedAccount{
			Address: info.PublicKey,
			Account: Account{
				Owner:    info.Owner,
				Lamports: info.Lamports,
				Data:     info.Data,
			},
		}
	}
	return accounts, nil
}

// WatchAccount subscribes to address. A subscription that drops is
// resubscribed on the same handle, with the account read again so no change
// made while disconnected is missed, until the handle is unwatched.
func (r *RPCReader) WatchAccount(ctx context.Context, address ed25519.PublicKey, onChange ChangeFunc) (Handle, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "WatchAccount")
	defer tracer.End()

	log := r.log.WithFields(logrus.Fields{
		"method":  "WatchAccount",
		"account": solana.PublicKeyString(address),
	})

	socket, sub, err := r.subscribe(ctx, log, address,
		retry.Limit(maxSubscribeAttempts),
		retry.BackoffWithJitter(backoff.BinaryExponential(250*time.Millisecond), 2*time.Second, 0.1),
	)
	if err != nil {
		tracer.OnError(err)
		return "", unavailable(err, "watch account %s", solana.PublicKeyString(address))
	}

	// The watch outlives the call that created it.
	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	handle := Handle(uuid.New().String())
	s := &subscription{address: address, sub: sub, socket: socket, cancel: cancel}

	r.mu.Lock()
	r.watches[handle] = s
	r.mu.Unlock()

	go r.receive(watchCtx, log.WithField("handle", handle), handle, s, onChange)

	return handle, nil
}

func (r *RPCReader) subscribe(ctx context.Context, log *logrus.Entry, address ed25519.PublicKey, strategies ...retry.Strategy) (*ws.Client, *ws.AccountSubscription, error) {
	var socket *ws.Client
	var sub *ws.AccountSubscription
	_, err := retry.Retry(
		ctx,
		func(ctx context.Context) error {
			client, err := r.dial(ctx)
			if err != nil {
				return err
			}

			s, err := client.AccountSubscribeWithOpts(gsolana.PublicKeyFromBytes(address), rpc.CommitmentConfirmed, gsolana.EncodingBase64)
			if err != nil {
				log.WithError(err).Debug("failure subscribing, redialing")
				r.resetSocket(client)
				return err
			}
			socket, sub = client, s
			return nil
		},
		strategies...,
	)
	return socket, sub, err
}

func (r *RPCReader) receive(ctx context.Context, log *logrus.Entry, handle Handle, s *subscription, onChange ChangeFunc) {
	defer s.cancel()

	for {
		r.mu.Lock()
		sub := s.sub
		r.mu.Unlock()

		got, err := sub.Recv()
		if err == nil && got != nil {
			var data []byte
			if got.Value.Account.Data != nil {
				data = got.Value.Account.Data.GetBinary()
			}

			log.WithField("slot", got.Context.Slot).Trace("account changed")
			onChange(data)
			continue
		}

		r.mu.Lock()
		closed := s.closed
		socket := s.socket
		r.mu.Unlock()
		if closed {
			return
		}

		log.WithError(err).Warn("account subscription dropped, resubscribing")

		// An error means the socket itself failed. A clean end only closed
		// this subscription.
		if err != nil {
			r.resetSocket(socket)
		}

		socket, sub, err = r.subscribe(ctx, log, s.address,
			retry.BackoffWithJitter(backoff.BinaryExponential(250*time.Millisecond), maxResubscribeDelay, 0.1),
		)
		if err != nil {
			log.WithError(err).Debug("resubscribe abandoned")
			return
		}

		r.mu.Lock()
		closed = s.closed
		if !closed {
			s.sub, s.socket = sub, socket
		}
		r.mu.Unlock()
		if closed {
			sub.Unsubscribe()
			return
		}

		data, ok, err := r.GetAccountBytes(ctx, s.address)
		if err != nil {
			log.WithError(err).Warn("failure reading account after resubscribe")
			continue
		}
		if !ok {
			data = nil
		}
		onChange(data)
	}
}

func (r *RPCReader) Unwatch(handle Handle) {
	r.mu.Lock()
	s, ok := r.watches[handle]
	var sub *ws.AccountSubscription
	if ok {
		s.closed = true
		sub = s.sub
		delete(r.watches, handle)
	}
	r.mu.Unlock()

	if ok {
		s.cancel()
		sub.Unsubscribe()
	}
}

// Close releases every watch and the websocket.
func (r *RPCReader) Close() {
	r.mu.Lock()
	watches := r.watches
	r.watches = make(map[Handle]*subscription)
	subs := make([]*ws.AccountSubscription, 0, len(watches))
	for _, s := range watches {
		s.closed = true
		subs = append(subs, s.sub)
	}
	client := r.ws
	r.ws = nil
	r.mu.Unlock()

	for _, s := range watches {
		s.cancel()
	}
	for _, sub := range subs {
		sub.Unsubscribe()
	}
	if client != nil {
		client.Close()
	}
}

func (r *RPCReader) dial(ctx context.Context) (*ws.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ws != nil {
		return r.ws, nil
	}
	if r.wsEndpoint == "" {
		return nil, errors.New("no websocket endpoint configured")
	}

	// The socket outlives the watch that dialed it.
	client, err := ws.Connect(context.WithoutCancel(ctx), r.wsEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failure connecting to websocket")
	}
	r.ws = client
	return client, nil
}

func (r *RPCReader) resetSocket(client *ws.Client) {
	r.mu.Lock()
	if r.ws == client {
		r.ws = nil
	}
	r.mu.Unlock()

	client.Close()
}
