// Package transaction assembles launchpad program instructions from decoded
// records and live account state.
package transaction

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/letscook/cook-client/pkg/launchpad/mint"
	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/metrics"
	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/cook"
)

const (
	metricsStructName = "transaction.Builder"

	buildDurationMetricName = "Launchpad/Build/"
	buildFailureMetricName  = "Launchpad/BuildFailure/"
)

// Result is a built instruction along with any keys, beyond the user's, that
// must sign for it.
type Result struct {
	Instruction solana.Instruction
	Signers     []ed25519.PrivateKey
}

// Builder builds launchpad instructions. It is safe for concurrent use.
type Builder struct {
	log      *logrus.Entry
	reader   network.Reader
	mints    *mint.Resolver
	settings *network.Settings

	now      func() time.Time
	newSeed  func() ([32]byte, error)
	newAsset func() (ed25519.PrivateKey, error)
	pick     func(n int) (int, error)
}

func NewBuilder(reader network.Reader, mints *mint.Resolver, settings *network.Settings) *Builder {
	return &Builder{
		log:      logrus.StandardLogger().WithField("type", "launchpad/transaction"),
		reader:   reader,
		mints:    mints,
		settings: settings,
		now:      time.Now,
		newSeed:  randomSeed,
		newAsset: randomAsset,
		pick:     randomIndex,
	}
}

// BuildInstruction builds the instruction for kind. Precondition failures
// are returned as one of the package errors and no instruction is produced.
func (b *Builder) BuildInstruction(ctx context.Context, kind ActionKind, c *Context) (*solana.Instruction, error) {
	res, err := b.Build(ctx, kind, c)
	if err != nil {
		return nil, err
	}
	return &res.Instruction, nil
}

// Build builds the instruction for kind along with its additional signers.
func (b *Builder) Build(ctx context.Context, kind ActionKind, c *Context) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Build")
	tracer.AddAttribute("action", kind.String())
	defer tracer.End()

	start := time.Now()

	log := b.log.WithFields(logrus.Fields{
		"method": "Build",
		"action": kind.String(),
	})
	if c != nil && c.User != nil {
		log = log.WithField("user", solana.PublicKeyString(c.User))
	}

	res, err := b.build(ctx, newDeriver(), kind, c)
	if err != nil {
		metrics.RecordCount(ctx, buildFailureMetricName+kind.String(), 1)
		if IsPreconditionFailure(err) {
			log.WithError(err).Debug("precondition failed")
		} else {
			tracer.OnError(err)
			log.WithError(err).Warn("failure building instruction")
		}
		return nil, err
	}

	metrics.RecordDuration(ctx, buildDurationMetricName+kind.String(), time.Since(start))
	return res, nil
}

func (b *Builder) build(ctx context.Context, d *deriver, kind ActionKind, c *Context) (*Result, error) {
	if c == nil || len(c.User) != ed25519.PublicKeySize {
		return nil, errors.New("a user is required")
	}

	switch kind {
	case ActionBuy:
		return b.buildBuy(ctx, d, c)
	case ActionList:
		return b.buildList(ctx, d, c)
	case ActionUnlist:
		return b.buildUnlist(ctx, d, c)
	case ActionClaim:
		return b.buildClaim(ctx, d, c)
	case ActionMint:
		return b.buildMint(ctx, d, c, false)
	case ActionMintRandom:
		return b.buildMint(ctx, d, c, true)
	case ActionWrap:
		return b.buildWrap(ctx, d, c)
	case ActionSwap:
		return b.buildSwap(ctx, d, c)
	case ActionUpdateLiquidity:
		return b.buildLiquidity(ctx, d, c, false)
	case ActionRemoveLiquidity:
		return b.buildLiquidity(ctx, d, c, true)
	}
	return nil, errors.Wrapf(ErrUnsupportedAction, "action %d", kind)
}

// fetch decodes the account at address into record. An absent or empty
// account reports false.
func (b *Builder) fetch(ctx context.Context, address ed25519.PublicKey, record cook.Record) (bool, error) {
	data, ok, err := b.reader.GetAccountBytes(ctx, address)
	if err != nil {
		return false, err
	} else if !ok || len(data) == 0 {
		return false, nil
	}

	if err := record.Unmarshal(data); err != nil {
		return false, errors.Wrapf(err, "invalid %s account %s", record.Kind(), solana.PublicKeyString(address))
	}
	return true, nil
}

func (b *Builder) warnDuplicates(address ed25519.PublicKey, duplicates []string) {
	if len(duplicates) == 0 {
		return
	}
	b.log.WithFields(logrus.Fields{
		"account": solana.PublicKeyString(address),
		"plugins": duplicates,
	}).Warn("record has duplicate plugins, using the last occurrence")
}

func randomSeed() ([32]byte, error) {
	var seed [32]byte
	public, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return seed, errors.Wrap(err, "failed to generate seed")
	}
	copy(seed[:], public)
	return seed, nil
}

func randomAsset() (ed25519.PrivateKey, error) {
	_, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate asset key")
	}
	return private, nil
}

func randomIndex(n int) (int, error) {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Wrap(err, "failed to pick index")
	}
	return int(i.Int64()), nil
}
