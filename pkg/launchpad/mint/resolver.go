// Package mint resolves token mints into the display and program data the
// launchpad needs: token program, decimals, extensions, name, symbol and icon.
package mint

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	xrate "golang.org/x/time/rate"

	"github.com/letscook/cook-client/pkg/cache"
	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/metrics"
	"github.com/letscook/cook-client/pkg/rate"
	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/metaplex"
	"github.com/letscook/cook-client/pkg/solana/token"
)

const (
	metricsStructName = "mint.Resolver"

	unknownName = "Unknown"

	deprecatedIPFSGateway   = "https://cf-ipfs.com/"
	replacementIPFSGateway  = "https://gateway.moralisipfs.com/"
	maxMetadataDocumentSize = 1 << 20
)

var (
	ErrMintNotFound = errors.New("mint not found")

	// ErrMetadataFetchTimeout is logged when the off chain metadata document
	// does not arrive in time. It is never returned.
	ErrMetadataFetchTimeout = errors.New("metadata fetch timed out")
)

// Data is a resolved mint.
type Data struct {
	Address      ed25519.PublicKey
	TokenProgram ed25519.PublicKey
	Mint         *token.Mint

	Name   string
	Symbol string
	URI    string
	Icon   string

	Extensions token.ExtensionFlags
}

func (d *Data) Decimals() uint8 {
	return d.Mint.Decimals
}

// TransferHookProgram returns the mint's hook program, or nil.
func (d *Data) TransferHookProgram() ed25519.PublicKey {
	return d.Mint.TransferHookProgram()
}

// Resolver resolves and caches mint data.
type Resolver struct {
	log      *logrus.Entry
	conf     *conf
	reader   network.Reader
	settings *network.Settings

	httpClient *http.Client
	limiter    rate.Limiter
	cache      cache.Cache[*Data]
}

func NewResolver(reader network.Reader, settings *network.Settings, configProvider ConfigProvider) *Resolver {
	conf := configProvider()
	ctx := context.Background()

	return &Resolver{
		log:        logrus.StandardLogger().WithField("type", "launchpad/mint"),
		conf:       conf,
		reader:     reader,
		settings:   settings,
		httpClient: &http.Client{},
		limiter:    rate.NewLocalRateLimiter(xrate.Limit(conf.metadataFetchRate.Get(ctx))),
		cache:      cache.NewCache[*Data](int(conf.metadataCacheBudget.Get(ctx))),
	}
}

// Get returns the resolved data for address. Results are cached, so the
// returned value must not be modified. A result whose icon fetch failed is
// returned with the placeholder icon but not cached.
func (r *Resolver) Get(ctx context.Context, address ed25519.PublicKey) (*Data, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Get")
	defer tracer.End()

	key := solana.PublicKeyString(address)
	log := r.log.WithFields(logrus.Fields{
		"method": "Get",
		"mint":   key,
	})

	if cached, ok := r.cache.Retrieve(key); ok {
		return cached, nil
	}

	account, ok, err := r.reader.GetAccount(ctx, address)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	} else if !ok {
		return nil, errors.Wrapf(ErrMintNotFound, "no account at %s", key)
	}

	if !token.IsTokenProgram(account.Owner) {
		return nil, errors.Wrapf(ErrMintNotFound, "%s is owned by %s", key, solana.PublicKeyString(account.Owner))
	}

	mint, err := token.UnmarshalMint(account.Data)
	if err != nil {
		return nil, errors.Wrapf(ErrMintNotFound, "%s: %v", key, err)
	}

	data := &Data{
		Address:      address,
		TokenProgram: account.Owner,
		Mint:         mint,
		Extensions:   mint.ExtensionFlags(),
	}

	complete, err := r.describe(ctx, log, data)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	}

	if complete {
		r.cache.Insert(key, data, 1)
	}
	return data, nil
}

// describe fills in the name, symbol, uri and icon. It reports false when the
// icon fell back to the placeholder because the document could not be read.
func (r *Resolver) describe(ctx context.Context, log *logrus.Entry, data *Data) (bool, error) {
	if string(data.Address) == string(token.WrappedSolMint) {
		data.Name = "Wrapped " + r.settings.NativeTokenName
		data.Symbol = "W" + r.settings.NativeTokenName
		data.Icon = r.settings.NativeTokenIcon
		return true, nil
	}

	placeholder := r.conf.placeholderIcon.Get(ctx)

	var name, symbol, uri string
	var ok bool
	if string(data.TokenProgram) == string(token.Program2022Key) && data.Mint.MetadataPointer != nil {
		name, symbol, uri, ok = data.Mint.Metadata()
	} else {
		var err error
		name, symbol, uri, ok, err = r.metaplexMetadata(ctx, data.Address)
		if err != nil {
			return false, err
		}
	}

	if !ok {
		data.Name = unknownName
		data.Symbol = unknownName
		data.Icon = placeholder
		return true, nil
	}

	data.Name = name
	data.Symbol = symbol
	data.URI = normalizeURI(uri)
	data.Icon = placeholder

	if data.URI == "" {
		return true, nil
	}

	icon, err := r.fetchImage(ctx, data.URI)
	switch {
	case err == nil:
		if icon != "" {
			data.Icon = icon
		}
		return true, nil
	case ctx.Err() != nil:
		return false, ctx.Err()
	case errors.Is(err, ErrMetadataFetchTimeout):
		log.WithField("uri", data.URI).Info("metadata fetch timed out, using placeholder icon")
	default:
		log.WithError(err).WithField("uri", data.URI).Warn("failure fetching metadata, using placeholder icon")
	}
	return false, nil
}

// normalizeURI moves documents off IPFS gateways that no longer serve them.
func normalizeURI(uri string) string {
	return strings.Replace(uri, deprecatedIPFSGateway, replacementIPFSGateway, 1)
}

func (r *Resolver) metaplexMetadata(ctx context.Context, mint ed25519.PublicKey) (name, symbol, uri string, ok bool, err error) {
	address, _, err := metaplex.GetMetadataAddress(&metaplex.GetMetadataAddressArgs{Mint: mint})
	if err != nil {
		return "", "", "", false, errors.Wrap(err, "failure deriving metadata address")
	}

	raw, ok, err := r.reader.GetAccountBytes(ctx, address)
	if err != nil || !ok {
		return "", "", "", false, err
	}

	metadata, err := metaplex.UnmarshalMetadata(raw)
	if err != nil {
		r.log.WithError(err).WithField("account", solana.PublicKeyString(address)).Warn("invalid metaplex metadata")
		return "", "", "", false, nil
	}
	return metadata.Data.Name, metadata.Data.Symbol, metadata.Data.Uri, true, nil
}

// fetchImage reads the image field of the json document at uri.
func (r *Resolver) fetchImage(ctx context.Context, uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", errors.Wrap(err, "invalid metadata uri")
	}

	ctx, cancel := context.WithTimeout(ctx, r.conf.metadataFetchTimeout.Get(ctx))
	defer cancel()

	if err := r.limiter.Wait(ctx, parsed.Host); err != nil {
		return "", r.classify(ctx, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", errors.Wrap(err, "invalid metadata request")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", r.classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("metadata request returned %d", resp.StatusCode)
	}

	var document struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetadataDocumentSize)).Decode(&document); err != nil {
		return "", r.classify(ctx, errors.Wrap(err, "invalid metadata document"))
	}
	return document.Image, nil
}

func (r *Resolver) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrap(ErrMetadataFetchTimeout, err.Error())
	}
	return err
}
