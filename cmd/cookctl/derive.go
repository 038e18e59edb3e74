package main

import (
	"crypto/ed25519"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/cook"
	"github.com/letscook/cook-client/pkg/solana/token"
)

type deriver struct {
	args   []string
	derive func(args []string) (ed25519.PublicKey, uint8, error)
}

var derivers = map[string]deriver{
	"collection": {[]string{"page"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		return cook.GetCollectionAddress(&cook.GetCollectionAddressArgs{PageName: a[0]})
	}},
	"launch": {[]string{"page"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		return cook.GetLaunchAddress(&cook.GetLaunchAddressArgs{PageName: a[0]})
	}},
	"join": {[]string{"user", "page"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		user, err := parseKey("user", a[0])
		if err != nil {
			return nil, 0, err
		}
		return cook.GetJoinAddress(&cook.GetJoinAddressArgs{User: user, PageName: a[1]})
	}},
	"assignment": {[]string{"user", "collection-mint"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		keys, err := parseKeys([]string{"user", "collection-mint"}, a)
		if err != nil {
			return nil, 0, err
		}
		return cook.GetAssignmentAddress(&cook.GetAssignmentAddressArgs{User: keys[0], CollectionMint: keys[1]})
	}},
	"user-data": {[]string{"user"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		user, err := parseKey("user", a[0])
		if err != nil {
			return nil, 0, err
		}
		return cook.GetUserDataAddress(&cook.GetUserDataAddressArgs{User: user})
	}},
	"temp-wsol": {[]string{"user"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		user, err := parseKey("user", a[0])
		if err != nil {
			return nil, 0, err
		}
		return cook.GetTempWSOLAddress(&cook.GetTempWSOLAddressArgs{User: user})
	}},
	"program-sol": {nil, func([]string) (ed25519.PublicKey, uint8, error) {
		return cook.GetProgramSolAddress()
	}},
	"program-data": {nil, func([]string) (ed25519.PublicKey, uint8, error) {
		return cook.GetProgramDataAddress()
	}},
	"listing": {[]string{"asset"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		asset, err := parseKey("asset", a[0])
		if err != nil {
			return nil, 0, err
		}
		return cook.GetListingEntryAddress(&cook.GetListingEntryAddressArgs{Asset: asset})
	}},
	"summary": {[]string{"collection-mint"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		collection, err := parseKey("collection-mint", a[0])
		if err != nil {
			return nil, 0, err
		}
		return cook.GetMarketplaceSummaryAddress(&cook.GetMarketplaceSummaryAddressArgs{CollectionMint: collection})
	}},
	"amm": {[]string{"base-mint", "quote-mint"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		keys, err := parseKeys([]string{"base-mint", "quote-mint"}, a)
		if err != nil {
			return nil, 0, err
		}
		return cook.GetAMMAddress(&cook.GetAMMAddressArgs{BaseMint: keys[0], QuoteMint: keys[1]})
	}},
	"lp-mint": {[]string{"amm"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		amm, err := parseKey("amm", a[0])
		if err != nil {
			return nil, 0, err
		}
		return cook.GetLPMintAddress(&cook.GetLPMintAddressArgs{AMM: amm})
	}},
	"trade-to-earn": {[]string{"amm"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		amm, err := parseKey("amm", a[0])
		if err != nil {
			return nil, 0, err
		}
		return cook.GetTradeToEarnAddress(&cook.GetTradeToEarnAddressArgs{AMM: amm})
	}},
	"launch-date": {[]string{"amm", "day"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		amm, err := parseKey("amm", a[0])
		if err != nil {
			return nil, 0, err
		}
		day, err := parseUint32("day", a[1])
		if err != nil {
			return nil, 0, err
		}
		return cook.GetLaunchDateAddress(&cook.GetLaunchDateAddressArgs{AMM: amm, Day: day})
	}},
	"user-date": {[]string{"amm", "user", "day"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		keys, err := parseKeys([]string{"amm", "user"}, a[:2])
		if err != nil {
			return nil, 0, err
		}
		day, err := parseUint32("day", a[2])
		if err != nil {
			return nil, 0, err
		}
		return cook.GetUserDateAddress(&cook.GetUserDateAddressArgs{AMM: keys[0], User: keys[1], Day: day})
	}},
	"time-series": {[]string{"amm", "index"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		amm, err := parseKey("amm", a[0])
		if err != nil {
			return nil, 0, err
		}
		index, err := parseUint32("index", a[1])
		if err != nil {
			return nil, 0, err
		}
		return cook.GetTimeSeriesAddress(&cook.GetTimeSeriesAddressArgs{AMM: amm, Index: index})
	}},
	"ata": {[]string{"wallet", "mint", "token-program"}, func(a []string) (ed25519.PublicKey, uint8, error) {
		keys, err := parseKeys([]string{"wallet", "mint", "token-program"}, a)
		if err != nil {
			return nil, 0, err
		}
		if !token.IsTokenProgram(keys[2]) {
			return nil, 0, errors.Errorf("%s is not a token program", a[2])
		}
		address, err := token.GetAssociatedAccountWithProgram(keys[0], keys[1], keys[2])
		return address, 0, err
	}},
}

func deriverKinds() []string {
	kinds := make([]string, 0, len(derivers))
	for kind := range derivers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func deriveAddress(kind string, args []string) (ed25519.PublicKey, uint8, error) {
	d, ok := derivers[kind]
	if !ok {
		return nil, 0, errors.Errorf("unknown address kind %q", kind)
	}
	if len(args) != len(d.args) {
		return nil, 0, errors.Errorf("%s takes %d arguments %v, got %d", kind, len(d.args), d.args, len(args))
	}
	return d.derive(args)
}

func parseKey(name, value string) (ed25519.PublicKey, error) {
	key, err := solana.PublicKeyFromString(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", name)
	}
	return key, nil
}

func parseKeys(names, values []string) ([]ed25519.PublicKey, error) {
	keys := make([]ed25519.PublicKey, len(values))
	for i, value := range values {
		key, err := parseKey(names[i], value)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	return keys, nil
}

func parseUint32(name, value string) (uint32, error) {
	v, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	return uint32(v), nil
}
