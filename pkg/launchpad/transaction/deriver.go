package transaction

import (
	"crypto/ed25519"
	"strconv"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/cook"
	"github.com/letscook/cook-client/pkg/solana/token"
)

// deriver memoizes the addresses of a single build, since the same account is
// often referenced by several steps.
type deriver struct {
	memo map[string]ed25519.PublicKey
}

func newDeriver() *deriver {
	return &deriver{memo: make(map[string]ed25519.PublicKey)}
}

func (d *deriver) get(name string, derive func() (ed25519.PublicKey, uint8, error)) (ed25519.PublicKey, error) {
	if address, ok := d.memo[name]; ok {
		return address, nil
	}

	address, _, err := derive()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to derive %s address", name)
	}
	d.memo[name] = address
	return address, nil
}

func (d *deriver) collection(page string) (ed25519.PublicKey, error) {
	return d.get("collection:"+page, func() (ed25519.PublicKey, uint8, error) {
		return cook.GetCollectionAddress(&cook.GetCollectionAddressArgs{PageName: page})
	})
}

func (d *deriver) programSol() (ed25519.PublicKey, error) {
	return d.get("program_sol", cook.GetProgramSolAddress)
}

func (d *deriver) userData(user ed25519.PublicKey) (ed25519.PublicKey, error) {
	return d.get("user_data:"+solana.PublicKeyString(user), func() (ed25519.PublicKey, uint8, error) {
		return cook.GetUserDataAddress(&cook.GetUserDataAddressArgs{User: user})
	})
}

func (d *deriver) tempWSOL(user ed25519.PublicKey) (ed25519.PublicKey, error) {
	return d.get("temp_wsol:"+solana.PublicKeyString(user), func() (ed25519.PublicKey, uint8, error) {
		return cook.GetTempWSOLAddress(&cook.GetTempWSOLAddressArgs{User: user})
	})
}

func (d *deriver) assignment(user, collectionMint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return d.get("assignment:"+solana.PublicKeyString(user)+":"+solana.PublicKeyString(collectionMint), func() (ed25519.PublicKey, uint8, error) {
		return cook.GetAssignmentAddress(&cook.GetAssignmentAddressArgs{User: user, CollectionMint: collectionMint})
	})
}

func (d *deriver) listingEntry(asset ed25519.PublicKey) (ed25519.PublicKey, error) {
	return d.get("listing:"+solana.PublicKeyString(asset), func() (ed25519.PublicKey, uint8, error) {
		return cook.GetListingEntryAddress(&cook.GetListingEntryAddressArgs{Asset: asset})
	})
}

func (d *deriver) marketplaceSummary(collectionMint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return d.get("summary:"+solana.PublicKeyString(collectionMint), func() (ed25519.PublicKey, uint8, error) {
		return cook.GetMarketplaceSummaryAddress(&cook.GetMarketplaceSummaryAddressArgs{CollectionMint: collectionMint})
	})
}

func (d *deriver) amm(baseMint, quoteMint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return d.get("amm", func() (ed25519.PublicKey, uint8, error) {
		return cook.GetAMMAddress(&cook.GetAMMAddressArgs{BaseMint: baseMint, QuoteMint: quoteMint})
	})
}

func (d *deriver) lpMint(amm ed25519.PublicKey) (ed25519.PublicKey, error) {
	return d.get("lp_mint", func() (ed25519.PublicKey, uint8, error) {
		return cook.GetLPMintAddress(&cook.GetLPMintAddressArgs{AMM: amm})
	})
}

func (d *deriver) tradeToEarn(amm ed25519.PublicKey) (ed25519.PublicKey, error) {
	return d.get("trade_to_earn", func() (ed25519.PublicKey, uint8, error) {
		return cook.GetTradeToEarnAddress(&cook.GetTradeToEarnAddressArgs{AMM: amm})
	})
}

func (d *deriver) launchDate(amm ed25519.PublicKey, day uint32) (ed25519.PublicKey, error) {
	return d.get("launch_date:"+strconv.FormatUint(uint64(day), 10), func() (ed25519.PublicKey, uint8, error) {
		return cook.GetLaunchDateAddress(&cook.GetLaunchDateAddressArgs{AMM: amm, Day: day})
	})
}

func (d *deriver) userDate(amm, user ed25519.PublicKey, day uint32) (ed25519.PublicKey, error) {
	return d.get("user_date:"+strconv.FormatUint(uint64(day), 10), func() (ed25519.PublicKey, uint8, error) {
		return cook.GetUserDateAddress(&cook.GetUserDateAddressArgs{AMM: amm, User: user, Day: day})
	})
}

func (d *deriver) timeSeries(amm ed25519.PublicKey, index uint32) (ed25519.PublicKey, error) {
	return d.get("time_series:"+strconv.FormatUint(uint64(index), 10), func() (ed25519.PublicKey, uint8, error) {
		return cook.GetTimeSeriesAddress(&cook.GetTimeSeriesAddressArgs{AMM: amm, Index: index})
	})
}

// associated returns the associated token account of wallet for mint under
// tokenProgram.
func (d *deriver) associated(wallet, mint, tokenProgram ed25519.PublicKey) (ed25519.PublicKey, error) {
	name := "ata:" + solana.PublicKeyString(wallet) + ":" + solana.PublicKeyString(mint) + ":" + solana.PublicKeyString(tokenProgram)
	return d.get(name, func() (ed25519.PublicKey, uint8, error) {
		address, err := token.GetAssociatedAccountWithProgram(wallet, mint, tokenProgram)
		return address, 0, err
	})
}
