package transaction

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/cook"
	"github.com/letscook/cook-client/pkg/solana/metaplex"
	"github.com/letscook/cook-client/pkg/solana/orao"
)

type collectionAccounts struct {
	record  *cook.CollectionRecord
	address ed25519.PublicKey

	seller         ed25519.PublicKey
	teamWallet     ed25519.PublicKey
	tokenMint      ed25519.PublicKey
	collectionMint ed25519.PublicKey

	programSol ed25519.PublicKey
}

// collection resolves the collection being acted on, fetching the record when
// the context only names its page.
func (b *Builder) collection(ctx context.Context, d *deriver, c *Context) (*collectionAccounts, error) {
	page, err := c.pageName()
	if err != nil {
		return nil, err
	}

	address, err := d.collection(page)
	if err != nil {
		return nil, err
	}

	record := c.Collection
	if record == nil {
		record = &cook.CollectionRecord{}
		ok, err := b.fetch(ctx, address, record)
		if err != nil {
			return nil, err
		} else if !ok {
			return nil, errors.Wrapf(ErrCollectionNotFound, "page %q", page)
		}
	}

	res := &collectionAccounts{
		record:  record,
		address: address,
	}
	for _, k := range []struct {
		key cook.CollectionKey
		dst *ed25519.PublicKey
	}{
		{cook.CollectionKeySeller, &res.seller},
		{cook.CollectionKeyTeamWallet, &res.teamWallet},
		{cook.CollectionKeyMintAddress, &res.tokenMint},
		{cook.CollectionKeyCollectionMint, &res.collectionMint},
	} {
		if *k.dst, err = record.Key(k.key); err != nil {
			return nil, err
		}
	}

	if res.programSol, err = d.programSol(); err != nil {
		return nil, err
	}
	return res, nil
}

func (b *Builder) buildBuy(ctx context.Context, d *deriver, c *Context) (*Result, error) {
	if len(c.Asset) == 0 {
		return nil, errors.Wrap(ErrAssetMismatch, "no asset")
	}

	col, err := b.collection(ctx, d, c)
	if err != nil {
		return nil, err
	}

	listing, err := d.listingEntry(c.Asset)
	if err != nil {
		return nil, err
	}
	summary, err := d.marketplaceSummary(col.collectionMint)
	if err != nil {
		return nil, err
	}

	var index uint32
	if c.Index != nil {
		index = *c.Index
	}

	var seller ed25519.PublicKey
	var entry cook.ListingEntryRecord
	ok, err := b.fetch(ctx, listing, &entry)
	if err != nil {
		return nil, err
	}
	if ok {
		seller = entry.Seller
	} else {
		if c.Index == nil {
			return nil, ErrInvalidIndex
		}

		plugins, duplicates := cook.SummarizeCollectionPlugins(col.record.Plugins)
		b.warnDuplicates(col.address, duplicates)

		if int(index) >= len(plugins.Listings) {
			return nil, errors.Wrapf(ErrAssetMismatch, "index %d of %d listings", index, len(plugins.Listings))
		}
		listed := plugins.Listings[index]
		if !listed.Asset.Equal(c.Asset) {
			return nil, errors.Wrapf(ErrAssetMismatch, "index %d lists %s", index, solana.PublicKeyString(listed.Asset))
		}
		seller = listed.Seller
	}

	ix, err := cook.NewBuyNFTInstruction(
		&cook.BuyNFTInstructionAccounts{
			User:           c.User,
			Collection:     col.address,
			ProgramSol:     col.programSol,
			Asset:          c.Asset,
			CollectionMint: col.collectionMint,
			Seller:         seller,
			Listing:        listing,
			Summary:        summary,
		},
		&cook.BuyNFTInstructionArgs{
			Index: index,
		},
	)
	if err != nil {
		return nil, err
	}
	return &Result{Instruction: ix}, nil
}

func (b *Builder) listAccounts(ctx context.Context, d *deriver, c *Context) (*cook.ListNFTInstructionAccounts, error) {
	if len(c.Asset) == 0 {
		return nil, errors.Wrap(ErrAssetMismatch, "no asset")
	}

	col, err := b.collection(ctx, d, c)
	if err != nil {
		return nil, err
	}

	listing, err := d.listingEntry(c.Asset)
	if err != nil {
		return nil, err
	}
	summary, err := d.marketplaceSummary(col.collectionMint)
	if err != nil {
		return nil, err
	}

	return &cook.ListNFTInstructionAccounts{
		User:           c.User,
		Collection:     col.address,
		ProgramSol:     col.programSol,
		Asset:          c.Asset,
		CollectionMint: col.collectionMint,
		Listing:        listing,
		Summary:        summary,
	}, nil
}

func (b *Builder) buildList(ctx context.Context, d *deriver, c *Context) (*Result, error) {
	accounts, err := b.listAccounts(ctx, d, c)
	if err != nil {
		return nil, err
	}

	ix, err := cook.NewListNFTInstruction(accounts, &cook.ListNFTInstructionArgs{Price: c.Price})
	if err != nil {
		return nil, err
	}
	return &Result{Instruction: ix}, nil
}

func (b *Builder) buildUnlist(ctx context.Context, d *deriver, c *Context) (*Result, error) {
	if c.Index == nil {
		return nil, ErrInvalidIndex
	}

	accounts, err := b.listAccounts(ctx, d, c)
	if err != nil {
		return nil, err
	}

	ix, err := cook.NewUnlistNFTInstruction(accounts, &cook.UnlistNFTInstructionArgs{Index: *c.Index})
	if err != nil {
		return nil, err
	}
	return &Result{Instruction: ix}, nil
}

type oraoAccounts struct {
	program  ed25519.PublicKey
	network  ed25519.PublicKey
	random   ed25519.PublicKey
	treasury ed25519.PublicKey
}

// oraoAccounts returns the randomness accounts for a claim. Eclipse has no
// Orao deployment, so the launchpad program stands in for it.
func (b *Builder) oraoAccounts(ctx context.Context, seed [32]byte) (*oraoAccounts, error) {
	if b.settings.Cluster == network.ClusterEclipse {
		return &oraoAccounts{
			program:  cook.PROGRAM_ID,
			network:  cook.PROGRAM_ID,
			random:   cook.PROGRAM_ID,
			treasury: cook.SYSTEM_PROGRAM_ID,
		}, nil
	}

	networkState, _, err := orao.GetNetworkStateAddress(&orao.GetNetworkStateAddressArgs{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive orao network address")
	}
	random, _, err := orao.GetRandomnessAddress(&orao.GetRandomnessAddressArgs{Seed: seed})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive orao randomness address")
	}

	res := &oraoAccounts{
		program:  orao.PROGRAM_ID,
		network:  networkState,
		random:   random,
		treasury: cook.SYSTEM_PROGRAM_ID,
	}

	data, ok, err := b.reader.GetAccountBytes(ctx, networkState)
	if err != nil {
		return nil, err
	} else if ok {
		state, err := orao.UnmarshalNetworkState(data)
		if err != nil {
			return nil, err
		}
		res.treasury = state.Treasury
	}
	return res, nil
}

func (b *Builder) buildClaim(ctx context.Context, d *deriver, c *Context) (*Result, error) {
	col, err := b.collection(ctx, d, c)
	if err != nil {
		return nil, err
	}

	if col.record.NumAvailable == 0 {
		return nil, ErrNoSupply
	}
	if col.seller.Equal(c.User) {
		return nil, ErrIneligibleCaller
	}

	tokenMint, err := b.mints.Get(ctx, col.tokenMint)
	if err != nil {
		return nil, err
	}

	userData, err := d.userData(c.User)
	if err != nil {
		return nil, err
	}
	assignment, err := d.assignment(c.User, col.collectionMint)
	if err != nil {
		return nil, err
	}
	userTokenAccount, err := d.associated(c.User, col.tokenMint, tokenMint.TokenProgram)
	if err != nil {
		return nil, err
	}
	pdaTokenAccount, err := d.associated(col.programSol, col.tokenMint, tokenMint.TokenProgram)
	if err != nil {
		return nil, err
	}

	var seed [32]byte
	if c.Seed != nil {
		seed = *c.Seed
	} else if seed, err = b.newSeed(); err != nil {
		return nil, err
	}

	random, err := b.oraoAccounts(ctx, seed)
	if err != nil {
		return nil, err
	}

	// The program expects its own id in the whitelist slots when the
	// collection has no whitelist.
	whitelistMint := cook.PROGRAM_ID
	whitelistAccount := cook.PROGRAM_ID
	whitelistTokenProgram := cook.PROGRAM_ID

	plugins, duplicates := cook.SummarizeCollectionPlugins(col.record.Plugins)
	b.warnDuplicates(col.address, duplicates)
	if plugins.HasWhitelist() {
		whitelist, err := b.mints.Get(ctx, plugins.WhitelistKey)
		if err != nil {
			return nil, err
		}

		whitelistMint = plugins.WhitelistKey
		whitelistTokenProgram = whitelist.TokenProgram
		if whitelistAccount, err = d.associated(c.User, whitelistMint, whitelistTokenProgram); err != nil {
			return nil, err
		}
	}

	ix, err := cook.NewClaimNFTInstruction(
		&cook.ClaimNFTInstructionAccounts{
			User:                  c.User,
			UserData:              userData,
			Assignment:            assignment,
			Collection:            col.address,
			ProgramSol:            col.programSol,
			TokenMint:             col.tokenMint,
			UserTokenAccount:      userTokenAccount,
			PdaTokenAccount:       pdaTokenAccount,
			CollectionMint:        col.collectionMint,
			CookFees:              b.settings.CookFees,
			TeamWallet:            col.teamWallet,
			TokenProgram:          tokenMint.TokenProgram,
			OraoRandom:            random.random,
			OraoTreasury:          random.treasury,
			OraoNetwork:           random.network,
			OraoProgram:           random.program,
			WhitelistMint:         whitelistMint,
			WhitelistAccount:      whitelistAccount,
			WhitelistTokenProgram: whitelistTokenProgram,
		},
		&cook.ClaimNFTInstructionArgs{
			Seed: seed,
		},
	)
	if err != nil {
		return nil, err
	}

	if ix.Accounts, err = b.appendTransferHook(ctx, ix.Accounts, tokenMint); err != nil {
		return nil, err
	}
	return &Result{Instruction: ix}, nil
}

// buildMint builds a mint of the asset assigned by a prior claim. Only the
// random variant moves hooked tokens.
func (b *Builder) buildMint(ctx context.Context, d *deriver, c *Context, random bool) (*Result, error) {
	col, err := b.collection(ctx, d, c)
	if err != nil {
		return nil, err
	}

	assignmentAddress, err := d.assignment(c.User, col.collectionMint)
	if err != nil {
		return nil, err
	}

	var assignment cook.AssignmentRecord
	ok, err := b.fetch(ctx, assignmentAddress, &assignment)
	if err != nil {
		return nil, err
	} else if !ok {
		return nil, errors.Wrapf(ErrAssignmentNotFound, "no assignment at %s", solana.PublicKeyString(assignmentAddress))
	}

	tokenMint, err := b.mints.Get(ctx, col.tokenMint)
	if err != nil {
		return nil, err
	}

	userTokenAccount, err := d.associated(c.User, col.tokenMint, tokenMint.TokenProgram)
	if err != nil {
		return nil, err
	}
	pdaTokenAccount, err := d.associated(col.programSol, col.tokenMint, tokenMint.TokenProgram)
	if err != nil {
		return nil, err
	}
	teamTokenAccount, err := d.associated(col.teamWallet, col.tokenMint, tokenMint.TokenProgram)
	if err != nil {
		return nil, err
	}

	asset := c.NewAsset
	if asset == nil {
		if asset, err = b.newAsset(); err != nil {
			return nil, err
		}
	}

	accounts := &cook.MintNFTInstructionAccounts{
		User:             c.User,
		Assignment:       assignmentAddress,
		Collection:       col.address,
		ProgramSol:       col.programSol,
		Asset:            asset.Public().(ed25519.PublicKey),
		CollectionMint:   col.collectionMint,
		TeamWallet:       col.teamWallet,
		TokenMint:        col.tokenMint,
		PdaTokenAccount:  pdaTokenAccount,
		UserTokenAccount: userTokenAccount,
		TeamTokenAccount: teamTokenAccount,
		RandomAddress:    assignment.RandomAddress,
		TokenProgram:     tokenMint.TokenProgram,
	}

	var ix solana.Instruction
	if random {
		ix, err = cook.NewMintRandomNFTInstruction(accounts)
	} else {
		ix, err = cook.NewMintNFTInstruction(accounts)
	}
	if err != nil {
		return nil, err
	}

	if random {
		if ix.Accounts, err = b.appendTransferHook(ctx, ix.Accounts, tokenMint); err != nil {
			return nil, err
		}
	}
	return &Result{Instruction: ix, Signers: []ed25519.PrivateKey{asset}}, nil
}

// ownedAsset picks one of the user's assets in the collection.
func (b *Builder) ownedAsset(ctx context.Context, user, collectionMint ed25519.PublicKey) (ed25519.PublicKey, error) {
	assets, err := b.reader.GetAccountsMatching(ctx, metaplex.CORE_PROGRAM_ID, metaplex.CollectionAssetFilters(user, collectionMint)...)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, ErrNoOwnedAsset
	}

	i, err := b.pick(len(assets))
	if err != nil {
		return nil, err
	}
	return assets[i].Address, nil
}

func (b *Builder) buildWrap(ctx context.Context, d *deriver, c *Context) (*Result, error) {
	col, err := b.collection(ctx, d, c)
	if err != nil {
		return nil, err
	}

	asset := c.Asset
	if len(asset) == 0 {
		if asset, err = b.ownedAsset(ctx, c.User, col.collectionMint); err != nil {
			return nil, err
		}
	}

	tokenMint, err := b.mints.Get(ctx, col.tokenMint)
	if err != nil {
		return nil, err
	}

	userData, err := d.userData(c.User)
	if err != nil {
		return nil, err
	}
	userTokenAccount, err := d.associated(c.User, col.tokenMint, tokenMint.TokenProgram)
	if err != nil {
		return nil, err
	}
	pdaTokenAccount, err := d.associated(col.programSol, col.tokenMint, tokenMint.TokenProgram)
	if err != nil {
		return nil, err
	}
	teamTokenAccount, err := d.associated(col.teamWallet, col.tokenMint, tokenMint.TokenProgram)
	if err != nil {
		return nil, err
	}

	ix, err := cook.NewWrapNFTInstruction(&cook.WrapNFTInstructionAccounts{
		User:             c.User,
		UserData:         userData,
		Collection:       col.address,
		ProgramSol:       col.programSol,
		TokenMint:        col.tokenMint,
		UserTokenAccount: userTokenAccount,
		PdaTokenAccount:  pdaTokenAccount,
		TeamTokenAccount: teamTokenAccount,
		Asset:            asset,
		CollectionMint:   col.collectionMint,
		TokenProgram:     tokenMint.TokenProgram,
	})
	if err != nil {
		return nil, err
	}

	if ix.Accounts, err = b.appendTransferHook(ctx, ix.Accounts, tokenMint); err != nil {
		return nil, err
	}
	return &Result{Instruction: ix}, nil
}
