package transaction

import (
	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/launchpad/mint"
	"github.com/letscook/cook-client/pkg/launchpad/network"
)

// Precondition failures. These are expected conditions the caller can act on,
// and no instruction is produced when one is returned.
var (
	ErrAssetMismatch      = errors.New("asset does not match index")
	ErrMintNotFound       = mint.ErrMintNotFound
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrInvalidIndex       = errors.New("invalid listing index")
	ErrIneligibleCaller   = errors.New("caller is not eligible")
	ErrNoSupply           = errors.New("no supply available")
	ErrInvalidPageName    = errors.New("invalid page name")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrAMMNotFound        = errors.New("amm not found")
	ErrNoOwnedAsset       = errors.New("no owned asset in collection")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidSide        = errors.New("invalid order side")
	ErrUnsupportedAction  = errors.New("unsupported action")
)

var userMessages = []struct {
	err     error
	message string
}{
	{ErrAssetMismatch, "Asset does not match index"},
	{ErrMintNotFound, "Unable to retrieve mint data, please try again later"},
	{ErrAssignmentNotFound, "Unable to retrieve nft assignment data, please try again later"},
	{ErrInvalidIndex, "Invalid listing index"},
	{ErrIneligibleCaller, "The collection seller cannot claim from their own collection"},
	{ErrNoSupply, "No NFTs available to claim"},
	{ErrInvalidPageName, "Invalid page name"},
	{ErrCollectionNotFound, "Collection not found"},
	{ErrAMMNotFound, "Unable to retrieve pool data, please try again later"},
	{ErrNoOwnedAsset, "No NFTs from this collection in your wallet"},
	{ErrInvalidAmount, "Invalid amount"},
	{ErrInvalidSide, "Invalid order side"},
	{ErrUnsupportedAction, "Unsupported action"},
	{network.ErrNetworkUnavailable, "Network unavailable, please try again later"},
}

// IsPreconditionFailure reports whether err is an expected, user facing
// failure rather than a codec or network error.
func IsPreconditionFailure(err error) bool {
	for _, m := range userMessages {
		if m.err != network.ErrNetworkUnavailable && errors.Is(err, m.err) {
			return true
		}
	}
	return false
}

// UserMessage returns a short message for err that is safe to show to users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return "Something went wrong, please try again"
}
