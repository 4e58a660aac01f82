package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Ledger is the external system of record that holds and moves asset
// balances on behalf of the pool manager. Implementations must treat each
// call as a single atomic transfer: on error no balance has moved.
type Ledger interface {
	// TotalSupply reports the total issued amount of an asset.
	TotalSupply(ctx context.Context, asset common.Address) (*uint256.Int, error)

	// TransferFrom pulls amount of asset from the owner into to's custody.
	TransferFrom(ctx context.Context, asset, from, to common.Address, amount *uint256.Int) error

	// Transfer pushes amount of asset out of the caller's custody to the
	// recipient.
	Transfer(ctx context.Context, asset, to common.Address, amount *uint256.Int) error
}
