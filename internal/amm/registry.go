package amm

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"miniswap/internal/ledger"
	"miniswap/internal/model"
)

// AssetRegistry tracks which assets may participate in pools. Registration
// is one-shot: the set grows monotonically and an asset is never removed.
type AssetRegistry struct {
	mu     sync.RWMutex
	ledger ledger.Ledger
	assets map[common.Address]struct{}
}

// NewAssetRegistry creates an empty registry validating against the ledger.
func NewAssetRegistry(l ledger.Ledger) *AssetRegistry {
	return &AssetRegistry{
		ledger: l,
		assets: make(map[common.Address]struct{}),
	}
}

// Register validates the asset against the ledger and adds it to the set.
// A second call for the same asset fails with ErrAlreadyRegistered.
func (r *AssetRegistry) Register(ctx context.Context, asset common.Address) error {
	if asset == (common.Address{}) {
		return fmt.Errorf("%w: zero address", model.ErrZeroAsset)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assets[asset]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, asset.Hex())
	}

	supply, err := r.ledger.TotalSupply(ctx, asset)
	if err != nil {
		return fmt.Errorf("query total supply for %s: %w", asset.Hex(), err)
	}
	if supply.IsZero() {
		return fmt.Errorf("%w: %s has zero total supply", ErrInvalidAsset, asset.Hex())
	}

	r.assets[asset] = struct{}{}
	return nil
}

// IsRegistered reports membership without side effects.
func (r *AssetRegistry) IsRegistered(asset common.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.assets[asset]
	return ok
}

// Len reports the number of registered assets.
func (r *AssetRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assets)
}
