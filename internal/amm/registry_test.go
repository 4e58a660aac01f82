package amm

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniswap/internal/ledger"
	"miniswap/internal/model"
)

func TestAssetRegistryRegisterOnce(t *testing.T) {
	custody := common.HexToAddress("0x00000000000000000000000000000000000000AA")
	holder := common.HexToAddress("0x0000000000000000000000000000000000000001")
	asset := common.HexToAddress("0x0000000000000000000000000000000000000010")

	l := ledger.NewMemoryLedger(custody)
	require.NoError(t, l.Mint(asset, holder, uint256.NewInt(1000)))

	registry := NewAssetRegistry(l)
	ctx := context.Background()

	assert.False(t, registry.IsRegistered(asset))
	require.NoError(t, registry.Register(ctx, asset))
	assert.True(t, registry.IsRegistered(asset))

	err := registry.Register(ctx, asset)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, 1, registry.Len())
}

func TestAssetRegistryZeroSupply(t *testing.T) {
	custody := common.HexToAddress("0x00000000000000000000000000000000000000AA")
	asset := common.HexToAddress("0x0000000000000000000000000000000000000010")

	registry := NewAssetRegistry(ledger.NewMemoryLedger(custody))

	err := registry.Register(context.Background(), asset)
	assert.ErrorIs(t, err, ErrInvalidAsset)
	assert.False(t, registry.IsRegistered(asset))
}

func TestAssetRegistryZeroAddress(t *testing.T) {
	custody := common.HexToAddress("0x00000000000000000000000000000000000000AA")
	registry := NewAssetRegistry(ledger.NewMemoryLedger(custody))

	err := registry.Register(context.Background(), common.Address{})
	assert.ErrorIs(t, err, model.ErrZeroAsset)
}
