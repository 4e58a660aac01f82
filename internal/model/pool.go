package model

import (
	"encoding/json"

	"github.com/holiman/uint256"
)

// Pool holds the reserves of one liquidity pool.
//
// AssetLow and AssetHigh are fixed at creation and match the pool's PairKey.
// Reserves are denominated in the asset's smallest unit and are only mutated
// through the pool store.
type Pool struct {
	AssetLow  string `json:"asset_low"`
	AssetHigh string `json:"asset_high"`

	ReserveLow  *uint256.Int `json:"-"`
	ReserveHigh *uint256.Int `json:"-"`
}

// NewPool returns an empty pool for the given pair.
func NewPool(key PairKey) Pool {
	return Pool{
		AssetLow:    key.Low.Hex(),
		AssetHigh:   key.High.Hex(),
		ReserveLow:  uint256.NewInt(0),
		ReserveHigh: uint256.NewInt(0),
	}
}

// Clone returns a deep copy, so callers can hold a snapshot without racing
// against later state transitions.
func (p Pool) Clone() Pool {
	out := p
	out.ReserveLow = new(uint256.Int).Set(p.ReserveLow)
	out.ReserveHigh = new(uint256.Int).Set(p.ReserveHigh)
	return out
}

// MarshalJSON encodes reserves as decimal strings so they survive JSON
// number precision limits.
func (p Pool) MarshalJSON() ([]byte, error) {
	type alias struct {
		AssetLow    string `json:"asset_low"`
		AssetHigh   string `json:"asset_high"`
		ReserveLow  string `json:"reserve_low"`
		ReserveHigh string `json:"reserve_high"`
	}
	return json.Marshal(alias{
		AssetLow:    p.AssetLow,
		AssetHigh:   p.AssetHigh,
		ReserveLow:  p.ReserveLow.Dec(),
		ReserveHigh: p.ReserveHigh.Dec(),
	})
}
