package model

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrIdenticalAssets is returned when a pair is requested for a single asset.
	ErrIdenticalAssets = errors.New("identical assets")
	// ErrZeroAsset is returned when the zero address is used as an asset.
	ErrZeroAsset = errors.New("zero asset address")
)

// PairKey is the canonical identifier of an unordered asset pair.
//
// It is an exact composite of the two asset addresses in canonical order
// (Low < High by byte comparison), so two distinct pairs can never map to
// the same key. The key is comparable and used directly as a map key.
type PairKey struct {
	Low  common.Address `json:"asset_low"`
	High common.Address `json:"asset_high"`
}

// CanonicalPair orders two asset addresses into a PairKey.
//
// It is symmetric in its arguments: CanonicalPair(a, b) == CanonicalPair(b, a).
// The zero address and identical assets are rejected.
func CanonicalPair(a, b common.Address) (PairKey, error) {
	if a == (common.Address{}) || b == (common.Address{}) {
		return PairKey{}, ErrZeroAsset
	}
	if a == b {
		return PairKey{}, fmt.Errorf("%w: %s", ErrIdenticalAssets, a.Hex())
	}
	if bytes.Compare(a.Bytes(), b.Bytes()) < 0 {
		return PairKey{Low: a, High: b}, nil
	}
	return PairKey{Low: b, High: a}, nil
}

// Hash derives a bytes32 identifier for the pair, for external listeners
// that expect a single-word key. Lookups inside this module always use the
// composite key itself, so hash collisions cannot affect pool identity.
func (k PairKey) Hash() common.Hash {
	return common.BytesToHash(crypto.Keccak256(k.Low.Bytes(), k.High.Bytes()))
}

// String returns a readable "low/high" form for logs.
func (k PairKey) String() string {
	return k.Low.Hex() + "/" + k.High.Hex()
}
