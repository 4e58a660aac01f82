package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Seed describes the initial state of a memory ledger.
type Seed struct {
	Custody  string        `json:"custody"`
	Balances []SeedBalance `json:"balances"`
}

// SeedBalance credits one holder with an amount of one asset.
type SeedBalance struct {
	Asset  string `json:"asset"`
	Holder string `json:"holder"`
	Amount string `json:"amount"`
}

// LoadSeed reads a seed file and builds a memory ledger from it.
func LoadSeed(path string) (*MemoryLedger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if !common.IsHexAddress(seed.Custody) {
		return nil, fmt.Errorf("invalid custody address: %q", seed.Custody)
	}

	l := NewMemoryLedger(common.HexToAddress(seed.Custody))
	for i, entry := range seed.Balances {
		if !common.IsHexAddress(entry.Asset) {
			return nil, fmt.Errorf("balance %d: invalid asset address: %q", i, entry.Asset)
		}
		if !common.IsHexAddress(entry.Holder) {
			return nil, fmt.Errorf("balance %d: invalid holder address: %q", i, entry.Holder)
		}
		amount, err := uint256.FromDecimal(entry.Amount)
		if err != nil {
			return nil, fmt.Errorf("balance %d: invalid amount %q: %w", i, entry.Amount, err)
		}
		if err := l.Mint(common.HexToAddress(entry.Asset), common.HexToAddress(entry.Holder), amount); err != nil {
			return nil, fmt.Errorf("balance %d: %w", i, err)
		}
	}

	return l, nil
}
