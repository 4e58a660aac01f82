package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	// ErrInsufficientBalance is returned when a transfer exceeds the
	// holder's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSupplyOverflow is returned when minting would overflow an asset's
	// total supply.
	ErrSupplyOverflow = errors.New("total supply overflow")
)

// MemoryLedger is an in-process Ledger used by the CLI host and tests.
//
// The custody address identifies the pool manager's own account: Transfer
// always debits custody, mirroring a token contract call issued by the pool.
type MemoryLedger struct {
	mu       sync.Mutex
	custody  common.Address
	supplies map[common.Address]*uint256.Int
	balances map[common.Address]map[common.Address]*uint256.Int
}

// NewMemoryLedger creates an empty ledger with the given custody account.
func NewMemoryLedger(custody common.Address) *MemoryLedger {
	return &MemoryLedger{
		custody:  custody,
		supplies: make(map[common.Address]*uint256.Int),
		balances: make(map[common.Address]map[common.Address]*uint256.Int),
	}
}

// Custody returns the custody account address.
func (l *MemoryLedger) Custody() common.Address {
	return l.custody
}

// Mint credits amount of asset to the holder and grows the asset's total
// supply accordingly.
func (l *MemoryLedger) Mint(asset, holder common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	supply, ok := l.supplies[asset]
	if !ok {
		supply = uint256.NewInt(0)
		l.supplies[asset] = supply
	}
	newSupply := new(uint256.Int)
	if _, overflow := newSupply.AddOverflow(supply, amount); overflow {
		return fmt.Errorf("%w: asset %s", ErrSupplyOverflow, asset.Hex())
	}
	supply.Set(newSupply)

	bal := l.balanceRef(asset, holder)
	bal.Add(bal, amount)
	return nil
}

// TotalSupply reports the minted supply of an asset; zero if never minted.
func (l *MemoryLedger) TotalSupply(ctx context.Context, asset common.Address) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	supply, ok := l.supplies[asset]
	if !ok {
		return uint256.NewInt(0), nil
	}
	return new(uint256.Int).Set(supply), nil
}

// TransferFrom moves amount of asset from the owner to the recipient.
func (l *MemoryLedger) TransferFrom(ctx context.Context, asset, from, to common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(asset, from, to, amount)
}

// Transfer moves amount of asset out of custody to the recipient.
func (l *MemoryLedger) Transfer(ctx context.Context, asset, to common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(asset, l.custody, to, amount)
}

// Balance returns the holder's balance of an asset.
func (l *MemoryLedger) Balance(asset, holder common.Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(uint256.Int).Set(l.balanceRef(asset, holder))
}

func (l *MemoryLedger) move(asset, from, to common.Address, amount *uint256.Int) error {
	src := l.balanceRef(asset, from)
	if src.Lt(amount) {
		return fmt.Errorf("%w: asset %s holder %s has %s, needs %s",
			ErrInsufficientBalance, asset.Hex(), from.Hex(), src.Dec(), amount.Dec())
	}

	src.Sub(src, amount)
	dst := l.balanceRef(asset, to)
	dst.Add(dst, amount)
	return nil
}

func (l *MemoryLedger) balanceRef(asset, holder common.Address) *uint256.Int {
	holders, ok := l.balances[asset]
	if !ok {
		holders = make(map[common.Address]*uint256.Int)
		l.balances[asset] = holders
	}
	bal, ok := holders[holder]
	if !ok {
		bal = uint256.NewInt(0)
		holders[holder] = bal
	}
	return bal
}
