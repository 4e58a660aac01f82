package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	custody = common.HexToAddress("0x00000000000000000000000000000000000000AA")
	alice   = common.HexToAddress("0x0000000000000000000000000000000000000001")
	bob     = common.HexToAddress("0x0000000000000000000000000000000000000002")
	tokenX  = common.HexToAddress("0x0000000000000000000000000000000000000010")
)

func TestMemoryLedgerTransferFrom(t *testing.T) {
	l := NewMemoryLedger(custody)
	if err := l.Mint(tokenX, alice, uint256.NewInt(1000)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := l.TransferFrom(context.Background(), tokenX, alice, custody, uint256.NewInt(400)); err != nil {
		t.Fatalf("transfer from failed: %v", err)
	}

	if got := l.Balance(tokenX, alice); !got.Eq(uint256.NewInt(600)) {
		t.Fatalf("alice balance mismatch: %s", got.Dec())
	}
	if got := l.Balance(tokenX, custody); !got.Eq(uint256.NewInt(400)) {
		t.Fatalf("custody balance mismatch: %s", got.Dec())
	}
}

func TestMemoryLedgerInsufficientBalance(t *testing.T) {
	l := NewMemoryLedger(custody)
	if err := l.Mint(tokenX, alice, uint256.NewInt(10)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	err := l.TransferFrom(context.Background(), tokenX, alice, custody, uint256.NewInt(11))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	// The failed transfer must not have moved anything.
	if got := l.Balance(tokenX, alice); !got.Eq(uint256.NewInt(10)) {
		t.Fatalf("alice balance changed: %s", got.Dec())
	}
}

func TestMemoryLedgerConservation(t *testing.T) {
	l := NewMemoryLedger(custody)
	if err := l.Mint(tokenX, alice, uint256.NewInt(500)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := l.Mint(tokenX, bob, uint256.NewInt(500)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	ctx := context.Background()
	_ = l.TransferFrom(ctx, tokenX, alice, bob, uint256.NewInt(123))
	_ = l.TransferFrom(ctx, tokenX, bob, custody, uint256.NewInt(77))
	_ = l.Transfer(ctx, tokenX, alice, uint256.NewInt(50))

	total := new(uint256.Int)
	for _, holder := range []common.Address{alice, bob, custody} {
		total.Add(total, l.Balance(tokenX, holder))
	}
	supply, err := l.TotalSupply(ctx, tokenX)
	if err != nil {
		t.Fatalf("total supply failed: %v", err)
	}
	if !total.Eq(supply) {
		t.Fatalf("balances %s do not sum to supply %s", total.Dec(), supply.Dec())
	}
}

func TestMemoryLedgerUnknownAssetSupply(t *testing.T) {
	l := NewMemoryLedger(custody)
	supply, err := l.TotalSupply(context.Background(), tokenX)
	if err != nil {
		t.Fatalf("total supply failed: %v", err)
	}
	if !supply.IsZero() {
		t.Fatalf("expected zero supply, got %s", supply.Dec())
	}
}
