package model

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func addr(s string) common.Address {
	return common.HexToAddress(s)
}

func TestCanonicalPairSymmetry(t *testing.T) {
	a := common.HexToAddress("0x0000000000000000000000000000000000000002")
	b := common.HexToAddress("0x0000000000000000000000000000000000000001")

	ab, err := CanonicalPair(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := CanonicalPair(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ab != ba {
		t.Fatalf("keys differ by argument order: %+v != %+v", ab, ba)
	}
	if ab.Low != b || ab.High != a {
		t.Fatalf("unexpected canonical order: %+v", ab)
	}
	if ab.Hash() != ba.Hash() {
		t.Fatalf("hash differs by argument order")
	}
}

func TestCanonicalPairIdentical(t *testing.T) {
	a := common.HexToAddress("0x0000000000000000000000000000000000000003")
	if _, err := CanonicalPair(a, a); !errors.Is(err, ErrIdenticalAssets) {
		t.Fatalf("expected ErrIdenticalAssets, got %v", err)
	}
}

func TestCanonicalPairZeroAsset(t *testing.T) {
	a := common.HexToAddress("0x0000000000000000000000000000000000000003")
	var zero common.Address

	if _, err := CanonicalPair(zero, a); !errors.Is(err, ErrZeroAsset) {
		t.Fatalf("expected ErrZeroAsset, got %v", err)
	}
	if _, err := CanonicalPair(a, zero); !errors.Is(err, ErrZeroAsset) {
		t.Fatalf("expected ErrZeroAsset, got %v", err)
	}
}

func TestPairKeyHashDistinct(t *testing.T) {
	a := common.HexToAddress("0x0000000000000000000000000000000000000001")
	b := common.HexToAddress("0x0000000000000000000000000000000000000002")
	c := common.HexToAddress("0x0000000000000000000000000000000000000003")

	ab, err := CanonicalPair(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ac, err := CanonicalPair(a, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ab == ac {
		t.Fatalf("distinct pairs share a key")
	}
	if ab.Hash() == ac.Hash() {
		t.Fatalf("distinct pairs share a hash")
	}
}
