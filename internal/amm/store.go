package amm

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"miniswap/internal/model"
)

// PoolStore owns the mapping from canonical pair keys to pool state. Pools
// are created, deposited into, and swapped against only through its methods;
// no other component mutates a pool directly.
type PoolStore struct {
	mu    sync.RWMutex
	pools map[model.PairKey]*model.Pool
}

// NewPoolStore creates an empty store.
func NewPoolStore() *PoolStore {
	return &PoolStore{pools: make(map[model.PairKey]*model.Pool)}
}

// Get returns a snapshot of the pool for the key, if it exists.
func (s *PoolStore) Get(key model.PairKey) (model.Pool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[key]
	if !ok {
		return model.Pool{}, false
	}
	return pool.Clone(), true
}

// Create inserts a new pool with zero reserves. The existence check and the
// insert happen under one lock, so two racing creations for the same key
// cannot both succeed.
func (s *PoolStore) Create(key model.PairKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pools[key]; ok {
		return fmt.Errorf("%w: %s", ErrPairExists, key)
	}
	pool := model.NewPool(key)
	s.pools[key] = &pool
	return nil
}

// ApplyDeposit adds the given amounts to both reserves.
func (s *PoolStore) ApplyDeposit(key model.PairKey, amountLow, amountHigh *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPairNotFound, key)
	}

	newLow := new(uint256.Int)
	if _, overflow := newLow.AddOverflow(pool.ReserveLow, amountLow); overflow {
		return fmt.Errorf("%w: low reserve deposit", ErrArithmeticOverflow)
	}
	newHigh := new(uint256.Int)
	if _, overflow := newHigh.AddOverflow(pool.ReserveHigh, amountHigh); overflow {
		return fmt.Errorf("%w: high reserve deposit", ErrArithmeticOverflow)
	}

	pool.ReserveLow = newLow
	pool.ReserveHigh = newHigh
	return nil
}

// ApplySwap increases the input-side reserve and decreases the output side.
// Both reserves change together or not at all.
func (s *PoolStore) ApplySwap(key model.PairKey, lowIn bool, amountIn, amountOut *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPairNotFound, key)
	}

	reserveIn, reserveOut := pool.ReserveLow, pool.ReserveHigh
	if !lowIn {
		reserveIn, reserveOut = pool.ReserveHigh, pool.ReserveLow
	}

	newIn := new(uint256.Int)
	if _, overflow := newIn.AddOverflow(reserveIn, amountIn); overflow {
		return fmt.Errorf("%w: input reserve", ErrArithmeticOverflow)
	}
	newOut := new(uint256.Int)
	if _, underflow := newOut.SubOverflow(reserveOut, amountOut); underflow {
		return fmt.Errorf("%w: output %s exceeds reserve %s",
			ErrReserveUnderflow, amountOut.Dec(), reserveOut.Dec())
	}

	if lowIn {
		pool.ReserveLow, pool.ReserveHigh = newIn, newOut
	} else {
		pool.ReserveLow, pool.ReserveHigh = newOut, newIn
	}
	return nil
}

// Len reports the number of pools.
func (s *PoolStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pools)
}
