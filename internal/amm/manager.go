package amm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"miniswap/internal/journal"
	"miniswap/internal/ledger"
	"miniswap/internal/model"
)

// ManagerConfig holds runtime settings for the pool manager.
type ManagerConfig struct {
	// Custody is the account that holds pooled funds on the ledger.
	Custody common.Address
}

// Manager orchestrates pair creation, liquidity deposits, and swaps.
//
// Every state-mutating operation runs under a single manager-level mutex, so
// transitions are serialized: concurrent creations for one pair cannot both
// succeed, and concurrent swaps against one pool commit in a deterministic
// order. Ledger transfers are the only blocking points inside an operation.
type Manager struct {
	mu       sync.Mutex
	cfg      ManagerConfig
	registry *AssetRegistry
	store    *PoolStore
	ledger   ledger.Ledger
	sink     journal.Sink
	logger   *zap.Logger
	metrics  *Metrics
	seq      uint64
}

// NewManager builds a Manager with its dependencies. The sink and metrics
// may be nil; the logger defaults to a nop logger.
func NewManager(
	cfg ManagerConfig,
	registry *AssetRegistry,
	store *PoolStore,
	l ledger.Ledger,
	sink journal.Sink,
	logger *zap.Logger,
	metrics *Metrics,
) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		cfg:      cfg,
		registry: registry,
		store:    store,
		ledger:   l,
		sink:     sink,
		logger:   logger,
		metrics:  metrics,
	}
}

// RegisterAsset registers an asset for pooling and emits TokenRegistered.
func (m *Manager) RegisterAsset(ctx context.Context, asset common.Address) error {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.registry.Register(ctx, asset)
	m.metrics.observe("register_asset", time.Since(start).Seconds(), err)
	if err != nil {
		return err
	}

	m.emit(model.EventTokenRegistered, model.TokenRegisteredData{Asset: asset.Hex()})
	m.logger.Info("asset registered", zap.String("asset", asset.Hex()))
	return nil
}

// CreatePair creates an empty pool for the unordered pair (a, b).
func (m *Manager) CreatePair(ctx context.Context, a, b common.Address) error {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.createPair(a, b)
	m.metrics.observe("create_pair", time.Since(start).Seconds(), err)
	m.metrics.setPools(m.store.Len())
	return err
}

func (m *Manager) createPair(a, b common.Address) error {
	key, err := model.CanonicalPair(a, b)
	if err != nil {
		return err
	}
	if !m.registry.IsRegistered(key.Low) {
		return fmt.Errorf("%w: %s", ErrUnregisteredAsset, key.Low.Hex())
	}
	if !m.registry.IsRegistered(key.High) {
		return fmt.Errorf("%w: %s", ErrUnregisteredAsset, key.High.Hex())
	}
	if err := m.store.Create(key); err != nil {
		return err
	}

	m.emit(model.EventPairCreated, model.PairCreatedData{
		AssetLow:  key.Low.Hex(),
		AssetHigh: key.High.Hex(),
	})
	m.logger.Info("pair created", zap.Stringer("pair", key))
	return nil
}

// AddLiquidity pulls both desired amounts from the caller into custody and
// credits the pool's reserves. The whole deposit commits or none of it does:
// if the second transfer leg fails, the first is compensated before the
// error is returned, and reserves are left untouched.
func (m *Manager) AddLiquidity(ctx context.Context, caller, a, b common.Address, amountA, amountB *uint256.Int) error {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.addLiquidity(ctx, caller, a, b, amountA, amountB)
	m.metrics.observe("add_liquidity", time.Since(start).Seconds(), err)
	return err
}

func (m *Manager) addLiquidity(ctx context.Context, caller, a, b common.Address, amountA, amountB *uint256.Int) error {
	key, err := model.CanonicalPair(a, b)
	if err != nil {
		return err
	}

	amountLow, amountHigh := amountA, amountB
	if key.Low != a {
		amountLow, amountHigh = amountB, amountA
	}
	if amountLow == nil || amountHigh == nil {
		return fmt.Errorf("%w: nil amount", ErrInsufficientInput)
	}

	pool, ok := m.store.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPairNotFound, key)
	}

	// Validate the reserve additions before moving any funds, so a late
	// overflow cannot strand transferred balances.
	var scratch uint256.Int
	if _, overflow := scratch.AddOverflow(pool.ReserveLow, amountLow); overflow {
		return fmt.Errorf("%w: low reserve deposit", ErrArithmeticOverflow)
	}
	if _, overflow := scratch.AddOverflow(pool.ReserveHigh, amountHigh); overflow {
		return fmt.Errorf("%w: high reserve deposit", ErrArithmeticOverflow)
	}

	if err := m.ledger.TransferFrom(ctx, key.Low, caller, m.cfg.Custody, amountLow); err != nil {
		return fmt.Errorf("%w: deposit %s: %v", ErrTransferFailed, key.Low.Hex(), err)
	}
	if err := m.ledger.TransferFrom(ctx, key.High, caller, m.cfg.Custody, amountHigh); err != nil {
		err = fmt.Errorf("%w: deposit %s: %v", ErrTransferFailed, key.High.Hex(), err)
		return m.compensate(ctx, err, key.Low, caller, amountLow)
	}

	if err := m.store.ApplyDeposit(key, amountLow, amountHigh); err != nil {
		return err
	}

	m.logger.Info("liquidity added",
		zap.Stringer("pair", key),
		zap.String("caller", caller.Hex()),
		zap.String("amount_low", amountLow.Dec()),
		zap.String("amount_high", amountHigh.Dec()),
	)
	return nil
}

// Swap trades amountIn of tokenIn for tokenOut at the constant-product
// price. The input leg is pulled first; if paying out the quote fails, the
// input is refunded and no reserve changes.
func (m *Manager) Swap(ctx context.Context, caller common.Address, amountIn *uint256.Int, tokenIn, tokenOut common.Address) (*uint256.Int, error) {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	out, err := m.swap(ctx, caller, amountIn, tokenIn, tokenOut)
	m.metrics.observe("swap", time.Since(start).Seconds(), err)
	return out, err
}

func (m *Manager) swap(ctx context.Context, caller common.Address, amountIn *uint256.Int, tokenIn, tokenOut common.Address) (*uint256.Int, error) {
	if amountIn == nil || amountIn.IsZero() {
		return nil, ErrInsufficientInput
	}

	key, err := model.CanonicalPair(tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}

	pool, ok := m.store.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPairNotFound, key)
	}

	lowIn := tokenIn == key.Low
	reserveIn, reserveOut := pool.ReserveLow, pool.ReserveHigh
	if !lowIn {
		reserveIn, reserveOut = pool.ReserveHigh, pool.ReserveLow
	}

	amountOut, err := QuoteOutput(amountIn, reserveIn, reserveOut)
	if err != nil {
		return nil, err
	}
	if amountOut.IsZero() {
		return nil, fmt.Errorf("%w: input %s too small against reserves",
			ErrInsufficientOutput, amountIn.Dec())
	}

	// The input-side reserve growth is the only remaining arithmetic that
	// can fail; check it before any funds move.
	var scratch uint256.Int
	if _, overflow := scratch.AddOverflow(reserveIn, amountIn); overflow {
		return nil, fmt.Errorf("%w: input reserve", ErrArithmeticOverflow)
	}

	if err := m.ledger.TransferFrom(ctx, tokenIn, caller, m.cfg.Custody, amountIn); err != nil {
		return nil, fmt.Errorf("%w: swap input %s: %v", ErrTransferFailed, tokenIn.Hex(), err)
	}
	if err := m.ledger.Transfer(ctx, tokenOut, caller, amountOut); err != nil {
		err = fmt.Errorf("%w: swap output %s: %v", ErrTransferFailed, tokenOut.Hex(), err)
		return nil, m.compensate(ctx, err, tokenIn, caller, amountIn)
	}

	if err := m.store.ApplySwap(key, lowIn, amountIn, amountOut); err != nil {
		return nil, err
	}

	m.emit(model.EventSwap, model.SwapData{
		Sender:    caller.Hex(),
		AmountIn:  amountIn.Dec(),
		AmountOut: amountOut.Dec(),
		TokenIn:   tokenIn.Hex(),
		TokenOut:  tokenOut.Hex(),
	})
	m.logger.Info("swap executed",
		zap.Stringer("pair", key),
		zap.String("caller", caller.Hex()),
		zap.String("amount_in", amountIn.Dec()),
		zap.String("amount_out", amountOut.Dec()),
	)
	return amountOut, nil
}

// Pool returns a snapshot of the pool for the unordered pair (a, b).
func (m *Manager) Pool(a, b common.Address) (model.Pool, error) {
	key, err := model.CanonicalPair(a, b)
	if err != nil {
		return model.Pool{}, err
	}
	pool, ok := m.store.Get(key)
	if !ok {
		return model.Pool{}, fmt.Errorf("%w: %s", ErrPairNotFound, key)
	}
	return pool, nil
}

// IsRegistered reports whether an asset has been registered.
func (m *Manager) IsRegistered(asset common.Address) bool {
	return m.registry.IsRegistered(asset)
}

// compensate returns already-pulled funds to the caller after a later
// transfer leg failed. If the refund itself fails, both errors are joined;
// the reserves were never touched either way.
func (m *Manager) compensate(ctx context.Context, cause error, asset, caller common.Address, amount *uint256.Int) error {
	if refundErr := m.ledger.Transfer(ctx, asset, caller, amount); refundErr != nil {
		m.logger.Error("compensating transfer failed, funds held in custody",
			zap.String("asset", asset.Hex()),
			zap.String("caller", caller.Hex()),
			zap.String("amount", amount.Dec()),
			zap.Error(refundErr),
		)
		return errors.Join(cause, fmt.Errorf("compensating transfer: %w", refundErr))
	}
	return cause
}

// emit journals an event. A sink failure does not abort the already
// committed state transition; it is surfaced through the log instead.
func (m *Manager) emit(name string, payload interface{}) {
	if m.sink == nil {
		return
	}
	m.seq++
	record := model.EventRecord{
		Seq:       m.seq,
		EventName: name,
		EmittedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Decoded:   payload,
	}
	if err := m.sink.PutEventBatch([]model.EventRecord{record}); err != nil {
		m.logger.Error("journal event", zap.String("event", name), zap.Error(err))
	}
}
