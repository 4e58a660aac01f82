package amm

import "errors"

var (
	// ErrAlreadyRegistered is returned when an asset is registered twice.
	ErrAlreadyRegistered = errors.New("asset already registered")
	// ErrInvalidAsset is returned when an asset fails registration
	// validation, e.g. the ledger reports a zero total supply.
	ErrInvalidAsset = errors.New("invalid asset")
	// ErrUnregisteredAsset is returned when a pair references an asset that
	// was never registered.
	ErrUnregisteredAsset = errors.New("asset not registered")
	// ErrPairExists is returned when a pool already exists for a pair.
	ErrPairExists = errors.New("pair already exists")
	// ErrPairNotFound is returned when no pool exists for a pair.
	ErrPairNotFound = errors.New("pair not found")
	// ErrInsufficientInput is returned for a zero input amount.
	ErrInsufficientInput = errors.New("insufficient input amount")
	// ErrInsufficientLiquidity is returned when a pool side has no reserves.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	// ErrInsufficientOutput is returned when the quoted output rounds to zero.
	ErrInsufficientOutput = errors.New("insufficient output amount")
	// ErrReserveUnderflow is returned when a swap would pay out more than
	// the reserve holds. Quoted outputs never reach this.
	ErrReserveUnderflow = errors.New("reserve underflow")
	// ErrArithmeticOverflow is returned when a reserve or pricing
	// computation exceeds 256 bits. Arithmetic never wraps silently.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrTransferFailed wraps a ledger transfer rejection.
	ErrTransferFailed = errors.New("transfer failed")
)
