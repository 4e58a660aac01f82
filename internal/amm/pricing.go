package amm

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Fee encoding: 0.3% charged on the input side, expressed as 997/1000.
var (
	feeMul = uint256.NewInt(997)
	feeDen = uint256.NewInt(1000)
)

// QuoteOutput prices a swap against the constant-product curve.
//
// amountOut = floor(amountIn*997*reserveOut / (reserveIn*1000 + amountIn*997))
//
// The division truncates, which biases rounding against the trader; together
// with the input-side fee this keeps reserveIn'*reserveOut' from ever
// dropping below reserveIn*reserveOut. Every intermediate product is checked
// for 256-bit overflow and fails with ErrArithmeticOverflow instead of
// wrapping.
func QuoteOutput(amountIn, reserveIn, reserveOut *uint256.Int) (*uint256.Int, error) {
	if amountIn == nil || amountIn.IsZero() {
		return nil, ErrInsufficientInput
	}
	if reserveIn == nil || reserveOut == nil || reserveIn.IsZero() || reserveOut.IsZero() {
		return nil, ErrInsufficientLiquidity
	}

	amountInWithFee := new(uint256.Int)
	if _, overflow := amountInWithFee.MulOverflow(amountIn, feeMul); overflow {
		return nil, fmt.Errorf("%w: amountIn * 997", ErrArithmeticOverflow)
	}

	numerator := new(uint256.Int)
	if _, overflow := numerator.MulOverflow(amountInWithFee, reserveOut); overflow {
		return nil, fmt.Errorf("%w: fee-adjusted input * reserveOut", ErrArithmeticOverflow)
	}

	denominator := new(uint256.Int)
	if _, overflow := denominator.MulOverflow(reserveIn, feeDen); overflow {
		return nil, fmt.Errorf("%w: reserveIn * 1000", ErrArithmeticOverflow)
	}
	if _, overflow := denominator.AddOverflow(denominator, amountInWithFee); overflow {
		return nil, fmt.Errorf("%w: pricing denominator", ErrArithmeticOverflow)
	}

	return new(uint256.Int).Div(numerator, denominator), nil
}
