package host

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Operation kinds accepted by the run script.
const (
	OpRegister     = "register"
	OpCreatePair   = "create_pair"
	OpAddLiquidity = "add_liquidity"
	OpSwap         = "swap"
)

// Op is one scripted operation. Amounts are decimal strings in the asset's
// smallest unit; unused fields stay empty depending on the op kind.
type Op struct {
	Op      string `json:"op"`
	Caller  string `json:"caller,omitempty"`
	Asset   string `json:"asset,omitempty"`
	AssetA  string `json:"asset_a,omitempty"`
	AssetB  string `json:"asset_b,omitempty"`
	AmountA string `json:"amount_a,omitempty"`
	AmountB string `json:"amount_b,omitempty"`

	AmountIn string `json:"amount_in,omitempty"`
	TokenIn  string `json:"token_in,omitempty"`
	TokenOut string `json:"token_out,omitempty"`
}

// ParseAddress converts a string address into common.Address.
func ParseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid address: %q", input)
	}
	return common.HexToAddress(input), nil
}

// ParseAmount converts a decimal string into a 256-bit amount.
func ParseAmount(input string) (*uint256.Int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("amount is required")
	}
	amount, err := uint256.FromDecimal(input)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", input, err)
	}
	return amount, nil
}
