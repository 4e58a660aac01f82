package host

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"miniswap/internal/amm"
)

// RunConfig holds runtime settings for the script host.
type RunConfig struct {
	OpsPath string
	// HaltOnError stops the run at the first failed operation instead of
	// logging it and moving on.
	HaltOnError bool
}

// Runner replays a JSONL operations script through the pool manager,
// standing in for the serialized host execution environment: one operation
// at a time, each committed or rejected before the next starts.
type Runner struct {
	cfg     RunConfig
	manager *amm.Manager
	logger  *zap.Logger
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, manager *amm.Manager, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, manager: manager, logger: logger}
}

// Run executes the script.
func (r *Runner) Run(ctx context.Context) error {
	if r.manager == nil {
		return fmt.Errorf("manager is nil")
	}

	file, err := os.Open(r.cfg.OpsPath)
	if err != nil {
		return fmt.Errorf("open ops file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var line, applied, failed int
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		line++
		if len(raw) == 0 {
			continue
		}

		var op Op
		if err := json.Unmarshal(raw, &op); err != nil {
			return fmt.Errorf("line %d: decode op: %w", line, err)
		}

		if err := r.apply(ctx, op); err != nil {
			failed++
			if r.cfg.HaltOnError {
				return fmt.Errorf("line %d: %s: %w", line, op.Op, err)
			}
			r.logger.Warn("operation rejected", zap.Int("line", line), zap.String("op", op.Op), zap.Error(err))
			continue
		}
		applied++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read ops file: %w", err)
	}

	r.logger.Info("run complete", zap.Int("applied", applied), zap.Int("rejected", failed))
	return nil
}

func (r *Runner) apply(ctx context.Context, op Op) error {
	switch op.Op {
	case OpRegister:
		asset, err := ParseAddress(op.Asset)
		if err != nil {
			return err
		}
		return r.manager.RegisterAsset(ctx, asset)

	case OpCreatePair:
		a, err := ParseAddress(op.AssetA)
		if err != nil {
			return err
		}
		b, err := ParseAddress(op.AssetB)
		if err != nil {
			return err
		}
		return r.manager.CreatePair(ctx, a, b)

	case OpAddLiquidity:
		caller, err := ParseAddress(op.Caller)
		if err != nil {
			return err
		}
		a, err := ParseAddress(op.AssetA)
		if err != nil {
			return err
		}
		b, err := ParseAddress(op.AssetB)
		if err != nil {
			return err
		}
		amountA, err := ParseAmount(op.AmountA)
		if err != nil {
			return err
		}
		amountB, err := ParseAmount(op.AmountB)
		if err != nil {
			return err
		}
		return r.manager.AddLiquidity(ctx, caller, a, b, amountA, amountB)

	case OpSwap:
		caller, err := ParseAddress(op.Caller)
		if err != nil {
			return err
		}
		amountIn, err := ParseAmount(op.AmountIn)
		if err != nil {
			return err
		}
		tokenIn, err := ParseAddress(op.TokenIn)
		if err != nil {
			return err
		}
		tokenOut, err := ParseAddress(op.TokenOut)
		if err != nil {
			return err
		}
		_, err = r.manager.Swap(ctx, caller, amountIn, tokenIn, tokenOut)
		return err

	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}
