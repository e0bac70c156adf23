// Package sweep turns a validated configuration into a volatility sweep:
// it resolves market levels through a data provider, builds the sigma
// grid, values the contract across it and packages the result for
// reporting.
//
// Responsibilities:
//   - Resolve spot and strike using rules such as SPOT, SPOT + 10, or ABS:600
//   - Fetch market levels via data providers when configured
//   - Produce deterministic, replayable scenario rows
package sweep

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// Typed errors allow callers and tests to detect failure categories
// without string matching.
var (
	ErrInvalidRule = errors.New("invalid rule expression")
)

// EvalRule converts a spot or strike rule into a concrete price level,
// rounded to cents.
//
// Supported formats:
//   - SPOT
//   - SPOT + 10, SPOT * 0.95
//   - ABS:600
//
// Parameters:
//   - rule: Rule expression
//   - spot: Spot price at evaluation time
//
// Returns:
//   - float64: Resolved price level
//   - error: If the expression cannot be evaluated
func EvalRule(rule string, spot float64) (float64, error) {
	rule = strings.TrimSpace(strings.ToUpper(rule))
	if rule == "" {
		return 0, fmt.Errorf("%w: empty rule", ErrInvalidRule)
	}

	if strings.HasPrefix(rule, "ABS:") {
		abs, err := strconv.ParseFloat(strings.TrimPrefix(rule, "ABS:"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidRule, rule)
		}
		return roundCents(abs), nil
	}

	expr, err := govaluate.NewEvaluableExpression(rule)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidRule, rule, err)
	}

	result, err := expr.Evaluate(map[string]any{"SPOT": spot})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidRule, rule, err)
	}

	f, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s: non-numeric result", ErrInvalidRule, rule)
	}

	return roundCents(f), nil
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
