package finance

import "github.com/shopspring/decimal"

// GoalProgress returns round(saved / amount * 100), or 0 when amount is not
// positive. The result is not clamped; see ClampProgress.
func GoalProgress(saved, amount decimal.Decimal) int {
	if !amount.IsPositive() {
		return 0
	}
	return int(Round(saved.Div(amount).Mul(percentFactor)).IntPart())
}

// ClampProgress bounds a stored progress value to [0, 100] for display.
func ClampProgress(progress int) int {
	return max(0, min(progress, 100))
}
