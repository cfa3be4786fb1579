package account

import (
	"github.com/shopspring/decimal"
)

// AccountLevel represents a customer's loyalty tier.
// Levels are derived purely from lifetime spend; they are never stored.
type AccountLevel string

const (
	AccountLevelBronze   AccountLevel = "bronze"
	AccountLevelSilver   AccountLevel = "silver"
	AccountLevelGold     AccountLevel = "gold"
	AccountLevelPlatinum AccountLevel = "platinum"
)

// levelThreshold pairs a level with the lifetime spend required to reach it.
type levelThreshold struct {
	Level    AccountLevel
	MinSpend decimal.Decimal
}

// thresholds are ordered ascending by MinSpend.
var thresholds = []levelThreshold{
	{AccountLevelBronze, decimal.Zero},
	{AccountLevelSilver, decimal.NewFromInt(250)},
	{AccountLevelGold, decimal.NewFromInt(1000)},
	{AccountLevelPlatinum, decimal.NewFromInt(5000)},
}

// LevelForSpend returns the highest level whose threshold the given
// lifetime spend meets. Negative spend maps to the base level.
func LevelForSpend(spend decimal.Decimal) AccountLevel {
	level := thresholds[0].Level
	for _, t := range thresholds {
		if spend.GreaterThanOrEqual(t.MinSpend) {
			level = t.Level
		}
	}
	return level
}

// NextThreshold returns the spend required for the next level after the
// given one. ok is false for the top level.
func NextThreshold(level AccountLevel) (AccountLevel, decimal.Decimal, bool) {
	for i, t := range thresholds {
		if t.Level == level && i+1 < len(thresholds) {
			next := thresholds[i+1]
			return next.Level, next.MinSpend, true
		}
	}
	return "", decimal.Zero, false
}

// ProgressToNext returns the fraction of the way from the current level's
// threshold to the next level's threshold, in [0, 1]. The top level always
// reports 1. Progress is monotonic in spend.
func ProgressToNext(spend decimal.Decimal) decimal.Decimal {
	if spend.IsNegative() {
		spend = decimal.Zero
	}

	current := LevelForSpend(spend)
	_, nextMin, ok := NextThreshold(current)
	if !ok {
		return decimal.NewFromInt(1)
	}

	var currentMin decimal.Decimal
	for _, t := range thresholds {
		if t.Level == current {
			currentMin = t.MinSpend
		}
	}

	span := nextMin.Sub(currentMin)
	progress := spend.Sub(currentMin).Div(span)
	if progress.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return progress
}

// PointsForOrder returns loyalty points earned for a paid order total:
// one point per whole currency unit.
func PointsForOrder(total decimal.Decimal) int {
	if total.IsNegative() {
		return 0
	}
	return int(total.Floor().IntPart())
}
