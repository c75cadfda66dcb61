package quotation

import (
	"math"

	"github.com/shopspring/decimal"
)

// RequiredPanelCount returns how many panels of unitPowerW watts are
// needed to reach capacityKW kilowatts. The count is rounded to the
// nearest whole panel and never drops below one, so a tiny system still
// gets a sellable quotation.
func RequiredPanelCount(capacityKW, unitPowerW float64) int {
	if unitPowerW <= 0 {
		return 1
	}
	n := int(math.Round(capacityKW / (unitPowerW / 1000)))
	if n < 1 {
		return 1
	}
	return n
}

// LineAmount returns unit rate times quantity.
func LineAmount(unitRate decimal.Decimal, quantity int) decimal.Decimal {
	return unitRate.Mul(decimal.NewFromInt(int64(quantity)))
}

// LineProfit returns the per-unit markup scaled by quantity.
func LineProfit(unitProfit decimal.Decimal, quantity int) decimal.Decimal {
	return unitProfit.Mul(decimal.NewFromInt(int64(quantity)))
}

// Totals sums a quotation's line items. Price is cost plus profit.
func Totals(lines []LineItem) (cost, profit, price decimal.Decimal) {
	for _, l := range lines {
		cost = cost.Add(l.Amount)
		profit = profit.Add(l.Profit)
	}
	return cost, profit, cost.Add(profit)
}
