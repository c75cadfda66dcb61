package quotation

import "sort"

// Rank orders quotations by descending total profit, then ascending
// total cost. The sort is stable so equal quotations keep their
// generation order, which keeps output deterministic for a given
// catalog snapshot.
func Rank(quotations []Quotation) {
	sort.SliceStable(quotations, func(i, j int) bool {
		if c := quotations[i].TotalProfit.Cmp(quotations[j].TotalProfit); c != 0 {
			return c > 0
		}
		return quotations[i].TotalCost.Cmp(quotations[j].TotalCost) < 0
	})
}

// Truncate caps the ranked list at max entries. A nil max means no
// limit. Truncation always happens after ranking, so the kept
// quotations are the most profitable ones, not the first generated.
func Truncate(quotations []Quotation, max *int) []Quotation {
	if max == nil || *max <= 0 || len(quotations) <= *max {
		return quotations
	}
	return quotations[:*max]
}
