package quotation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func q(id string, profit, cost int64) Quotation {
	p := decimal.NewFromInt(profit)
	c := decimal.NewFromInt(cost)
	return Quotation{
		ID:          id,
		TotalProfit: p,
		TotalCost:   c,
		TotalPrice:  c.Add(p),
	}
}

func ids(quotations []Quotation) []string {
	out := make([]string, len(quotations))
	for i, quot := range quotations {
		out[i] = quot.ID
	}
	return out
}

func TestRankDescendingProfit(t *testing.T) {
	quotations := []Quotation{
		q("low", 100, 500),
		q("high", 300, 900),
		q("mid", 200, 700),
	}

	Rank(quotations)
	assert.Equal(t, []string{"high", "mid", "low"}, ids(quotations))
}

func TestRankCostBreaksProfitTies(t *testing.T) {
	quotations := []Quotation{
		q("expensive", 200, 900),
		q("cheap", 200, 500),
	}

	Rank(quotations)
	assert.Equal(t, []string{"cheap", "expensive"}, ids(quotations))
}

func TestRankIsStableForIdenticalPairs(t *testing.T) {
	quotations := []Quotation{
		q("first", 200, 500),
		q("second", 200, 500),
		q("third", 200, 500),
	}

	Rank(quotations)
	assert.Equal(t, []string{"first", "second", "third"}, ids(quotations))
}

func TestTruncate(t *testing.T) {
	quotations := []Quotation{q("a", 3, 1), q("b", 2, 1), q("c", 1, 1)}

	two := 2
	assert.Len(t, Truncate(quotations, &two), 2)

	ten := 10
	assert.Len(t, Truncate(quotations, &ten), 3)

	// nil means no limit
	assert.Len(t, Truncate(quotations, nil), 3)
}

func TestTruncateKeepsTopRanked(t *testing.T) {
	quotations := []Quotation{
		q("worst", 10, 100),
		q("best", 500, 100),
		q("ok", 100, 100),
	}

	Rank(quotations)
	one := 1
	kept := Truncate(quotations, &one)
	assert.Equal(t, []string{"best"}, ids(kept))
}
