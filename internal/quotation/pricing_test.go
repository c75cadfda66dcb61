package quotation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/solarline/quotation-service/internal/catalog"
)

func TestRequiredPanelCount(t *testing.T) {
	tests := []struct {
		name       string
		capacityKW float64
		unitPowerW float64
		expected   int
	}{
		{"5kW of 400W panels", 5, 400, 13},
		{"5kW of 450W panels", 5, 450, 11},
		{"exact fit", 4, 400, 10},
		{"rounds to nearest", 4.1, 400, 10},
		{"rounds up past half", 4.25, 400, 11},
		{"tiny system never below one", 0.1, 550, 1},
		{"zero power rating", 5, 0, 1},
		{"negative power rating", 5, -100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RequiredPanelCount(tt.capacityKW, tt.unitPowerW))
		})
	}
}

func TestLineAmount(t *testing.T) {
	assert.True(t, decimal.NewFromInt(1950).Equal(LineAmount(decimal.NewFromInt(150), 13)))
	assert.True(t, decimal.Zero.Equal(LineAmount(decimal.Zero, 5)))
}

func TestLineProfit(t *testing.T) {
	assert.True(t, decimal.NewFromInt(390).Equal(LineProfit(decimal.NewFromInt(30), 13)))
}

func TestTotalsIdentity(t *testing.T) {
	lines := []LineItem{
		{
			Category: catalog.Inverter,
			Quantity: 1,
			UnitRate: decimal.NewFromInt(1000),
			Amount:   decimal.NewFromInt(1000),
			Profit:   decimal.NewFromInt(200),
		},
		{
			Category: catalog.SolarPanel,
			Quantity: 13,
			UnitRate: decimal.NewFromInt(150),
			Amount:   decimal.NewFromInt(1950),
			Profit:   decimal.NewFromInt(390),
		},
	}

	cost, profit, price := Totals(lines)
	assert.True(t, decimal.NewFromInt(2950).Equal(cost))
	assert.True(t, decimal.NewFromInt(590).Equal(profit))
	assert.True(t, cost.Add(profit).Equal(price))
}

func TestTotalsEmpty(t *testing.T) {
	cost, profit, price := Totals(nil)
	assert.True(t, cost.IsZero())
	assert.True(t, profit.IsZero())
	assert.True(t, price.IsZero())
}
