package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRouteSlug(t *testing.T) {
	cat, err := FromRouteSlug("solar-panels")
	require.NoError(t, err)
	assert.Equal(t, SolarPanel, cat)

	cat, err = FromRouteSlug("net-metering")
	require.NoError(t, err)
	assert.Equal(t, NetMetering, cat)

	_, err = FromRouteSlug("batteries")
	assert.Error(t, err)
}

func TestFromInventoryKey(t *testing.T) {
	cat, err := FromInventoryKey("SolarPanels")
	require.NoError(t, err)
	assert.Equal(t, SolarPanel, cat)

	_, err = FromInventoryKey("Batteries")
	assert.Error(t, err)
}

func TestInventoryKeyRoundTrip(t *testing.T) {
	for _, cat := range All {
		resolved, err := FromInventoryKey(cat.InventoryKey())
		require.NoError(t, err)
		assert.Equal(t, cat, resolved)
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Solar Panel", SolarPanel.Label())
	assert.Equal(t, "BOS Component", BOSComponent.Label())
	assert.Equal(t, "custom", Category("custom").Label())
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, EarthingSystem.Valid())
	assert.False(t, Category("battery").Valid())
}

func TestSpecSummaryPanel(t *testing.T) {
	comp := Component{
		Category: SolarPanel,
		PowerW:   550,
		Specs:    map[string]any{"efficiency": 21.3},
	}
	assert.Equal(t, "550W, 21.3% efficiency", comp.SpecSummary())
}

func TestSpecSummaryInverter(t *testing.T) {
	comp := Component{
		Category: Inverter,
		Specs:    map[string]any{"efficiency": 98.2, "mppt_channels": 2},
	}
	assert.Equal(t, "98.2% efficiency, 2 MPPT channels", comp.SpecSummary())
}

func TestSpecSummaryMounting(t *testing.T) {
	comp := Component{
		Category: MountingStructure,
		Material: "Aluminum",
		Coating:  "Anodized",
	}
	assert.Equal(t, "Aluminum, Anodized coated", comp.SpecSummary())
}

func TestSpecSummaryFallbackDescription(t *testing.T) {
	comp := Component{
		Category: BOSComponent,
		Specs:    map[string]any{"description": "6mm² PV1-F Solar Cable"},
	}
	assert.Equal(t, "6mm² PV1-F Solar Cable", comp.SpecSummary())
}

func TestSpecSummaryEmpty(t *testing.T) {
	assert.Equal(t, "", Component{Category: ProtectionEquipment}.SpecSummary())
}

func TestInventoryEntriesAndEmpty(t *testing.T) {
	inv := Inventory{UserID: "usr_1"}
	assert.True(t, inv.Empty())
	assert.Nil(t, inv.Entries(SolarPanel))

	inv.Sections = map[Category][]InventoryEntry{
		SolarPanel: {{Model: "P1", Quantity: 4, Rate: decimal.NewFromInt(150)}},
	}
	assert.False(t, inv.Empty())
	assert.Len(t, inv.Entries(SolarPanel), 1)
	assert.Nil(t, inv.Entries(Inverter))
}
