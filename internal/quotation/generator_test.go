package quotation

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarline/quotation-service/internal/catalog"
)

// fakeCatalog is an in-memory CatalogSource for testing.
type fakeCatalog struct {
	components map[catalog.Category][]catalog.Component
	err        error
}

func (f *fakeCatalog) ComponentsByCategory(_ context.Context, cat catalog.Category) ([]catalog.Component, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.components[cat], nil
}

// fakeInventory is an in-memory InventorySource for testing.
type fakeInventory struct {
	inventories map[string]catalog.Inventory
}

func (f *fakeInventory) InventoryByUser(_ context.Context, userID string) (catalog.Inventory, error) {
	if inv, ok := f.inventories[userID]; ok {
		return inv, nil
	}
	return catalog.Inventory{UserID: userID, Sections: map[catalog.Category][]catalog.InventoryEntry{}}, nil
}

// fakeBatchStore records saved batches.
type fakeBatchStore struct {
	saved []Batch
	err   error
}

func (f *fakeBatchStore) SaveBatch(_ context.Context, batch Batch) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, batch)
	return nil
}

func component(cat catalog.Category, brand, model string, powerW float64, cost, profit int64) catalog.Component {
	return catalog.Component{
		ID:       model,
		Category: cat,
		Brand:    brand,
		Model:    model,
		PowerW:   powerW,
		Cost:     decimal.NewFromInt(cost),
		Profit:   decimal.NewFromInt(profit),
	}
}

func referenceCatalog() *fakeCatalog {
	return &fakeCatalog{components: map[catalog.Category][]catalog.Component{
		catalog.Inverter: {
			component(catalog.Inverter, "SolarEdge", "INV-1", 0, 1000, 200),
		},
		catalog.SolarPanel: {
			component(catalog.SolarPanel, "SunPower", "PANEL-A", 400, 150, 30),
			component(catalog.SolarPanel, "LG", "PANEL-B", 450, 160, 32),
		},
		catalog.MountingStructure: {
			component(catalog.MountingStructure, "IronRidge", "MOUNT-1", 0, 100, 20),
		},
	}}
}

func newTestGenerator(cat CatalogSource, inv InventorySource, batches BatchStore) *Generator {
	return NewGenerator(cat, inv, batches, DefaultConfig(), NewMetricsRecorder())
}

func TestGenerateCatalogReferenceExample(t *testing.T) {
	g := newTestGenerator(referenceCatalog(), nil, nil)

	max := 10
	quotations, err := g.GenerateCatalog(context.Background(), CatalogRequest{
		SystemCapacityKW: 5,
		MaxQuotations:    &max,
	})
	require.NoError(t, err)
	require.Len(t, quotations, 2)

	// Panel A: round(5/0.4) = 13 units at 150 -> 1950 cost, 390 profit.
	// With inverter (1000/200) and mounting (100/20): cost 3050, profit 610.
	first := quotations[0]
	assert.True(t, decimal.NewFromInt(3050).Equal(first.TotalCost), "cost %s", first.TotalCost)
	assert.True(t, decimal.NewFromInt(610).Equal(first.TotalProfit), "profit %s", first.TotalProfit)
	assert.True(t, decimal.NewFromInt(3660).Equal(first.TotalPrice), "price %s", first.TotalPrice)

	// Panel B: round(5/0.45) = 11 units at 160 -> 1760 cost, 352 profit.
	second := quotations[1]
	assert.True(t, decimal.NewFromInt(2860).Equal(second.TotalCost), "cost %s", second.TotalCost)
	assert.True(t, decimal.NewFromInt(572).Equal(second.TotalProfit), "profit %s", second.TotalProfit)

	// Descending profit order.
	assert.True(t, first.TotalProfit.GreaterThan(second.TotalProfit))

	for _, quot := range quotations {
		assert.True(t, quot.TotalPrice.Equal(quot.TotalCost.Add(quot.TotalProfit)))
		for _, line := range quot.Lines {
			expected := line.UnitRate.Mul(decimal.NewFromInt(int64(line.Quantity)))
			assert.True(t, expected.Equal(line.Amount), "line %s", line.Model)
		}
	}
}

func TestGenerateCatalogPanelQuantities(t *testing.T) {
	g := newTestGenerator(referenceCatalog(), nil, nil)

	quotations, err := g.GenerateCatalog(context.Background(), CatalogRequest{SystemCapacityKW: 5})
	require.NoError(t, err)
	require.Len(t, quotations, 2)

	quantities := map[string]int{}
	for _, quot := range quotations {
		for _, line := range quot.Lines {
			if line.Category == catalog.SolarPanel {
				quantities[line.Model] = line.Quantity
			}
		}
	}
	assert.Equal(t, 13, quantities["PANEL-A"])
	assert.Equal(t, 11, quantities["PANEL-B"])
}

func TestGenerateCatalogCartesianCompleteness(t *testing.T) {
	src := &fakeCatalog{components: map[catalog.Category][]catalog.Component{}}
	for i := 0; i < 4; i++ {
		src.components[catalog.Inverter] = append(src.components[catalog.Inverter],
			component(catalog.Inverter, "B", string(rune('a'+i)), 0, 1000, 100))
	}
	for i := 0; i < 5; i++ {
		src.components[catalog.SolarPanel] = append(src.components[catalog.SolarPanel],
			component(catalog.SolarPanel, "B", string(rune('f'+i)), 400, 150, 30))
	}
	for i := 0; i < 3; i++ {
		src.components[catalog.MountingStructure] = append(src.components[catalog.MountingStructure],
			component(catalog.MountingStructure, "B", string(rune('m'+i)), 0, 100, 10))
	}

	g := newTestGenerator(src, nil, nil)
	quotations, err := g.GenerateCatalog(context.Background(), CatalogRequest{SystemCapacityKW: 5})
	require.NoError(t, err)

	// Caps bound the product: 3 inverters x 3 panels x 2 mountings.
	assert.Len(t, quotations, 18)
}

func TestGenerateCatalogFixedInclusions(t *testing.T) {
	src := referenceCatalog()
	src.components[catalog.BOSComponent] = []catalog.Component{
		component(catalog.BOSComponent, "Prysmian", "CABLE-1", 0, 10, 2),
		component(catalog.BOSComponent, "ABB", "BOX-1", 0, 85, 20),
	}
	src.components[catalog.ProtectionEquipment] = []catalog.Component{
		component(catalog.ProtectionEquipment, "ABB", "BREAKER-1", 0, 45, 10),
	}

	g := newTestGenerator(src, nil, nil)
	quotations, err := g.GenerateCatalog(context.Background(), CatalogRequest{SystemCapacityKW: 5})
	require.NoError(t, err)
	require.Len(t, quotations, 2)

	for _, quot := range quotations {
		models := map[string]int{}
		for _, line := range quot.Lines {
			models[line.Model] = line.Quantity
		}
		assert.Equal(t, 1, models["CABLE-1"])
		assert.Equal(t, 1, models["BOX-1"])
		assert.Equal(t, 1, models["BREAKER-1"])
	}
}

func TestGenerateCatalogEmptyCategoryYieldsNoQuotations(t *testing.T) {
	src := referenceCatalog()
	delete(src.components, catalog.MountingStructure)

	g := newTestGenerator(src, nil, nil)
	quotations, err := g.GenerateCatalog(context.Background(), CatalogRequest{SystemCapacityKW: 5})
	require.NoError(t, err)
	assert.Empty(t, quotations)
}

func TestGenerateCatalogFilterEliminatesBrand(t *testing.T) {
	g := newTestGenerator(referenceCatalog(), nil, nil)

	quotations, err := g.GenerateCatalog(context.Background(), CatalogRequest{
		SystemCapacityKW: 5,
		PanelBrands:      []string{"NonexistentBrand"},
	})
	require.NoError(t, err)
	assert.Empty(t, quotations)
}

func TestGenerateCatalogFiltersCaseInsensitive(t *testing.T) {
	g := newTestGenerator(referenceCatalog(), nil, nil)

	quotations, err := g.GenerateCatalog(context.Background(), CatalogRequest{
		SystemCapacityKW: 5,
		PanelBrands:      []string{"sunpower"},
	})
	require.NoError(t, err)
	require.Len(t, quotations, 1)
	for _, line := range quotations[0].Lines {
		if line.Category == catalog.SolarPanel {
			assert.Equal(t, "PANEL-A", line.Model)
		}
	}
}

func TestGenerateCatalogMountingFilters(t *testing.T) {
	src := referenceCatalog()
	src.components[catalog.MountingStructure] = []catalog.Component{
		{ID: "M1", Category: catalog.MountingStructure, Brand: "IronRidge", Model: "M1",
			Material: "Aluminum", Coating: "Anodized",
			Cost: decimal.NewFromInt(100), Profit: decimal.NewFromInt(20)},
		{ID: "M2", Category: catalog.MountingStructure, Brand: "UniRac", Model: "M2",
			Material: "Galvanized Steel", Coating: "Hot-dip galvanized",
			Cost: decimal.NewFromInt(180), Profit: decimal.NewFromInt(45)},
	}

	g := newTestGenerator(src, nil, nil)
	quotations, err := g.GenerateCatalog(context.Background(), CatalogRequest{
		SystemCapacityKW:  5,
		MountingMaterials: []string{"Aluminum"},
	})
	require.NoError(t, err)
	require.Len(t, quotations, 2) // 2 panels x 1 surviving mounting
	for _, quot := range quotations {
		for _, line := range quot.Lines {
			if line.Category == catalog.MountingStructure {
				assert.Equal(t, "M1", line.Model)
			}
		}
	}
}

func TestGenerateCatalogRejectsInvalidCapacity(t *testing.T) {
	g := newTestGenerator(referenceCatalog(), nil, nil)

	_, err := g.GenerateCatalog(context.Background(), CatalogRequest{SystemCapacityKW: 0})
	var invalid ErrInvalidRequest
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "system_capacity_kw", invalid.Field)
}

func TestGenerateCatalogSourceError(t *testing.T) {
	g := newTestGenerator(&fakeCatalog{err: errors.New("connection refused")}, nil, nil)

	_, err := g.GenerateCatalog(context.Background(), CatalogRequest{SystemCapacityKW: 5})
	assert.Error(t, err)
}

func inventoryEntry(model string, qty int, rate, profit int64) catalog.InventoryEntry {
	return catalog.InventoryEntry{
		Model:    model,
		Quantity: qty,
		Rate:     decimal.NewFromInt(rate),
		Profit:   decimal.NewFromInt(profit),
	}
}

func TestGenerateInventoryUsesRecordedQuantities(t *testing.T) {
	inv := &fakeInventory{inventories: map[string]catalog.Inventory{
		"usr_1": {
			UserID: "usr_1",
			Sections: map[catalog.Category][]catalog.InventoryEntry{
				catalog.SolarPanel:        {inventoryEntry("PANEL-X", 20, 150, 30)},
				catalog.Inverter:          {inventoryEntry("INV-X", 2, 1000, 200)},
				catalog.MountingStructure: {inventoryEntry("MOUNT-X", 5, 100, 20)},
				catalog.EarthingSystem:    {inventoryEntry("EARTH-X", 3, 25, 5)},
			},
		},
	}}

	g := newTestGenerator(nil, inv, nil)
	quotations, err := g.GenerateInventory(context.Background(), InventoryRequest{
		UserID:           "usr_1",
		SystemCapacityKW: 5,
	})
	require.NoError(t, err)
	require.Len(t, quotations, 1)

	quantities := map[string]int{}
	for _, line := range quotations[0].Lines {
		quantities[line.Model] = line.Quantity
	}
	// Inventory mode never derives panel counts from capacity.
	assert.Equal(t, 20, quantities["PANEL-X"])
	assert.Equal(t, 2, quantities["INV-X"])
	assert.Equal(t, 5, quantities["MOUNT-X"])
	assert.Equal(t, 3, quantities["EARTH-X"])
}

func TestGenerateInventoryMissingEarthingYieldsNoQuotations(t *testing.T) {
	inv := &fakeInventory{inventories: map[string]catalog.Inventory{
		"usr_1": {
			UserID: "usr_1",
			Sections: map[catalog.Category][]catalog.InventoryEntry{
				catalog.SolarPanel:        {inventoryEntry("PANEL-X", 20, 150, 30)},
				catalog.Inverter:          {inventoryEntry("INV-X", 2, 1000, 200)},
				catalog.MountingStructure: {inventoryEntry("MOUNT-X", 5, 100, 20)},
			},
		},
	}}

	g := newTestGenerator(nil, inv, nil)
	quotations, err := g.GenerateInventory(context.Background(), InventoryRequest{
		UserID:           "usr_1",
		SystemCapacityKW: 5,
	})
	require.NoError(t, err)
	assert.Empty(t, quotations)
}

func TestGenerateInventoryUnknownUserIsEmptyNotError(t *testing.T) {
	g := newTestGenerator(nil, &fakeInventory{inventories: map[string]catalog.Inventory{}}, nil)

	quotations, err := g.GenerateInventory(context.Background(), InventoryRequest{
		UserID:           "usr_missing",
		SystemCapacityKW: 5,
	})
	require.NoError(t, err)
	assert.Empty(t, quotations)
}

func TestPersist(t *testing.T) {
	batches := &fakeBatchStore{}
	g := newTestGenerator(referenceCatalog(), nil, batches)

	quotations, err := g.GenerateCatalog(context.Background(), CatalogRequest{SystemCapacityKW: 5})
	require.NoError(t, err)

	batchID, err := g.Persist(context.Background(), "usr_1", quotations)
	require.NoError(t, err)
	assert.NotEmpty(t, batchID)
	require.Len(t, batches.saved, 1)
	assert.Equal(t, batchID, batches.saved[0].ID)
	assert.Equal(t, len(quotations), batches.saved[0].QuotationCount)
	assert.Equal(t, "usr_1", batches.saved[0].UserID)
}

func TestPersistFailure(t *testing.T) {
	batches := &fakeBatchStore{err: errors.New("disk full")}
	g := newTestGenerator(referenceCatalog(), nil, batches)

	_, err := g.Persist(context.Background(), "", []Quotation{{ID: "qt_x"}})
	assert.Error(t, err)
}

func TestQuotationIDsUniqueWithinBatch(t *testing.T) {
	g := newTestGenerator(referenceCatalog(), nil, nil)

	quotations, err := g.GenerateCatalog(context.Background(), CatalogRequest{SystemCapacityKW: 5})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, quot := range quotations {
		assert.False(t, seen[quot.ID], "duplicate id %s", quot.ID)
		seen[quot.ID] = true
	}
}
