package quotation

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/solarline/quotation-service/internal/catalog"
	"github.com/solarline/quotation-service/internal/pkg/token"
)

var tracer = otel.Tracer("quotation-generator")

// catalogConfigurable are the categories permuted in full-catalog mode.
// Order is the line-item order within each quotation.
var catalogConfigurable = []catalog.Category{
	catalog.Inverter,
	catalog.SolarPanel,
	catalog.MountingStructure,
}

var catalogFixed = []catalog.Category{
	catalog.BOSComponent,
	catalog.ProtectionEquipment,
}

// inventoryConfigurable additionally permutes earthing systems, and
// inventory mode carries net metering as a fixed inclusion.
var inventoryConfigurable = []catalog.Category{
	catalog.Inverter,
	catalog.SolarPanel,
	catalog.MountingStructure,
	catalog.EarthingSystem,
}

var inventoryFixed = []catalog.Category{
	catalog.BOSComponent,
	catalog.ProtectionEquipment,
	catalog.NetMetering,
}

// Generator produces ranked quotations from either the shared catalog
// or a single user's inventory. It holds no per-request state, so one
// Generator serves concurrent requests without coordination.
type Generator struct {
	catalog   CatalogSource
	inventory InventorySource
	batches   BatchStore
	config    *Config
	metrics   *MetricsRecorder
	logger    zerolog.Logger
}

// NewGenerator creates a generator. A nil config uses DefaultConfig;
// batches may be nil when persistence is never requested.
func NewGenerator(cat CatalogSource, inv InventorySource, batches BatchStore, config *Config, metrics *MetricsRecorder) *Generator {
	if config == nil {
		config = DefaultConfig()
	}
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	return &Generator{
		catalog:   cat,
		inventory: inv,
		batches:   batches,
		config:    config,
		metrics:   metrics,
		logger:    log.With().Str("component", "quotation-generator").Logger(),
	}
}

// candidate is the mode-neutral shape fed into the combination product.
// Catalog components and inventory entries both reduce to it.
type candidate struct {
	component catalog.Component
	quantity  int // 0 = derive (panels) or default to 1
	empty     bool
}

// GenerateCatalog runs full-catalog mode: filter, cap, permute
// inverter x panel x mounting, attach every BOS and protection item to
// each combination, price, rank.
func (g *Generator) GenerateCatalog(ctx context.Context, req CatalogRequest) ([]Quotation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "generator.catalog", trace.WithAttributes(
		attribute.Float64("capacity_kw", req.SystemCapacityKW),
	))
	defer span.End()

	start := time.Now()
	lists, err := g.fetchCatalog(ctx)
	if err != nil {
		g.metrics.RecordGeneration("catalog", time.Since(start).Seconds(), false)
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}

	applyFilters(lists, req)

	quotations := g.combine(combineParams{
		configurable: catalogConfigurable,
		fixed:        catalogFixed,
		lists:        lists,
		capacityKW:   req.SystemCapacityKW,
		derivePanels: true,
	})

	Rank(quotations)
	quotations = Truncate(quotations, req.MaxQuotations)

	g.metrics.RecordGeneration("catalog", time.Since(start).Seconds(), true)
	g.metrics.RecordQuotationCount("catalog", len(quotations))
	if len(quotations) == 0 {
		g.metrics.RecordEmptyResult("catalog")
	}
	g.logger.Debug().
		Int("quotations", len(quotations)).
		Float64("capacity_kw", req.SystemCapacityKW).
		Dur("elapsed", time.Since(start)).
		Msg("catalog generation complete")
	return quotations, nil
}

// GenerateInventory runs user-inventory mode against the caller's own
// stocked components, preferring recorded quantities and rates over
// catalog pricing.
func (g *Generator) GenerateInventory(ctx context.Context, req InventoryRequest) ([]Quotation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "generator.inventory", trace.WithAttributes(
		attribute.String("user_id", req.UserID),
	))
	defer span.End()

	start := time.Now()
	inv, err := g.inventory.InventoryByUser(ctx, req.UserID)
	if err != nil {
		g.metrics.RecordGeneration("inventory", time.Since(start).Seconds(), false)
		return nil, fmt.Errorf("fetching inventory for %s: %w", req.UserID, err)
	}

	lists := make(map[catalog.Category][]candidate, len(catalog.All))
	for _, cat := range catalog.All {
		for _, entry := range inv.Entries(cat) {
			lists[cat] = append(lists[cat], candidateFromEntry(cat, entry))
		}
	}

	quotations := g.combine(combineParams{
		configurable: inventoryConfigurable,
		fixed:        inventoryFixed,
		lists:        lists,
		capacityKW:   req.SystemCapacityKW,
		derivePanels: false,
	})

	Rank(quotations)
	quotations = Truncate(quotations, req.MaxQuotations)

	g.metrics.RecordGeneration("inventory", time.Since(start).Seconds(), true)
	g.metrics.RecordQuotationCount("inventory", len(quotations))
	if len(quotations) == 0 {
		g.metrics.RecordEmptyResult("inventory")
	}
	g.logger.Debug().
		Str("user_id", req.UserID).
		Int("quotations", len(quotations)).
		Dur("elapsed", time.Since(start)).
		Msg("inventory generation complete")
	return quotations, nil
}

// Persist stores a batch of quotations and returns the batch id.
func (g *Generator) Persist(ctx context.Context, userID string, quotations []Quotation) (string, error) {
	if g.batches == nil {
		return "", fmt.Errorf("batch persistence is not configured")
	}
	batch := Batch{
		ID:             token.Batch(),
		UserID:         userID,
		Quotations:     quotations,
		QuotationCount: len(quotations),
		CreatedAt:      time.Now().UTC(),
	}
	if err := g.batches.SaveBatch(ctx, batch); err != nil {
		g.metrics.RecordPersistError()
		return "", fmt.Errorf("saving batch %s: %w", batch.ID, err)
	}
	return batch.ID, nil
}

// fetchCatalog loads every category the catalog mode needs, one query
// per category run concurrently.
func (g *Generator) fetchCatalog(ctx context.Context) (map[catalog.Category][]candidate, error) {
	categories := make([]catalog.Category, 0, len(catalogConfigurable)+len(catalogFixed))
	categories = append(categories, catalogConfigurable...)
	categories = append(categories, catalogFixed...)

	var mu sync.Mutex
	lists := make(map[catalog.Category][]candidate, len(categories))

	eg, ctx := errgroup.WithContext(ctx)
	for _, cat := range categories {
		cat := cat
		eg.Go(func() error {
			components, err := g.catalog.ComponentsByCategory(ctx, cat)
			if err != nil {
				return fmt.Errorf("category %s: %w", cat, err)
			}
			cands := make([]candidate, 0, len(components))
			for _, comp := range components {
				cands = append(cands, candidate{component: comp})
			}
			mu.Lock()
			lists[cat] = cands
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}

type combineParams struct {
	configurable []catalog.Category
	fixed        []catalog.Category
	lists        map[catalog.Category][]candidate
	capacityKW   float64
	derivePanels bool
}

// combine caps each configurable list, takes the cross product, and
// prices every surviving combination. An absent configurable category
// contributes a single empty placeholder so the product shape is
// preserved; combinations holding a placeholder are then dropped, so a
// catalog gap yields zero quotations rather than an error.
func (g *Generator) combine(p combineParams) []Quotation {
	configurable := make([][]candidate, len(p.configurable))
	for i, cat := range p.configurable {
		list := p.lists[cat]
		if limit := g.config.CategoryLimit(cat); limit > 0 && len(list) > limit {
			list = list[:limit]
		}
		if len(list) == 0 {
			list = []candidate{{empty: true}}
		}
		configurable[i] = list
	}

	var fixedLines []LineItem
	for _, cat := range p.fixed {
		for _, cand := range p.lists[cat] {
			fixedLines = append(fixedLines, g.lineFor(cand, p, false))
		}
	}

	total := 1
	for _, list := range configurable {
		total *= len(list)
	}
	g.metrics.RecordCombinationCount(total)

	quotations := make([]Quotation, 0, total)
	indices := make([]int, len(configurable))
	now := time.Now().UTC()
combinations:
	for n := 0; n < total; n++ {
		lines := make([]LineItem, 0, len(configurable)+len(fixedLines))
		for i, list := range configurable {
			cand := list[indices[i]]
			if cand.empty {
				advance(indices, configurable)
				continue combinations
			}
			lines = append(lines, g.lineFor(cand, p, true))
		}
		lines = append(lines, slices.Clone(fixedLines)...)

		cost, profit, price := Totals(lines)
		quotations = append(quotations, Quotation{
			ID:          token.Quotation(),
			Lines:       lines,
			TotalCost:   cost,
			TotalProfit: profit,
			TotalPrice:  price,
			GeneratedAt: now,
		})
		advance(indices, configurable)
	}
	return quotations
}

// advance steps the odometer over the configurable lists.
func advance(indices []int, lists [][]candidate) {
	for i := len(indices) - 1; i >= 0; i-- {
		indices[i]++
		if indices[i] < len(lists[i]) {
			return
		}
		indices[i] = 0
	}
}

// lineFor prices one candidate. Panels in catalog mode derive their
// quantity from the target capacity; everything else uses the recorded
// quantity or defaults to one unit.
func (g *Generator) lineFor(cand candidate, p combineParams, configurable bool) LineItem {
	comp := cand.component
	qty := cand.quantity
	if qty <= 0 {
		qty = 1
	}
	if configurable && p.derivePanels && comp.Category == catalog.SolarPanel {
		qty = RequiredPanelCount(p.capacityKW, comp.PowerW)
	}
	return LineItem{
		Category:       comp.Category,
		ComponentID:    comp.ID,
		Brand:          comp.Brand,
		Model:          comp.Model,
		Specifications: comp.SpecSummary(),
		WarrantyYears:  comp.WarrantyYears,
		Quantity:       qty,
		UnitRate:       comp.Cost,
		Amount:         LineAmount(comp.Cost, qty),
		Profit:         LineProfit(comp.Profit, qty),
	}
}

// candidateFromEntry adapts an inventory row into the generator's
// candidate shape, carrying the user's own rate and markup.
func candidateFromEntry(cat catalog.Category, entry catalog.InventoryEntry) candidate {
	return candidate{
		component: catalog.Component{
			Category: cat,
			Brand:    entry.Brand,
			Model:    entry.Model,
			PowerW:   entry.PowerW,
			Cost:     entry.Rate,
			Profit:   entry.Profit,
		},
		quantity: entry.Quantity,
	}
}

// applyFilters narrows the catalog lists in place per the request's
// brand/material filters. Unset filters pass everything through.
func applyFilters(lists map[catalog.Category][]candidate, req CatalogRequest) {
	if len(req.InverterBrands) > 0 {
		lists[catalog.Inverter] = filterCandidates(lists[catalog.Inverter], func(c catalog.Component) bool {
			return matchesFold(req.InverterBrands, c.Brand)
		})
	}
	if len(req.PanelBrands) > 0 {
		lists[catalog.SolarPanel] = filterCandidates(lists[catalog.SolarPanel], func(c catalog.Component) bool {
			return matchesFold(req.PanelBrands, c.Brand)
		})
	}
	if len(req.MountingMaterials) > 0 {
		lists[catalog.MountingStructure] = filterCandidates(lists[catalog.MountingStructure], func(c catalog.Component) bool {
			return matchesFold(req.MountingMaterials, c.Material)
		})
	}
	if len(req.MountingCoatings) > 0 {
		lists[catalog.MountingStructure] = filterCandidates(lists[catalog.MountingStructure], func(c catalog.Component) bool {
			return matchesFold(req.MountingCoatings, c.Coating)
		})
	}
}

func filterCandidates(list []candidate, keep func(catalog.Component) bool) []candidate {
	out := list[:0]
	for _, cand := range list {
		if keep(cand.component) {
			out = append(out, cand)
		}
	}
	return out
}

func matchesFold(wanted []string, value string) bool {
	for _, w := range wanted {
		if strings.EqualFold(w, value) {
			return true
		}
	}
	return false
}
