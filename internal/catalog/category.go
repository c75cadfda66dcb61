package catalog

import "fmt"

// Category identifies one of the seven component kinds handled by the service.
type Category string

const (
	SolarPanel          Category = "solar_panel"
	Inverter            Category = "inverter"
	MountingStructure   Category = "mounting_structure"
	BOSComponent        Category = "bos_component"
	ProtectionEquipment Category = "protection_equipment"
	EarthingSystem      Category = "earthing_system"
	NetMetering         Category = "net_metering"
)

// All lists every category in fixed order (used for schema creation,
// seeding and concurrent catalog fetches).
var All = []Category{
	SolarPanel,
	Inverter,
	MountingStructure,
	BOSComponent,
	ProtectionEquipment,
	EarthingSystem,
	NetMetering,
}

// labels maps categories to their human-readable names used in
// quotation line items and exports.
var labels = map[Category]string{
	SolarPanel:          "Solar Panel",
	Inverter:            "Inverter",
	MountingStructure:   "Mounting Structure",
	BOSComponent:        "BOS Component",
	ProtectionEquipment: "Protection Equipment",
	EarthingSystem:      "Earthing System",
	NetMetering:         "Net Metering",
}

// routeSlugs maps the API path segments (e.g. /api/solar-panels/) to
// categories. One parameterized handler serves all seven.
var routeSlugs = map[string]Category{
	"solar-panels":         SolarPanel,
	"inverters":            Inverter,
	"mounting-structures":  MountingStructure,
	"bos-components":       BOSComponent,
	"protection-equipment": ProtectionEquipment,
	"earthing-systems":     EarthingSystem,
	"net-metering":         NetMetering,
}

// inventoryKeys maps the per-user inventory section names to categories.
// The names follow the stored aggregate layout (SolarPanels, Inverters, ...).
var inventoryKeys = map[string]Category{
	"SolarPanels":         SolarPanel,
	"Inverters":           Inverter,
	"MountingStructures":  MountingStructure,
	"BOSComponents":       BOSComponent,
	"ProtectionEquipment": ProtectionEquipment,
	"EarthingSystems":     EarthingSystem,
	"NetMetering":         NetMetering,
}

// Label returns the display name for the category.
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// InventoryKey returns the section name used in the inventory aggregate.
func (c Category) InventoryKey() string {
	for key, cat := range inventoryKeys {
		if cat == c {
			return key
		}
	}
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

// RouteSlugs returns a copy of the path segment to category mapping,
// used when registering per-category routes.
func RouteSlugs() map[string]Category {
	out := make(map[string]Category, len(routeSlugs))
	for slug, cat := range routeSlugs {
		out[slug] = cat
	}
	return out
}

// FromRouteSlug resolves an API path segment such as "solar-panels".
func FromRouteSlug(slug string) (Category, error) {
	if c, ok := routeSlugs[slug]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown component category: %q", slug)
}

// FromInventoryKey resolves an inventory section name such as "SolarPanels".
func FromInventoryKey(key string) (Category, error) {
	if c, ok := inventoryKeys[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown inventory category: %q", key)
}
