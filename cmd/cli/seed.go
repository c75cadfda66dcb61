package main

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/solarline/quotation-service/internal/catalog"
	"github.com/solarline/quotation-service/internal/pkg/token"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the catalog with a sample component set",
	Long: `Inserts a representative set of solar panels, inverters, mounting
structures, BOS components, protection equipment, earthing systems and
net metering hardware so quotations can be generated immediately.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	inserted := 0
	for _, comp := range sampleCatalog() {
		comp.ID = token.Component()
		comp.CreatedAt = time.Now().UTC()
		if err := store.CreateComponent(cmd.Context(), comp); err != nil {
			return err
		}
		inserted++
	}
	logger.Info().Int("components", inserted).Msg("Catalog seeded")
	return nil
}

func money(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func sampleCatalog() []catalog.Component {
	return []catalog.Component{
		// Solar panels
		{
			Category: catalog.SolarPanel, Brand: "SunPower", Model: "SPR-X22-370",
			PowerW: 370, Cost: money(250), Profit: money(50), WarrantyYears: 25,
			Specs: map[string]any{"efficiency": 22.7, "technology": "Monocrystalline", "cell_configuration": "96-cell"},
		},
		{
			Category: catalog.SolarPanel, Brand: "LG", Model: "NeON R",
			PowerW: 380, Cost: money(265), Profit: money(55), WarrantyYears: 25,
			Specs: map[string]any{"efficiency": 22.0, "technology": "N-type Monocrystalline", "cell_configuration": "60-cell"},
		},
		{
			Category: catalog.SolarPanel, Brand: "Canadian Solar", Model: "HiKu CS3W-415",
			PowerW: 415, Cost: money(180), Profit: money(35), WarrantyYears: 12,
			Specs: map[string]any{"efficiency": 18.8, "technology": "Poly PERC", "cell_configuration": "144-cell"},
		},

		// Inverters
		{
			Category: catalog.Inverter, Brand: "SolarEdge", Model: "SE10000H",
			Cost: money(2100), Profit: money(300), WarrantyYears: 12,
			Specs: map[string]any{"efficiency": 99.0, "mppt_channels": 2, "output_voltage": "230V/400V", "ip_rating": "IP65"},
		},
		{
			Category: catalog.Inverter, Brand: "Fronius", Model: "Primo 8.2-1",
			Cost: money(1800), Profit: money(280), WarrantyYears: 10,
			Specs: map[string]any{"efficiency": 98.1, "mppt_channels": 2, "output_voltage": "230V", "ip_rating": "IP65"},
		},
		{
			Category: catalog.Inverter, Brand: "Huawei", Model: "SUN2000 12KTL",
			Cost: money(1950), Profit: money(290), WarrantyYears: 10,
			Specs: map[string]any{"efficiency": 98.5, "mppt_channels": 4, "output_voltage": "230V/400V", "ip_rating": "IP65"},
		},

		// Mounting structures
		{
			Category: catalog.MountingStructure, Brand: "IronRidge", Model: "XR100 Rail System",
			Material: "Aluminum", Coating: "Anodized",
			Cost: money(120), Profit: money(30), WarrantyYears: 20,
			Specs: map[string]any{"structure_type": "Roof Mount", "wind_speed_rating": 180, "tilt_angle": "5-45 degrees"},
		},
		{
			Category: catalog.MountingStructure, Brand: "UniRac", Model: "GroundMount 2.0",
			Material: "Galvanized Steel", Coating: "Hot-dip galvanized",
			Cost: money(180), Profit: money(45), WarrantyYears: 25,
			Specs: map[string]any{"structure_type": "Ground Mount", "wind_speed_rating": 200, "tilt_angle": "15-35 degrees"},
		},
		{
			Category: catalog.MountingStructure, Brand: "SunPower", Model: "EnergyMax",
			Material: "Aluminum/Steel", Coating: "Powder coated",
			Cost: money(150), Profit: money(40), WarrantyYears: 15,
			Specs: map[string]any{"structure_type": "Flat Roof Ballasted", "wind_speed_rating": 160, "tilt_angle": "10 degrees fixed"},
		},

		// BOS components
		{
			Category: catalog.BOSComponent, Brand: "Prysmian", Model: "6mm2 PV1-F Solar Cable",
			Cost: money(1.20), Profit: money(0.30), WarrantyYears: 10,
			Specs: map[string]any{"component_type": "DC Cable", "quality_grade": "Class A"},
		},
		{
			Category: catalog.BOSComponent, Brand: "Havells", Model: "4mm2 3-core outdoor cable",
			Cost: money(2.30), Profit: money(0.50), WarrantyYears: 5,
			Specs: map[string]any{"component_type": "AC Cable", "quality_grade": "Class A"},
		},
		{
			Category: catalog.BOSComponent, Brand: "ABB", Model: "IP67 8-string DC combiner",
			Cost: money(85), Profit: money(20), WarrantyYears: 7,
			Specs: map[string]any{"component_type": "Junction Box", "quality_grade": "Premium"},
		},

		// Protection equipment
		{
			Category: catalog.ProtectionEquipment, Brand: "Schneider Electric", Model: "PRD40r",
			Cost: money(75), Profit: money(15), WarrantyYears: 5,
			Specs: map[string]any{"component_type": "DC Surge Protector", "application": "DC Strings Protection", "certifications": "IEC 61643-11"},
		},
		{
			Category: catalog.ProtectionEquipment, Brand: "ABB", Model: "S200",
			Cost: money(45), Profit: money(10), WarrantyYears: 3,
			Specs: map[string]any{"component_type": "AC Circuit Breaker", "application": "AC Connection", "certifications": "IEC 60947-2"},
		},
		{
			Category: catalog.ProtectionEquipment, Brand: "Suntree", Model: "PV-FSW1000",
			Cost: money(35), Profit: money(8), WarrantyYears: 5,
			Specs: map[string]any{"component_type": "Fuse Disconnect", "application": "String Isolation", "certifications": "IEC 60269-6"},
		},

		// Earthing systems
		{
			Category: catalog.EarthingSystem, Brand: "Gallagher", Model: "1.5m x 14mm grounding rod",
			Material: "Copper-bonded Steel",
			Cost:     money(25), Profit: money(5), WarrantyYears: 15,
			Specs: map[string]any{"type": "Grounding Rod", "application": "Main Earthing Terminal"},
		},
		{
			Category: catalog.EarthingSystem, Brand: "Polycab", Model: "16mm2 green/yellow",
			Material: "Copper",
			Cost:     money(3.50), Profit: money(0.80), WarrantyYears: 10,
			Specs: map[string]any{"type": "Earthing Cable", "application": "Equipment Grounding"},
		},
		{
			Category: catalog.EarthingSystem, Brand: "OBO Bettermann", Model: "Air terminal 30m radius",
			Material: "Aluminum",
			Cost:     money(180), Profit: money(45), WarrantyYears: 20,
			Specs: map[string]any{"type": "Lightning Arrester", "application": "Lightning Protection"},
		},

		// Net metering
		{
			Category: catalog.NetMetering, Brand: "Schneider Electric", Model: "iEM3155",
			Cost: money(250), Profit: money(50), WarrantyYears: 5,
			Specs: map[string]any{"meter_type": "Bidirectional", "communication": "Modbus RTU", "certifications": "MID-approved"},
		},
		{
			Category: catalog.NetMetering, Brand: "Itron", Model: "SL7000",
			Cost: money(320), Profit: money(65), WarrantyYears: 7,
			Specs: map[string]any{"meter_type": "Smart Meter", "communication": "GPRS, RS485", "certifications": "IEC 62052-11"},
		},
		{
			Category: catalog.NetMetering, Brand: "Secure Meters", Model: "Elite 440",
			Cost: money(180), Profit: money(40), WarrantyYears: 5,
			Specs: map[string]any{"meter_type": "Bidirectional", "communication": "Optical port", "certifications": "IEC 62053-21"},
		},
	}
}
