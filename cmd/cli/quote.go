package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/solarline/quotation-service/internal/quotation"
)

var (
	quoteCapacityKW float64
	quoteUserID     string
	quoteMax        int
	quotePanelBrand []string
	quoteInvBrand   []string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Generate quotations from the command line",
	Long: `Generates ranked quotations for a target system capacity, either
from the shared catalog or from a user's inventory when --user is given,
and prints them to stdout.`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().Float64Var(&quoteCapacityKW, "capacity", 0, "target system capacity in kW (required)")
	quoteCmd.Flags().StringVar(&quoteUserID, "user", "", "generate from this user's inventory instead of the catalog")
	quoteCmd.Flags().IntVar(&quoteMax, "max", 10, "maximum quotations to print")
	quoteCmd.Flags().StringSliceVar(&quotePanelBrand, "panel-brand", nil, "restrict panels to these brands")
	quoteCmd.Flags().StringSliceVar(&quoteInvBrand, "inverter-brand", nil, "restrict inverters to these brands")
	quoteCmd.MarkFlagRequired("capacity")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	generator := quotation.NewGenerator(store, store, store, quotation.DefaultConfig(), quotation.NewMetricsRecorder())

	var (
		quotations []quotation.Quotation
		err        error
	)
	if quoteUserID != "" {
		quotations, err = generator.GenerateInventory(cmd.Context(), quotation.InventoryRequest{
			UserID:           quoteUserID,
			SystemCapacityKW: quoteCapacityKW,
			MaxQuotations:    &quoteMax,
		})
	} else {
		quotations, err = generator.GenerateCatalog(cmd.Context(), quotation.CatalogRequest{
			SystemCapacityKW: quoteCapacityKW,
			PanelBrands:      quotePanelBrand,
			InverterBrands:   quoteInvBrand,
			MaxQuotations:    &quoteMax,
		})
	}
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	if len(quotations) == 0 {
		p.Println("No quotations could be generated for the given request.")
		return nil
	}

	for i, q := range quotations {
		p.Printf("Quotation %d (%s)\n", i+1, q.ID)
		for _, line := range q.Lines {
			p.Printf("  %-20s %-30s x%-4d %12.2f\n",
				line.Category.Label(), line.Model, line.Quantity, line.Amount.InexactFloat64())
		}
		p.Printf("  total cost %.2f, profit %.2f, price %.2f\n\n",
			q.TotalCost.InexactFloat64(), q.TotalProfit.InexactFloat64(), q.TotalPrice.InexactFloat64())
	}
	p.Printf("%d quotation(s)\n", len(quotations))
	return nil
}
