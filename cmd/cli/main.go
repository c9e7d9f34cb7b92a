package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pacesetter/adapters/excel"
	"pacesetter/app"
	"pacesetter/domain/footprint"
	"pacesetter/internal/batch"
	"pacesetter/internal/export"
	"pacesetter/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pacesetter-cli",
		Short: "Pacesetter CLI for workbook extraction and footprint computation",
	}

	rootCmd.AddCommand(
		newSheetsCmd(),
		newExtractCmd(),
		newComputeCmd(),
		newBatchCmd(),
		newFixturesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() *app.FootprintService {
	return app.NewFootprintService(excel.NewDecoder())
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [workbook]",
		Short: "List the sheets of a workbook and which look like model sheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := excel.NewDecoder().DecodeFile(args[0])
			if err != nil {
				return err
			}
			info := newService().SheetsOf(wb)

			detected := make(map[string]bool, len(info.DetectedModelSheets))
			for _, name := range info.DetectedModelSheets {
				detected[name] = true
			}

			fmt.Printf("📋 WORKBOOK SHEETS (%d):\n", len(info.AllSheets))
			for _, name := range info.AllSheets {
				if detected[name] {
					fmt.Printf("• %s  [model]\n", name)
				} else {
					fmt.Printf("• %s\n", name)
				}
			}
			if info.RecommendedSheet != "" {
				fmt.Printf("\nRecommended: %s\n", info.RecommendedSheet)
			}
			return nil
		},
	}
}

func newExtractCmd() *cobra.Command {
	var sheet string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "extract [workbook]",
		Short: "Extract the footprint inputs from one sheet with provenance",
		Long: `Extract the four footprint inputs from a model sheet.

Without --sheet the recommended model sheet is used. Extraction never
fails hard: inputs that cannot be found come back as zero with a warning.

Example: pacesetter-cli extract report.xlsx --sheet "Dryer SMG (SMG6527)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := excel.NewDecoder().DecodeFile(args[0])
			if err != nil {
				return err
			}
			service := newService()
			if sheet == "" {
				sheet = service.SheetsOf(wb).RecommendedSheet
			}

			result := service.ExtractFromWorkbook(wb, sheet)
			if asJSON {
				return printJSON(result)
			}

			fmt.Printf("🔎 EXTRACTED INPUTS from %q:\n", sheet)
			for _, key := range footprint.RequiredKeys {
				printInput(key, result.Inputs[key], result.Provenance[key])
			}
			printWarnings(result.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Model sheet to extract from (default: recommended)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw extraction result as JSON")

	return cmd
}

func newComputeCmd() *cobra.Command {
	var sheet string
	var gridFactor float64
	var lifetime int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compute [workbook]",
		Short: "Extract and compute the lifecycle carbon footprint",
		Long: `Extract the inputs from a model sheet and derive the lifecycle KPIs.

Example: pacesetter-cli compute report.xlsx --grid-factor 0.42 --lifetime 12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := excel.NewDecoder().DecodeFile(args[0])
			if err != nil {
				return err
			}
			service := newService()
			if sheet == "" {
				sheet = service.SheetsOf(wb).RecommendedSheet
			}

			result := service.ExtractFromWorkbook(wb, sheet)
			comp, err := service.ComputeFromResult(result, sheet, gridFactor, lifetime)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(comp)
			}

			fmt.Printf("🌍 CARBON FOOTPRINT for %q:\n\n", sheet)
			fmt.Println("Phase breakdown:")
			fmt.Printf("• Transport:  %8.1f kg CO2e (%.1f%%)\n",
				comp.KPIs[footprint.KeyTransport], comp.KPIs[footprint.KeyShareTransport])
			fmt.Printf("• Materials:  %8.1f kg CO2e (%.1f%%)\n",
				comp.KPIs[footprint.KeyMaterials], comp.KPIs[footprint.KeyShareMaterials])
			fmt.Printf("• Production: %8.1f kg CO2e (%.1f%%)\n",
				comp.KPIs[footprint.KeyProduction], comp.KPIs[footprint.KeyShareProduction])
			fmt.Printf("• Use phase:  %8.1f kg CO2e (%.1f%%)\n",
				comp.KPIs[footprint.KeyUsePhase], comp.KPIs[footprint.KeyShareUse])

			fmt.Printf("\nTOTAL: %.1f kg CO2e over %d years (grid factor %g)\n",
				comp.KPIs[footprint.KeyTotal], lifetime, gridFactor)

			if kwh := comp.KPIs[footprint.KeyUseKWh]; kwh > 0 {
				category := batch.InferCategory(sheet)
				label := footprint.SuggestLabel(kwh, category)
				if category == "" {
					category = "generic"
				}
				fmt.Printf("Annual energy: %.1f kWh/year, suggested label %s (%s bands)\n", kwh, label, category)
			}
			printWarnings(comp.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Model sheet to extract from (default: recommended)")
	cmd.Flags().Float64Var(&gridFactor, "grid-factor", footprint.DefaultGridFactor, "Grid emission factor in kg CO2e per kWh")
	cmd.Flags().IntVar(&lifetime, "lifetime", footprint.DefaultLifetime, "Product lifetime in years")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the computation as JSON")

	return cmd
}

func newBatchCmd() *cobra.Command {
	var gridFactor float64
	var lifetime int
	var csvPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "batch [workbook]",
		Short: "Compute every model sheet of a workbook and summarize",
		Long: `Run extraction and computation over every detected model sheet
concurrently, flag statistical outliers, and print summary statistics.

Example: pacesetter-cli batch catalog.xlsx --csv results.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := excel.NewDecoder().DecodeFile(args[0])
			if err != nil {
				return err
			}
			runner := batch.NewRunner(newService())
			results, summary, err := runner.RunWorkbook(cmd.Context(), wb, gridFactor, lifetime)
			if err != nil {
				return err
			}

			if csvPath != "" {
				if err := writeBatchCSV(csvPath, results, summary); err != nil {
					return err
				}
				fmt.Printf("💾 Results saved to: %s\n\n", csvPath)
			}
			if asJSON {
				return printJSON(map[string]interface{}{
					"results": results,
					"summary": summary,
				})
			}

			fmt.Printf("📊 BATCH RESULTS (%d sheets):\n", len(results))
			for _, res := range results {
				line := fmt.Sprintf("• %s: %.2f kg CO2e", res.Sheet, res.KPIs[footprint.KeyTotal])
				if res.Label != "" {
					line += fmt.Sprintf(", label %s", res.Label)
				}
				if res.Outlier {
					line += "  ⚠️ outlier"
				}
				fmt.Println(line)
			}

			fmt.Printf("\nSUMMARY (%d usable totals):\n", summary.Count)
			fmt.Printf("Mean:   %.2f kg CO2e\n", summary.Mean)
			fmt.Printf("Median: %.2f kg CO2e\n", summary.Median)
			fmt.Printf("Min:    %.2f kg CO2e\n", summary.Min)
			fmt.Printf("Max:    %.2f kg CO2e\n", summary.Max)
			fmt.Printf("StdDev: %.2f\n", summary.StdDev)
			return nil
		},
	}

	cmd.Flags().Float64Var(&gridFactor, "grid-factor", footprint.DefaultGridFactor, "Grid emission factor in kg CO2e per kWh")
	cmd.Flags().IntVar(&lifetime, "lifetime", footprint.DefaultLifetime, "Product lifetime in years")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the results to a CSV file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results and summary as JSON")

	return cmd
}

func newFixturesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Write the sample workbooks used for testing and demos",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := testkit.WriteAll(dir)
			if err != nil {
				return err
			}
			fmt.Printf("💾 Wrote %d sample workbooks to %s:\n", len(paths), dir)
			for _, path := range paths {
				fmt.Printf("• %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "./fixtures", "Directory to write the workbooks into")

	return cmd
}

func printInput(key string, value float64, prov footprint.Provenance) {
	name := footprint.DisplayNames[key]
	unit := "kg CO2e"
	if key == footprint.KeyUseKWh {
		unit = "kWh/year"
	}
	if prov.Method == footprint.MethodFailed {
		fmt.Printf("• %s: not found\n", name)
		return
	}
	fmt.Printf("• %s: %.2f %s (%s %s, %.0f%%)\n",
		name, value, unit, prov.Method, prov.CellRef, prov.Confidence*100)
}

func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Printf("\n⚠️  WARNINGS:\n")
	for _, warning := range warnings {
		fmt.Printf("• %s\n", warning)
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func writeBatchCSV(path string, results []batch.Result, summary *batch.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()
	return export.WriteCSV(f, export.BatchRows(results, summary))
}
