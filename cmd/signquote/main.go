// SignQuote — sign manufacturing quote calculator
//
// Imports a quote grid from CSV or Excel, validates every cell against
// the product schemas, prices the grid, and prints a quote summary.
// Optionally exports a customer-facing PDF and QR-coded production labels.
//
// Build:
//   go build -o signquote ./cmd/signquote
//
// Usage:
//   signquote -in quote.csv -customer acme
//   signquote -in quote.xlsx -customer acme -prefs customers.yaml -pdf quote.pdf
//   signquote -export-backup backup.json
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/JonBeak/signquote/internal/catalog"
	"github.com/JonBeak/signquote/internal/export"
	"github.com/JonBeak/signquote/internal/importer"
	"github.com/JonBeak/signquote/internal/model"
	"github.com/JonBeak/signquote/internal/pricing"
	"github.com/JonBeak/signquote/internal/project"
	"github.com/JonBeak/signquote/internal/validate"
)

func main() {
	var (
		inPath      = flag.String("in", "", "quote grid to import (.csv or .xlsx)")
		customerID  = flag.String("customer", "", "customer id for preference lookup")
		quoteName   = flag.String("name", "", "quote name (defaults to the input file name)")
		catalogPath = flag.String("catalog", "", "catalog YAML file (default: built-in catalog)")
		prefsPath   = flag.String("prefs", "", "customer preferences YAML file")
		pdfPath     = flag.String("pdf", "", "write a quote PDF to this path")
		labelsPath  = flag.String("labels", "", "write QR production labels to this path")
		save        = flag.Bool("save", false, "save the quote to the default quotes directory")
		verbose     = flag.Bool("v", false, "print every cell error, not just row summaries")

		exportBackup = flag.String("export-backup", "", "write the app config and all saved quotes to this path and exit")
		importBackup = flag.String("import-backup", "", "restore the app config and saved quotes from a backup file and exit")
	)
	flag.Parse()

	if *exportBackup != "" || *importBackup != "" {
		runBackup(*exportBackup, *importBackup)
		return
	}

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		fatalf("load config: %v", err)
	}
	if *customerID == "" {
		*customerID = config.DefaultCustomer
	}
	if *catalogPath == "" {
		*catalogPath = config.CatalogPath
	}
	if *prefsPath == "" {
		*prefsPath = config.PreferencesPath
	}

	cat, err := loadCatalog(*catalogPath)
	if err != nil {
		fatalf("load catalog: %v", err)
	}
	store, err := loadPreferenceStore(*prefsPath, config.PreferenceTTLMinutes)
	if err != nil {
		fatalf("load preferences: %v", err)
	}

	result := importGrid(*inPath)
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	for _, importErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "import error: %s\n", importErr)
	}
	if len(result.Rows) == 0 {
		fatalf("no rows imported from %s", *inPath)
	}

	name := *quoteName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(*inPath), filepath.Ext(*inPath))
	}
	quote := model.NewQuote(name, *customerID)
	quote.Rows = result.Rows

	engine := validate.NewEngine(validate.NewRegistry(), cat, store)
	results := engine.ValidateGrid(quote.Rows, *customerID)
	printValidation(quote.Rows, results, *verbose)

	registry := pricing.NewRegistry(cat)
	prefs := store.Get(*customerID)
	totals := registry.Rollup(quote.Rows, results, prefs)
	printSummary(quote, totals)

	if *pdfPath != "" {
		if err := export.ExportQuotePDF(*pdfPath, &quote, totals); err != nil {
			fatalf("export pdf: %v", err)
		}
		fmt.Printf("wrote %s\n", *pdfPath)
	}
	if *labelsPath != "" {
		if err := export.ExportLabels(*labelsPath, &quote, totals); err != nil {
			fatalf("export labels: %v", err)
		}
		fmt.Printf("wrote %s\n", *labelsPath)
	}
	if *save {
		path, err := project.SaveQuoteToDefault(quote)
		if err != nil {
			fatalf("save quote: %v", err)
		}
		config.AddRecentQuote(path)
		if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not update config: %v\n", err)
		}
		fmt.Printf("saved %s\n", path)
	}
}

// runBackup handles the -export-backup and -import-backup modes. Export
// bundles the app config and every saved quote into one file; import
// restores them, overwriting the current config.
func runBackup(exportPath, importPath string) {
	configPath := project.DefaultConfigPath()
	config, err := project.LoadAppConfig(configPath)
	if err != nil {
		fatalf("load config: %v", err)
	}

	if importPath != "" {
		backup, err := project.ImportAllData(importPath)
		if err != nil {
			fatalf("import backup: %v", err)
		}
		if err := project.SaveAppConfig(configPath, backup.Config); err != nil {
			fatalf("restore config: %v", err)
		}
		for _, quote := range backup.Quotes {
			if _, err := project.SaveQuoteToDefault(quote); err != nil {
				fatalf("restore quote %s: %v", quote.ID, err)
			}
		}
		fmt.Printf("restored config and %d quote(s) from %s\n", len(backup.Quotes), importPath)
		return
	}

	dir, err := project.DefaultQuotesDir()
	if err != nil {
		fatalf("locate quotes directory: %v", err)
	}
	summaries, err := project.ListQuotes(dir)
	if err != nil {
		fatalf("list quotes: %v", err)
	}
	quotes := make([]model.Quote, 0, len(summaries))
	for _, summary := range summaries {
		quote, err := project.LoadQuote(summary.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", summary.Path, err)
			continue
		}
		quotes = append(quotes, quote)
	}
	if err := project.ExportAllData(exportPath, config, quotes); err != nil {
		fatalf("export backup: %v", err)
	}
	fmt.Printf("wrote %s (%d quote(s))\n", exportPath, len(quotes))
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Builtin(), nil
	}
	return catalog.Load(path)
}

func loadPreferenceStore(path string, ttlMinutes int) (*catalog.PreferenceStore, error) {
	ttl := time.Duration(ttlMinutes) * time.Minute
	if path == "" {
		return catalog.NewPreferenceStore(catalog.StaticPreferenceSource{}, ttl), nil
	}
	source, err := catalog.LoadPreferences(path)
	if err != nil {
		return nil, err
	}
	return catalog.NewPreferenceStore(source, ttl), nil
}

func importGrid(path string) importer.ImportResult {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return importer.ImportExcel(path)
	}
	return importer.ImportCSV(path)
}

func printValidation(rows []model.Row, results *validate.Results, verbose bool) {
	for _, structural := range results.Structural {
		fmt.Fprintf(os.Stderr, "structure: %s\n", structural)
	}

	errorRows := 0
	for _, row := range rows {
		if !results.RowHasErrors(row.ID) {
			continue
		}
		errorRows++
		for _, rowErr := range results.RowErrors[row.ID] {
			fmt.Fprintf(os.Stderr, "row %s: %s\n", row.ID, rowErr)
		}
		if !verbose {
			continue
		}
		for _, field := range sortedFields(row, results) {
			res, _ := results.Cell(row.ID, field)
			if res.IsValid {
				continue
			}
			msg := res.Error
			if res.ExpectedFormat != "" {
				msg += " (expected: " + res.ExpectedFormat + ")"
			}
			fmt.Fprintf(os.Stderr, "row %s %s: %s\n", row.ID, field, msg)
		}
	}
	if errorRows > 0 {
		fmt.Fprintf(os.Stderr, "%d row(s) have validation errors and will not be priced\n", errorRows)
	}
}

func sortedFields(row model.Row, results *validate.Results) []string {
	var fields []string
	for key := range results.Cells {
		if key.RowID == row.ID {
			fields = append(fields, key.Field)
		}
	}
	sort.Strings(fields)
	return fields
}

func printSummary(quote model.Quote, totals pricing.QuoteTotals) {
	fmt.Printf("\nQuote: %s (customer: %s)\n\n", quote.Name, customerOrDash(quote.CustomerID))

	for _, line := range totals.Lines {
		switch line.Pricing.Status {
		case pricing.StatusCompleted:
			fmt.Printf("  %-40s qty %-3d %s\n", line.Description, line.Quantity, "$"+line.Extended.StringFixed(2))
			for _, c := range line.Pricing.Components {
				if c.Calculation != "" {
					fmt.Printf("      %-36s %s\n", c.Name, c.Calculation)
				}
			}
		default:
			fmt.Printf("  %-40s [%s] %s\n", line.Description, line.Pricing.Status, line.Pricing.Error)
		}
	}
	for _, sub := range totals.Subtotals {
		fmt.Printf("  %-40s         %s\n", "Subtotal", "$"+sub.Amount.StringFixed(2))
	}
	for _, adj := range totals.Adjustments {
		fmt.Printf("  %-40s         %s\n", adj.Description, "$"+adj.Amount.StringFixed(2))
	}
	fmt.Printf("\n  Total: $%s\n", totals.Total.StringFixed(2))
}

func customerOrDash(id string) string {
	if id == "" {
		return "-"
	}
	return id
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
