package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"it-helpdesk/pkg/importer"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	filePath   string
	schemaName string
	schemaFile string
	showRows   bool
)

var rootCmd = &cobra.Command{
	Use:   "import_assets",
	Short: "Check how an asset spreadsheet maps onto the help desk schema",
	Long: `import_assets reads a CSV or .xlsx asset sheet with the same header
matching the web upload uses, then prints which columns matched and the
mapped rows. Nothing is sent to a running server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&filePath, "file", "", "path to the .csv or .xlsx file")
	rootCmd.Flags().StringVar(&schemaName, "schema", importer.SchemaMinimal, "built-in schema: minimal or extended")
	rootCmd.Flags().StringVar(&schemaFile, "schema-file", "", "YAML schema file (overrides --schema)")
	rootCmd.Flags().BoolVar(&showRows, "rows", true, "print the mapped rows")

	if err := rootCmd.MarkFlagRequired("file"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	schema, err := importer.ResolveSchema(schemaName, schemaFile)
	if err != nil {
		return err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return errors.Wrap(err, "open asset file")
	}
	defer file.Close()

	fmt.Printf("Importing from %s (schema=%s)\n", filePath, schema.Name)
	fmt.Println("=" + strings.Repeat("=", 60))

	res, err := importer.Import(ctx, file, importer.ImportOptions{
		Schema: schema,
		Format: importer.FormatFromFilename(filePath),
	})
	if err != nil {
		return errors.Wrap(err, "import failed")
	}

	sum := res.Summary
	fmt.Println("IMPORT SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Rows: %d\n", sum.Rows)
	fmt.Printf("Matched columns: %s\n", joinOrNone(sum.Matched))
	fmt.Printf("Missing columns: %s\n", joinOrNone(sum.Missing))
	fmt.Printf("Ignored columns: %s\n", joinOrNone(sum.Ignored))
	if len(sum.DuplicateHeaders) > 0 {
		fmt.Printf("Duplicate headers (first occurrence used): %s\n", strings.Join(sum.DuplicateHeaders, ", "))
	}

	if showRows && len(res.Records) > 0 {
		fmt.Println("\n" + strings.Join(schema.Labels(), " | "))
		for _, rec := range res.Records {
			fmt.Println(strings.Join(schema.Values(rec), " | "))
		}
	}

	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
