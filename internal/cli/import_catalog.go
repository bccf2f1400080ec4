// Package cli implements command-line subcommands that run outside the
// HTTP server.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shelfstats/shelfstats/internal/config"
	"github.com/shelfstats/shelfstats/internal/database"
	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/importers"
)

// ImportCatalogCommand imports books from a catalog CSV into the database.
type ImportCatalogCommand struct {
	CatalogPath  string
	DatabasePath string
	Verbose      bool
	DryRun       bool
}

func NewImportCatalogCommand() *ImportCatalogCommand {
	return &ImportCatalogCommand{}
}

func (cmd *ImportCatalogCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-catalog", flag.ExitOnError)

	fs.StringVar(&cmd.CatalogPath, "file", "", "Path to the catalog CSV file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse the catalog without writing anything")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-catalog -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import books from a catalog CSV file into the local database.\n\n")
		fmt.Fprintf(os.Stderr, "The CSV must contain 'title' and 'author' columns. Optional columns:\n")
		fmt.Fprintf(os.Stderr, "  year, genre, pages, status\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Import a catalog:\n")
		fmt.Fprintf(os.Stderr, "  %s import-catalog -file books.csv\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Preview what would be imported:\n")
		fmt.Fprintf(os.Stderr, "  %s import-catalog -file books.csv -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.CatalogPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportCatalogCommand) Run() error {
	fmt.Println("Catalog Import")
	fmt.Println("==============")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	if _, err := os.Stat(cmd.CatalogPath); os.IsNotExist(err) {
		return fmt.Errorf("catalog file not found: %s", cmd.CatalogPath)
	}

	fmt.Printf("File: %s\n", cmd.CatalogPath)

	if cmd.DryRun {
		file, err := os.Open(cmd.CatalogPath)
		if err != nil {
			return fmt.Errorf("failed to open catalog file: %w", err)
		}
		defer file.Close()

		rows, skipped, err := importers.ParseCatalogCSV(file)
		if err != nil {
			return fmt.Errorf("failed to parse catalog: %w", err)
		}

		fmt.Printf("Found %d importable rows, %d skipped\n", len(rows), len(skipped))
		if cmd.Verbose {
			for i, row := range rows {
				fmt.Printf("%d. \"%s\" by %s\n", i+1, row.Title, row.Author)
			}
			for _, note := range skipped {
				fmt.Printf("  [SKIPPED] %s\n", note)
			}
		}

		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("Database: %s\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	importer := importers.NewCatalogImporter(books.NewRepository(db.DB))

	fmt.Println("\nImporting books...")
	result, err := importer.ImportFile(cmd.CatalogPath)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Rows processed: %d\n", result.BooksProcessed)
	fmt.Printf("Books created:  %d\n", result.BooksCreated)
	fmt.Printf("Books updated:  %d\n", result.BooksUpdated)

	if len(result.Skipped) > 0 {
		fmt.Printf("\n%d rows skipped:\n", len(result.Skipped))
		for _, note := range result.Skipped {
			fmt.Printf("  [SKIPPED] %s\n", note)
		}
	}

	fmt.Println("\nImport complete!")
	return nil
}
