// Package importers loads the static book catalog from a delimited file
// into the catalog store. Ingestion creates books; it never touches the
// session ledger and only assigns a status on first insert.
package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/entities"
)

// CatalogRow represents a single row from a catalog CSV export.
type CatalogRow struct {
	Title  string
	Author string
	Year   string
	Genre  string
	Pages  string
	Status string
}

// ImportResult summarizes a catalog ingestion run.
type ImportResult struct {
	BooksProcessed int
	BooksCreated   int
	BooksUpdated   int
	Skipped        []string
}

// CatalogImporter upserts catalog rows into the books repository.
type CatalogImporter struct {
	books *books.Repository
}

// NewCatalogImporter creates a catalog importer.
func NewCatalogImporter(repo *books.Repository) *CatalogImporter {
	return &CatalogImporter{books: repo}
}

// ImportFile ingests a catalog CSV from disk.
func (i *CatalogImporter) ImportFile(path string) (ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()
	return i.Import(file)
}

// Import ingests catalog rows from a reader.
func (i *CatalogImporter) Import(r io.Reader) (ImportResult, error) {
	rows, skipped, err := ParseCatalogCSV(r)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Skipped: skipped}
	for _, row := range rows {
		result.BooksProcessed++

		book := rowToBook(row)
		created, err := i.books.Upsert(book)
		if err != nil {
			return result, fmt.Errorf("failed to save book %q: %w", row.Title, err)
		}
		if created {
			result.BooksCreated++
		} else {
			result.BooksUpdated++
		}
	}

	return result, nil
}

func rowToBook(row CatalogRow) *entities.Book {
	book := &entities.Book{
		Title:  row.Title,
		Author: row.Author,
		Genre:  row.Genre,
	}
	if year, err := strconv.Atoi(row.Year); err == nil {
		book.Year = year
	}
	if pages, err := strconv.Atoi(row.Pages); err == nil && pages > 0 {
		book.TotalPages = pages
	}
	status := entities.ReadingStatus(row.Status)
	if status.Valid() {
		book.Status = status.Normalize()
	} else {
		book.Status = entities.StatusNotStarted
	}
	return book
}

// ParseCatalogCSV parses a catalog CSV export.
// Returns the parsed rows, a note per skipped line, and a fatal error
// when the file as a whole cannot be parsed.
func ParseCatalogCSV(r io.Reader) ([]CatalogRow, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	requiredHeaders := []string{"title", "author"}
	for _, h := range requiredHeaders {
		if _, ok := headerIndex[h]; !ok {
			return nil, nil, fmt.Errorf("missing required header: %s", h)
		}
	}

	var rows []CatalogRow
	var skipped []string
	lineNum := 1 // Header already read

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}

		row := CatalogRow{
			Title:  getCSVValue(record, headerIndex, "title"),
			Author: getCSVValue(record, headerIndex, "author"),
			Year:   getCSVValue(record, headerIndex, "year"),
			Genre:  getCSVValue(record, headerIndex, "genre"),
			Pages:  getCSVValue(record, headerIndex, "pages"),
			Status: getCSVValue(record, headerIndex, "status"),
		}

		if row.Title == "" || row.Author == "" {
			skipped = append(skipped, fmt.Sprintf("Line %d: skipped - missing title or author", lineNum))
			continue
		}

		rows = append(rows, row)
	}

	return rows, skipped, nil
}

func getCSVValue(record []string, headerIndex map[string]int, key string) string {
	idx, ok := headerIndex[key]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
