package importers

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/entities"
)

func setupImporter(t *testing.T) (*CatalogImporter, *gorm.DB, func()) {
	dbPath := "./test_importer_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.Book{}))

	importer := NewCatalogImporter(books.NewRepository(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return importer, db, cleanup
}

func TestParseCatalogCSV(t *testing.T) {
	t.Run("parses rows with all columns", func(t *testing.T) {
		csv := `title,author,year,genre,pages,status
Dune,Frank Herbert,1965,Sci-Fi,412,completed
Solaris,Stanislaw Lem,1961,Sci-Fi,204,`

		rows, skipped, err := ParseCatalogCSV(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Empty(t, skipped)
		require.Len(t, rows, 2)
		assert.Equal(t, CatalogRow{
			Title: "Dune", Author: "Frank Herbert", Year: "1965",
			Genre: "Sci-Fi", Pages: "412", Status: "completed",
		}, rows[0])
	})

	t.Run("header matching is case-insensitive", func(t *testing.T) {
		csv := "Title, Author \nDune,Frank Herbert"

		rows, _, err := ParseCatalogCSV(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Dune", rows[0].Title)
	})

	t.Run("missing required header fails", func(t *testing.T) {
		csv := "title,year\nDune,1965"

		_, _, err := ParseCatalogCSV(strings.NewReader(csv))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "author")
	})

	t.Run("rows without title or author are skipped with a note", func(t *testing.T) {
		csv := `title,author
Dune,Frank Herbert
,Frank Herbert
Solaris,`

		rows, skipped, err := ParseCatalogCSV(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		require.Len(t, skipped, 2)
		assert.Contains(t, skipped[0], "Line 3")
	})

	t.Run("tolerates short records", func(t *testing.T) {
		csv := `title,author,pages
Dune,Frank Herbert`

		rows, skipped, err := ParseCatalogCSV(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Empty(t, skipped)
		require.Len(t, rows, 1)
		assert.Empty(t, rows[0].Pages)
	})
}

func TestCatalogImporter_Import(t *testing.T) {
	t.Run("creates new books", func(t *testing.T) {
		importer, db, cleanup := setupImporter(t)
		defer cleanup()

		csv := `title,author,year,genre,pages,status
Dune,Frank Herbert,1965,Sci-Fi,412,completed
Solaris,Stanislaw Lem,1961,Sci-Fi,204,`

		result, err := importer.Import(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 2, result.BooksProcessed)
		assert.Equal(t, 2, result.BooksCreated)
		assert.Equal(t, 0, result.BooksUpdated)

		var dune entities.Book
		require.NoError(t, db.Where("title = ?", "Dune").First(&dune).Error)
		assert.Equal(t, 1965, dune.Year)
		assert.Equal(t, 412, dune.TotalPages)
		assert.Equal(t, entities.StatusCompleted, dune.Status)

		var solaris entities.Book
		require.NoError(t, db.Where("title = ?", "Solaris").First(&solaris).Error)
		assert.Equal(t, entities.StatusNotStarted, solaris.Status)
	})

	t.Run("invalid status falls back to not started", func(t *testing.T) {
		importer, db, cleanup := setupImporter(t)
		defer cleanup()

		csv := `title,author,status
Dune,Frank Herbert,reading`

		_, err := importer.Import(strings.NewReader(csv))
		require.NoError(t, err)

		var dune entities.Book
		require.NoError(t, db.Where("title = ?", "Dune").First(&dune).Error)
		assert.Equal(t, entities.StatusNotStarted, dune.Status)
	})

	t.Run("re-import updates metadata but not status", func(t *testing.T) {
		importer, db, cleanup := setupImporter(t)
		defer cleanup()

		first := `title,author,pages
Dune,Frank Herbert,400`
		_, err := importer.Import(strings.NewReader(first))
		require.NoError(t, err)

		// Reader starts the book between imports.
		var dune entities.Book
		require.NoError(t, db.Where("title = ?", "Dune").First(&dune).Error)
		require.NoError(t, db.Model(&dune).Update("status", entities.StatusInProgress).Error)

		second := `title,author,pages,status
Dune,Frank Herbert,412,not_started`
		result, err := importer.Import(strings.NewReader(second))
		require.NoError(t, err)
		assert.Equal(t, 0, result.BooksCreated)
		assert.Equal(t, 1, result.BooksUpdated)

		require.NoError(t, db.Where("title = ?", "Dune").First(&dune).Error)
		assert.Equal(t, 412, dune.TotalPages)
		assert.Equal(t, entities.StatusInProgress, dune.Status)
	})
}
