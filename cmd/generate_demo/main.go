// Command generate_demo creates a demo database with a sample catalog and
// reading ledger for exercising the dashboard.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/shelfstats/shelfstats/internal/database"
	"github.com/shelfstats/shelfstats/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	books := createBooks(db)
	sessionCount := createSessions(db, books)

	log.Printf("Demo database ready: %d books, %d sessions", len(books), sessionCount)
}

func createBooks(db *database.Database) []entities.Book {
	books := []entities.Book{
		{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Classic", Year: 1813, TotalPages: 432, Status: entities.StatusCompleted},
		{Title: "Moby-Dick", Author: "Herman Melville", Genre: "Classic", Year: 1851, TotalPages: 635, Status: entities.StatusInProgress},
		{Title: "Frankenstein", Author: "Mary Shelley", Genre: "Gothic", Year: 1818, TotalPages: 280, Status: entities.StatusInProgress},
		{Title: "The Time Machine", Author: "H. G. Wells", Genre: "Sci-Fi", Year: 1895, TotalPages: 118, Status: entities.StatusCompleted},
		{Title: "Dracula", Author: "Bram Stoker", Genre: "Gothic", Year: 1897, TotalPages: 418, Status: entities.StatusNotStarted},
		{Title: "The War of the Worlds", Author: "H. G. Wells", Genre: "Sci-Fi", Year: 1898, TotalPages: 192, Status: entities.StatusNotStarted},
	}

	for i := range books {
		if err := db.DB.Create(&books[i]).Error; err != nil {
			log.Fatalf("Failed to create book %q: %v", books[i].Title, err)
		}
	}
	return books
}

type demoSession struct {
	bookIndex int
	daysAgo   int
	hour      int
	minutes   int
	startPage int
	endPage   int
	location  string
	format    entities.ReadingFormat
}

func createSessions(db *database.Database, books []entities.Book) int {
	plan := []demoSession{
		{0, 30, 8, 55, 0, 48, "home", entities.FormatPhysical},
		{0, 28, 20, 70, 48, 110, "home", entities.FormatPhysical},
		{0, 25, 13, 90, 110, 196, "cafe", entities.FormatPhysical},
		{0, 22, 8, 60, 196, 250, "home", entities.FormatPhysical},
		{0, 20, 21, 80, 250, 340, "home", entities.FormatPhysical},
		{0, 18, 9, 75, 340, 432, "park", entities.FormatPhysical},
		{1, 14, 18, 45, 0, 30, "commute", entities.FormatDigital},
		{1, 12, 18, 50, 30, 65, "commute", entities.FormatDigital},
		{1, 9, 7, 65, 65, 120, "home", entities.FormatDigital},
		{2, 7, 22, 40, 0, 25, "home", entities.FormatPhysical},
		{2, 4, 15, 60, 25, 80, "library", entities.FormatPhysical},
		{3, 40, 10, 90, 0, 70, "home", entities.FormatAudio},
		{3, 38, 16, 60, 70, 118, "home", entities.FormatAudio},
	}

	now := time.Now()
	for _, s := range plan {
		start := now.AddDate(0, 0, -s.daysAgo)
		start = time.Date(start.Year(), start.Month(), start.Day(), s.hour, 0, 0, 0, start.Location())
		startPage, endPage := s.startPage, s.endPage

		session := entities.ReadingSession{
			BookID:        books[s.bookIndex].ID,
			StartTime:     start,
			EndTime:       start.Add(time.Duration(s.minutes) * time.Minute),
			StartPage:     &startPage,
			EndPage:       &endPage,
			ReadingFormat: s.format,
			Location:      s.location,
		}
		if err := db.DB.Create(&session).Error; err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
	}
	return len(plan)
}
