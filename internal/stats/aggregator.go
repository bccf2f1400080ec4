// Package stats computes the derived analytics views consumed by the
// dashboard. Compute is a pure function of the catalog and the session
// ledger: no mutation, no caching, deterministic output for a given
// input.
package stats

import (
	"math"
	"sort"

	"github.com/shelfstats/shelfstats/internal/entities"
)

// unspecifiedLocation is the bucket for sessions recorded without a location.
const unspecifiedLocation = "unspecified"

type BookPages struct {
	BookID    uint   `json:"id"`
	Title     string `json:"title"`
	PagesRead int    `json:"pages_read"`
}

type LocationCount struct {
	Location     string `json:"location"`
	SessionCount int    `json:"session_count"`
}

type LibraryStats struct {
	TotalBooks        int     `json:"totalBooks"`
	CompletedBooks    int     `json:"completedBooks"`
	InProgressBooks   int     `json:"inProgressBooks"`
	TotalPages        int     `json:"totalPages"`
	AverageCompletion float64 `json:"averageCompletion"`
}

type GenreCount struct {
	Name      string `json:"name"`
	Books     int    `json:"books"`
	Completed int    `json:"completed"`
}

type CurrentBook struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre,omitempty"`
	CurrentPage int    `json:"current_page"`
	TotalPages  int    `json:"total_pages"`
	Progress    int    `json:"progress"`
}

// Overview is the full statistics payload served by GET /api/stats.
// Field names and units (minutes for time, integer percentage for
// progress, pages per hour for speed) are the dashboard contract.
type Overview struct {
	TotalReadingTime  int             `json:"totalReadingTime"`
	PagesPerBook      []BookPages     `json:"pagesPerBook"`
	ReadingByLocation []LocationCount `json:"readingByLocation"`
	LibraryStats      LibraryStats    `json:"libraryStats"`
	GenreData         []GenreCount    `json:"genreData"`
	CurrentlyReading  []CurrentBook   `json:"currentlyReading"`
	SpeedMetrics      SpeedMetrics    `json:"speedMetrics"`

	// OrphanSessions counts ledger entries whose book is missing from the
	// catalog. They are skipped in per-book views but still contribute to
	// global totals.
	OrphanSessions int `json:"orphanSessions,omitempty"`
}

// Compute derives every analytics view from a snapshot of the catalog
// and the ledger. An empty ledger yields zeroed metrics and empty
// slices, never an error.
func Compute(books []entities.Book, sessions []entities.ReadingSession) Overview {
	byID := make(map[uint]*entities.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	overview := Overview{
		PagesPerBook:      []BookPages{},
		ReadingByLocation: []LocationCount{},
		GenreData:         []GenreCount{},
		CurrentlyReading:  []CurrentBook{},
	}

	pagesByBook := make(map[uint]int)
	locationCounts := make(map[string]int)
	latestByBook := make(map[uint]*entities.ReadingSession)

	for i := range sessions {
		session := &sessions[i]

		// Global totals count every session, orphans included.
		overview.TotalReadingTime += session.DurationMinutes()

		location := session.Location
		if location == "" {
			location = unspecifiedLocation
		}
		locationCounts[location]++

		if _, known := byID[session.BookID]; !known {
			overview.OrphanSessions++
			continue
		}

		if pages, ok := session.PagesRead(); ok {
			pagesByBook[session.BookID] += pages
		}

		latest := latestByBook[session.BookID]
		if latest == nil || session.EndTime.After(latest.EndTime) ||
			(session.EndTime.Equal(latest.EndTime) && session.ID > latest.ID) {
			latestByBook[session.BookID] = session
		}
	}

	for bookID, pages := range pagesByBook {
		overview.PagesPerBook = append(overview.PagesPerBook, BookPages{
			BookID:    bookID,
			Title:     byID[bookID].Title,
			PagesRead: pages,
		})
	}
	sort.Slice(overview.PagesPerBook, func(i, j int) bool {
		return overview.PagesPerBook[i].BookID < overview.PagesPerBook[j].BookID
	})

	for location, count := range locationCounts {
		overview.ReadingByLocation = append(overview.ReadingByLocation, LocationCount{
			Location:     location,
			SessionCount: count,
		})
	}
	sort.Slice(overview.ReadingByLocation, func(i, j int) bool {
		return overview.ReadingByLocation[i].Location < overview.ReadingByLocation[j].Location
	})

	overview.LibraryStats, overview.GenreData = libraryView(books, latestByBook)
	overview.CurrentlyReading = currentlyReading(books, latestByBook)
	overview.SpeedMetrics = computeSpeed(sessions)

	return overview
}

func libraryView(books []entities.Book, latestByBook map[uint]*entities.ReadingSession) (LibraryStats, []GenreCount) {
	stats := LibraryStats{TotalBooks: len(books)}
	genreCounts := make(map[string]*GenreCount)

	var progressSum float64
	for i := range books {
		book := &books[i]
		status := book.Status.Normalize()

		stats.TotalPages += book.TotalPages
		switch status {
		case entities.StatusCompleted:
			stats.CompletedBooks++
		case entities.StatusInProgress:
			stats.InProgressBooks++
			progressSum += float64(bookProgress(book, latestByBook[book.ID]))
		}

		genre := book.Genre
		entry, ok := genreCounts[genre]
		if !ok {
			entry = &GenreCount{Name: genre}
			genreCounts[genre] = entry
		}
		entry.Books++
		if status == entities.StatusCompleted {
			entry.Completed++
		}
	}

	if stats.InProgressBooks > 0 {
		stats.AverageCompletion = round1(progressSum / float64(stats.InProgressBooks))
	}

	genres := make([]GenreCount, 0, len(genreCounts))
	for _, entry := range genreCounts {
		genres = append(genres, *entry)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })

	return stats, genres
}

func currentlyReading(books []entities.Book, latestByBook map[uint]*entities.ReadingSession) []CurrentBook {
	current := []CurrentBook{}
	for i := range books {
		book := &books[i]
		if book.Status.Normalize() != entities.StatusInProgress {
			continue
		}
		current = append(current, CurrentBook{
			ID:          book.ID,
			Title:       book.Title,
			Genre:       book.Genre,
			CurrentPage: currentPage(latestByBook[book.ID]),
			TotalPages:  book.TotalPages,
			Progress:    bookProgress(book, latestByBook[book.ID]),
		})
	}
	sort.Slice(current, func(i, j int) bool { return current[i].ID < current[j].ID })
	return current
}

// currentPage is the end_page of the most recent session, or 0 when the
// book has no sessions yet (or the latest session has no page data).
func currentPage(latest *entities.ReadingSession) int {
	if latest == nil || latest.EndPage == nil {
		return 0
	}
	return *latest.EndPage
}

// bookProgress derives the integer completion percentage from the latest
// session, clamped to [0, 100].
func bookProgress(book *entities.Book, latest *entities.ReadingSession) int {
	if book.TotalPages <= 0 {
		return 0
	}
	progress := int(math.Round(float64(currentPage(latest)) / float64(book.TotalPages) * 100))
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
