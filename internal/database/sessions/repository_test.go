package sessions

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shelfstats/shelfstats/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_sessions_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.ReadingSession{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func intPtr(v int) *int { return &v }

func TestRepository_Create(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Author: "Herbert"}
	require.NoError(t, db.Create(book).Error)

	session := &entities.ReadingSession{
		BookID:    book.ID,
		StartTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		StartPage: intPtr(1),
		EndPage:   intPtr(40),
		Location:  "home",
	}

	require.NoError(t, repo.Create(session))
	assert.NotZero(t, session.ID)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetAll_ChronologicalOrder(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Author: "Herbert"}
	require.NoError(t, db.Create(book).Error)

	later := &entities.ReadingSession{
		BookID:    book.ID,
		StartTime: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	earlier := &entities.ReadingSession{
		BookID:    book.ID,
		StartTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(later))
	require.NoError(t, repo.Create(earlier))

	sessions, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, earlier.ID, sessions[0].ID)
	assert.Equal(t, later.ID, sessions[1].ID)
}

func TestRepository_GetAllWithBooks(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Solaris", Author: "Lem"}
	require.NoError(t, db.Create(book).Error)

	session := &entities.ReadingSession{
		BookID:    book.ID,
		StartTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(session))

	sessions, err := repo.GetAllWithBooks()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Solaris", sessions[0].Book.Title)
}

func TestRepository_GetForBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	first := &entities.Book{Title: "A", Author: "X"}
	second := &entities.Book{Title: "B", Author: "Y"}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	require.NoError(t, repo.Create(&entities.ReadingSession{
		BookID:    first.ID,
		StartTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, repo.Create(&entities.ReadingSession{
		BookID:    second.ID,
		StartTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}))

	sessions, err := repo.GetForBook(first.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, first.ID, sessions[0].BookID)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
