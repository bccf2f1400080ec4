package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/entities"
)

type BooksController struct {
	store     BookStore
	lifecycle LifecycleManager
}

func NewBooksController(store BookStore, lifecycle LifecycleManager) *BooksController {
	return &BooksController{
		store:     store,
		lifecycle: lifecycle,
	}
}

// GetAllBooks returns the full catalog ordered by ID.
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.store.GetAll()
	if err != nil {
		respondInternalError(c, "Failed to retrieve books", err)
		return
	}
	if books == nil {
		books = []entities.Book{}
	}
	c.JSON(http.StatusOK, books)
}

// GetBook returns a single book by ID.
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetByID(id)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "Book not found")
		return
	}
	if err != nil {
		respondInternalError(c, "Failed to retrieve book", err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// SearchBooks performs a case-insensitive match on title and author.
func (controller *BooksController) SearchBooks(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		respondBadRequest(c, "Missing search query", "The 'query' parameter is required")
		return
	}

	books, err := controller.store.Search(query)
	if err != nil {
		respondInternalError(c, "Failed to search books", err)
		return
	}
	if books == nil {
		books = []entities.Book{}
	}
	c.JSON(http.StatusOK, books)
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus transitions a book to the requested reading status.
func (controller *BooksController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", "A 'status' field is required")
		return
	}

	book, err := controller.lifecycle.Transition(id, entities.ReadingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// CompleteBook marks an in-progress book as finished.
func (controller *BooksController) CompleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.lifecycle.Complete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}
