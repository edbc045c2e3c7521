package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bookshelf/internal/model"
	"bookshelf/internal/service"
)

// BookHandler handles catalog endpoints.
type BookHandler struct {
	svc service.BookService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// BookRequest represents a book create/update payload.
type BookRequest struct {
	Author string `json:"author" validate:"required"`
	Title  string `json:"title" validate:"required"`
}

// ListBooks godoc
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} model.Book
// @Router /books [get]
func (h *BookHandler) ListBooks(c echo.Context) error {
	books, err := h.svc.ListBooks(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

// CreateBook godoc
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Param request body BookRequest true "Book payload"
// @Success 201 {object} model.Book
// @Failure 400 {object} map[string]string
// @Router /books [post]
func (h *BookHandler) CreateBook(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.svc.CreateBook(c.Request().Context(), &model.Book{Author: req.Author, Title: req.Title})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetBook godoc
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} model.Book
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}
	book, err := h.svc.GetBook(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body BookRequest true "Book payload"
// @Success 200 {object} model.Book
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.svc.UpdateBook(c.Request().Context(), id, &req.Author, &req.Title)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

// PatchBookRequest carries a partial update; absent fields stay unchanged.
type PatchBookRequest struct {
	Author *string `json:"author"`
	Title  *string `json:"title"`
}

// PatchBook godoc
// @Summary Partially update a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body PatchBookRequest true "Fields to change"
// @Success 200 {object} model.Book
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [patch]
func (h *BookHandler) PatchBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}

	var req PatchBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	book, err := h.svc.UpdateBook(c.Request().Context(), id, req.Author, req.Title)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary Delete a book
// @Tags books
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBook(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bookID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
