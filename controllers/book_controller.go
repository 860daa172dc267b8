package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-lending/app"
	"library-lending/lending"
	"library-lending/loggers"
	"library-lending/models"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

func (bc *BookController) ListBooks(c *gin.Context) {
	ctx := c.Request.Context()
	if books, ok := bc.Cache.GetBooks(ctx); ok {
		c.JSON(http.StatusOK, app.H{"books": books})
		return
	}
	books, err := bc.Store.Books().GetAll(ctx)
	if err != nil {
		loggers.Logger.Error("list books: ", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	bc.Cache.SetBooks(ctx, books)
	c.JSON(http.StatusOK, app.H{"books": books})
}

func (bc *BookController) GetBook(c *gin.Context) {
	book, err := bc.Store.Books().GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, lending.ErrNotFound) {
		c.JSON(http.StatusNotFound, app.H{"error": "book not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BookController) CreateBook(c *gin.Context) {
	var in struct {
		Title    string `json:"title" binding:"required"`
		Author   string `json:"author" binding:"required"`
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	book := &models.Book{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Author:    in.Author,
		Category:  in.Category,
		Available: true,
	}
	if err := bc.Store.Books().Add(c.Request.Context(), book); err != nil {
		loggers.Logger.Error("create book: ", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	bc.Cache.InvalidateBooks(c.Request.Context())
	c.JSON(http.StatusCreated, book)
}

func (bc *BookController) UpdateBook(c *gin.Context) {
	var in models.Book
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.ID != c.Param("id") {
		c.JSON(http.StatusBadRequest, app.H{"error": "id mismatch"})
		return
	}
	if err := bc.Store.Books().Update(c.Request.Context(), &in); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	bc.Cache.InvalidateBooks(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (bc *BookController) DeleteBook(c *gin.Context) {
	if err := bc.Store.Books().Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	bc.Cache.InvalidateBooks(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (bc *BookController) SearchBooks(c *gin.Context) {
	books, err := bc.Store.Books().Search(
		c.Request.Context(),
		c.Query("title"),
		c.Query("author"),
		c.Query("category"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"books": books})
}

func (bc *BookController) BorrowedByMember(c *gin.Context) {
	books, err := bc.Store.Books().GetBorrowedByMember(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"books": books})
}
