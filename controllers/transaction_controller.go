package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-lending/app"
	"library-lending/lending"
	"library-lending/loggers"
)

type TransactionController struct{ *Srv }

func NewTransactionController(s *Srv) *TransactionController {
	return &TransactionController{Srv: s}
}

type lendingReq struct {
	BookID   string `json:"bookId" binding:"required"`
	MemberID string `json:"memberId" binding:"required"`
}

func (tc *TransactionController) Borrow(c *gin.Context) {
	var in lendingReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	err := tc.Engine.BorrowBook(c.Request.Context(), in.BookID, in.MemberID)
	if errors.Is(err, lending.ErrCannotBorrow) {
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
		return
	}
	if err != nil {
		loggers.Logger.Error("borrow: ", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	tc.Cache.InvalidateLending(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (tc *TransactionController) Return(c *gin.Context) {
	var in lendingReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	err := tc.Engine.ReturnBook(c.Request.Context(), in.BookID, in.MemberID)
	if errors.Is(err, lending.ErrNoActiveTransaction) {
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
		return
	}
	if err != nil {
		loggers.Logger.Error("return: ", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	tc.Cache.InvalidateLending(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (tc *TransactionController) ListOverdue(c *gin.Context) {
	ctx := c.Request.Context()
	if txns, ok := tc.Cache.GetOverdue(ctx); ok {
		c.JSON(http.StatusOK, app.H{"transactions": txns})
		return
	}
	txns, err := tc.Engine.GetOverdueTransactions(ctx)
	if err != nil {
		loggers.Logger.Error("overdue: ", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	tc.Cache.SetOverdue(ctx, txns)
	c.JSON(http.StatusOK, app.H{"transactions": txns})
}

func (tc *TransactionController) ListTransactions(c *gin.Context) {
	txns, err := tc.Store.Transactions().GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"transactions": txns})
}
