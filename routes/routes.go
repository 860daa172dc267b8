package routes

import (
	"github.com/gin-gonic/gin"

	"library-lending/app"
	"library-lending/controllers"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	bookCtl := controllers.NewBookController(s)
	memberCtl := controllers.NewMemberController(s)
	txnCtl := controllers.NewTransactionController(s)

	books := r.Group("/api/books")
	{
		books.GET("", bookCtl.ListBooks)
		books.GET("/search", bookCtl.SearchBooks)
		books.GET("/member/:memberId/borrowed", bookCtl.BorrowedByMember)
		books.GET("/:id", bookCtl.GetBook)
		books.POST("", bookCtl.CreateBook)
		books.PUT("/:id", bookCtl.UpdateBook)
		books.DELETE("/:id", bookCtl.DeleteBook)
	}

	members := r.Group("/api/members")
	{
		members.GET("", memberCtl.ListMembers)
		members.GET("/:id", memberCtl.GetMember)
		members.POST("", memberCtl.CreateMember)
		members.PUT("/:id", memberCtl.UpdateMember)
		members.DELETE("/:id", memberCtl.DeleteMember)
	}

	txns := r.Group("/api/transactions")
	{
		txns.GET("", txnCtl.ListTransactions)
		txns.GET("/overdue", txnCtl.ListOverdue)
		txns.POST("/borrow", txnCtl.Borrow)
		txns.POST("/return", txnCtl.Return)
	}
}
