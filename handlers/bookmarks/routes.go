package bookmarks

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to bookmarks
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	bookmarks := r.Group("/bookmarks")
	bookmarks.Use(middleware.AuthMiddleware())
	{
		bookmarks.GET("/", GetBookmarks)
		bookmarks.POST("/", AddBookmark)
		bookmarks.DELETE("/:contest_id", RemoveBookmark)
		bookmarks.GET("/check/:contest_id", CheckBookmark)
	}
}
