package lead

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the quote form and notes routes. limit guards lead creation
// and may be nil.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler, limit gin.HandlerFunc) {
	if limit != nil {
		r.POST("/submit-quote", limit, handler.SubmitQuote)
	} else {
		r.POST("/submit-quote", handler.SubmitQuote)
	}
	r.POST("/update-quote/:id", handler.UpdateQuote)
	r.GET("/save-notes", handler.GetNotes)
	r.POST("/save-notes", handler.SaveNotes)
}
