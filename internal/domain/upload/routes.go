package upload

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the submission file routes. The submission ID acts as the
// only credential, as on the upload page itself.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/upload-file", h.Upload)
	r.GET("/get-files/:id", h.ListFiles)
	r.DELETE("/delete-file", h.DeleteFile)
	r.GET("/download-all/:id", h.DownloadAll)
}
