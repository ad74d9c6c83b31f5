package site

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the pages at the site root.
func RegisterRoutes(r gin.IRoutes, h *Handler) {
	r.GET("/", h.Landing)
	r.GET("/upload/:id", h.Upload)
	r.GET("/sitemap.xml", h.Sitemap)
	r.GET("/health", h.Health)
}
