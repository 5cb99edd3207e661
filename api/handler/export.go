package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/ldgen/cache"
	"github.com/use-agent/ldgen/export"
	"github.com/use-agent/ldgen/models"
)

// ExportBatch returns a handler for GET /api/v1/schemas/:id/export.
// Query format=doc (default) or format=markdown.
func ExportBatch(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := store.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		writeExport(c, c.DefaultQuery("format", "doc"), export.ItemsFromBatch(b))
	}
}

// PostExport returns a handler for POST /api/v1/export.
//
// Items are numbered in request order starting at 1, and each snippet is
// rebuilt from its url and title.
func PostExport() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ExportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		items := make([]export.Item, 0, len(req.Items))
		for i, it := range req.Items {
			items = append(items, export.Rebuild(i+1, it.URL, it.Title))
		}
		writeExport(c, req.Format, items)
	}
}

func writeExport(c *gin.Context, format string, items []export.Item) {
	var (
		body     []byte
		filename string
		mimeType string
		err      error
	)
	switch format {
	case "", "doc":
		body, err = export.Word(items)
		filename, mimeType = export.WordFilename, export.WordMIMEType
	case "markdown":
		var md string
		md, err = export.Markdown(items)
		body = []byte(md)
		filename, mimeType = export.MarkdownFilename, export.MarkdownMIMEType
	default:
		badRequest(c, "format must be doc or markdown")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, mimeType, body)
}
