package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/ldgen/models"
	"github.com/use-agent/ldgen/schema"
	"github.com/use-agent/ldgen/title"
)

// Render returns a handler for POST /api/v1/schemas/render.
//
// It is stateless: clients that keep their own list re-render an item after
// editing its title.
func Render() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RenderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if _, err := title.ParseURL(req.URL); err != nil {
			respondError(c, models.NewSchemaError(models.ErrCodeInvalidURL, "invalid URL", err))
			return
		}

		rec, snippet := schema.Build(req.URL, req.Title)
		if err := schema.Validate(rec); err != nil {
			respondError(c, models.NewSchemaError(models.ErrCodeInvalidInput, err.Error(), err))
			return
		}

		c.JSON(http.StatusOK, models.RenderResponse{Schema: rec, Snippet: snippet})
	}
}
