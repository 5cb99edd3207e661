package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/ldgen/batch"
	"github.com/use-agent/ldgen/cache"
	"github.com/use-agent/ldgen/models"
	"github.com/use-agent/ldgen/webhook"
)

// PostSchemas returns a handler for POST /api/v1/schemas.
//
// The batch runs synchronously: the response carries every outcome in input
// order. The result is stored so titles can be edited and exported later.
// The requested concurrency is capped at maxConcurrency.
func PostSchemas(driver *batch.Driver, store *cache.Store, notifier *webhook.Notifier, maxConcurrency int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		req.Defaults()

		n := req.Concurrency
		if maxConcurrency > 0 && n > maxConcurrency {
			n = maxConcurrency
		}

		b, err := driver.WithConcurrency(n).ProcessAll(c.Request.Context(), req.Lines())
		if err != nil {
			respondError(c, err)
			return
		}
		store.Put(b)

		if req.WebhookURL != "" && notifier != nil {
			notifier.DeliverAsync(req.WebhookURL, webhook.NewGeneratedEvent(b), nil)
		}

		c.JSON(http.StatusOK, b)
	}
}

// GetSchemas returns a handler for GET /api/v1/schemas/:id.
func GetSchemas(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := store.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// PutTitle returns a handler for PUT /api/v1/schemas/:id/items/:number/title.
//
// The item's schema and snippet are rebuilt so alternateName always matches
// the edited title. The updated outcome is returned.
func PutTitle(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		number, err := strconv.Atoi(c.Param("number"))
		if err != nil || number < 1 {
			badRequest(c, "item number must be a positive integer")
			return
		}

		var req models.RetitleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		var updated models.Outcome
		_, err = store.Update(c.Param("id"), func(b *models.Batch) error {
			o, ok := b.Find(number)
			if !ok {
				return models.NewSchemaError(models.ErrCodeNotFound,
					"item "+strconv.Itoa(number)+" not found", nil)
			}
			batch.Retitle(o, req.Title)
			updated = *o
			return nil
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
