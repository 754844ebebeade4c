package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"household-hub/internal/repository"
	"household-hub/internal/service"
)

// registerAssets mounts list/create/get/update/delete for one record kind.
func registerAssets[T repository.Asset](g *gin.RouterGroup, assets *service.Assets[T]) {
	g.GET("", func(c *gin.Context) {
		items, err := assets.List(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})

	g.POST("", func(c *gin.Context) {
		var item T
		if err := c.ShouldBindJSON(&item); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		if err := assets.Create(c.Request.Context(), &item); err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	})

	g.GET("/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		item, err := assets.Get(c.Request.Context(), id)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	})

	g.PUT("/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var item T
		if err := c.ShouldBindJSON(&item); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		updated, err := assets.Update(c.Request.Context(), id, &item)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := assets.Delete(c.Request.Context(), id); err != nil {
			handleError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
