package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexusriot/anacreon/internal/settings"
)

func registerCRUD[T settings.Record[T]](g *gin.RouterGroup, store settings.Store[T]) {
	g.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.List())
	})
	g.GET("/:id", withID(func(c *gin.Context, id int) {
		rec, err := store.Get(id)
		respond(c, http.StatusOK, rec, err)
	}))
	g.POST("", func(c *gin.Context) {
		var p settings.Patch
		if err := c.ShouldBindJSON(&p); err != nil {
			abortJSON(c, http.StatusBadRequest, err)
			return
		}
		rec, err := store.Create(p)
		respond(c, http.StatusCreated, rec, err)
	})
	g.PATCH("/:id", withID(func(c *gin.Context, id int) {
		var p settings.Patch
		if err := c.ShouldBindJSON(&p); err != nil {
			abortJSON(c, http.StatusBadRequest, err)
			return
		}
		rec, err := store.Update(id, p)
		respond(c, http.StatusOK, rec, err)
	}))
	g.POST("/:id/toggle", withID(func(c *gin.Context, id int) {
		rec, err := store.Toggle(id)
		respond(c, http.StatusOK, rec, err)
	}))
	g.DELETE("/:id", withID(func(c *gin.Context, id int) {
		if err := store.Delete(id); err != nil {
			respond[any](c, 0, nil, err)
			return
		}
		c.Status(http.StatusNoContent)
	}))
}

func withID(fn func(*gin.Context, int)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			abortJSON(c, http.StatusBadRequest, fmt.Errorf("invalid id %q", c.Param("id")))
			return
		}
		fn(c, id)
	}
}

func respond[T any](c *gin.Context, status int, v T, err error) {
	switch {
	case errors.Is(err, settings.ErrNotFound):
		abortJSON(c, http.StatusNotFound, err)
	case err != nil:
		abortJSON(c, http.StatusInternalServerError, err)
	default:
		c.JSON(status, v)
	}
}
