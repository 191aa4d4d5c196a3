// Package httpresp holds the success envelopes shared by the JSON API.
package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse pairs a result set with its size so clients never need
// a follow-up count request.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
