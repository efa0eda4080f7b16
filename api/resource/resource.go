/*
Package resource holds the list, search, statistics and CRUD handlers shared
by every entity controller. A controller supplies how to read its key from the
path, how to put that key on a decoded body, and how to render a record.

Parameter errors answer 400 through response.HandleError. Service errors go
through response.HandleAppError, which maps them to status codes.
*/
package resource

import (
	"context"
	"net/http"
	"strings"

	"erp/api/params"
	"erp/api/response"
	"erp/domain/query"

	"github.com/gin-gonic/gin"
)

// Service is the facade a resource drives. *crud.Service satisfies it, as do
// entity services that override some of its methods.
type Service[T any, K comparable] interface {
	List(ctx context.Context, spec query.Spec) (query.PageResult[T], error)
	Search(ctx context.Context, term string, spec query.Spec) (query.PageResult[T], error)
	Statistics(ctx context.Context, spec query.Spec, groupBy string) (query.Statistics, error)
	GetByKey(ctx context.Context, key K) (T, bool, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) (T, bool, error)
	Delete(ctx context.Context, key K) (bool, error)
}

// Handlers binds a Service to gin
type Handlers[T any, K comparable, V any] struct {
	Name    string
	Service Service[T, K]
	// Key reads the key from the path
	Key func(c *gin.Context) (K, error)
	// WithKey copies the path key onto a decoded body before an update
	WithKey func(entity T, key K) T
	// View renders a record for the client
	View func(T) V
}

// Register adds the standard routes under group. keyPath is the path suffix
// naming the key, e.g. "/:code".
func (h *Handlers[T, K, V]) Register(group *gin.RouterGroup, keyPath string) {
	group.GET("", h.List)
	group.GET("/search", h.Search)
	group.GET("/statistics", h.Statistics)
	group.POST("", h.Create)
	group.GET(keyPath, h.Get)
	group.PUT(keyPath, h.Update)
	group.DELETE(keyPath, h.Delete)
}

// List answers one page of the filtered collection
func (h *Handlers[T, K, V]) List(c *gin.Context) {
	page, err := h.Service.List(c.Request.Context(), params.Spec(c))
	if err != nil {
		response.HandleAppError(c, err)
		return
	}
	response.HandlePage(c, page, h.View, h.Name+" list retrieved")
}

// Search lists records matching q, or search when q is absent
func (h *Handlers[T, K, V]) Search(c *gin.Context) {
	spec := params.Spec(c)
	term := c.Query("q")
	if strings.TrimSpace(term) == "" {
		term = spec.SearchTerm
	}
	page, err := h.Service.Search(c.Request.Context(), term, spec)
	if err != nil {
		response.HandleAppError(c, err)
		return
	}
	response.HandlePage(c, page, h.View, h.Name+" search completed")
}

// Statistics answers counts and sums of the filtered set
func (h *Handlers[T, K, V]) Statistics(c *gin.Context) {
	stats, err := h.Service.Statistics(c.Request.Context(), params.Spec(c), c.Query("groupBy"))
	if err != nil {
		response.HandleAppError(c, err)
		return
	}
	response.HandleSuccess(c, stats, h.Name+" statistics retrieved")
}

// Get answers one record or 404
func (h *Handlers[T, K, V]) Get(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}
	entity, found, err := h.Service.GetByKey(c.Request.Context(), key)
	if err != nil {
		response.HandleAppError(c, err)
		return
	}
	if !found {
		response.HandleNotFound(c, h.Name+" not found")
		return
	}
	response.HandleSuccess(c, h.View(entity), h.Name+" retrieved")
}

// Create decodes the body and inserts it
func (h *Handlers[T, K, V]) Create(c *gin.Context) {
	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		response.HandleError(c, err, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.Service.Create(c.Request.Context(), entity)
	if err != nil {
		response.HandleAppError(c, err)
		return
	}
	response.HandleCreated(c, h.View(created), h.Name+" created")
}

// Update replaces the record named by the path. The body's key is ignored.
func (h *Handlers[T, K, V]) Update(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}
	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		response.HandleError(c, err, "invalid request body", http.StatusBadRequest)
		return
	}
	updated, found, err := h.Service.Update(c.Request.Context(), h.WithKey(entity, key))
	if err != nil {
		response.HandleAppError(c, err)
		return
	}
	if !found {
		response.HandleNotFound(c, h.Name+" not found")
		return
	}
	response.HandleSuccess(c, h.View(updated), h.Name+" updated")
}

// Delete removes the record, 404 when it was already gone
func (h *Handlers[T, K, V]) Delete(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}
	deleted, err := h.Service.Delete(c.Request.Context(), key)
	if err != nil {
		response.HandleAppError(c, err)
		return
	}
	if !deleted {
		response.HandleNotFound(c, h.Name+" not found")
		return
	}
	response.HandleNoContent(c)
}

func (h *Handlers[T, K, V]) key(c *gin.Context) (K, bool) {
	key, err := h.Key(c)
	if err != nil {
		response.HandleError(c, err, "invalid "+h.Name+" key", http.StatusBadRequest)
		return key, false
	}
	return key, true
}

// Identity renders a record as itself
func Identity[T any](entity T) T { return entity }

// Int64Key reads an integer key from the named path parameter
func Int64Key(name string) func(c *gin.Context) (int64, error) {
	return func(c *gin.Context) (int64, error) {
		return params.Int64Param(c, name)
	}
}
