package supplier

import (
	"erp/api/params"
	"erp/api/resource"
	"erp/api/response"
	supplierapp "erp/application/supplier"
	"erp/domain/supplier"

	"github.com/gin-gonic/gin"
)

// View adds the active flag and its label
type View struct {
	supplier.Supplier
	Active      bool   `json:"active"`
	StatusLabel string `json:"status_label"`
}

// NewView renders a supplier for the client
func NewView(s supplier.Supplier) View {
	return View{Supplier: s, Active: s.IsActive(), StatusLabel: s.StatusLabel()}
}

// Controller serves /suppliers
type Controller struct {
	service  *supplierapp.Service
	handlers *resource.Handlers[supplier.Supplier, int64, View]
}

// NewController creates the supplier controller
func NewController(service *supplierapp.Service) *Controller {
	return &Controller{
		service: service,
		handlers: &resource.Handlers[supplier.Supplier, int64, View]{
			Name:    "supplier",
			Service: service,
			Key:     resource.Int64Key("no"),
			WithKey: func(s supplier.Supplier, no int64) supplier.Supplier { s.No = no; return s },
			View:    NewView,
		},
	}
}

// RegisterRoutes registers the supplier routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/suppliers")
	group.GET("/active", c.Active)
	c.handlers.Register(group, "/:no")
}

// Active lists the active suppliers
// GET /api/v1/suppliers/active
func (c *Controller) Active(ctx *gin.Context) {
	page, err := c.service.Active(ctx.Request.Context(), params.Spec(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, NewView, "active suppliers retrieved")
}
