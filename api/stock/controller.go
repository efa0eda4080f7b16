package stock

import (
	"net/http"

	"erp/api/resource"
	"erp/api/response"
	stockapp "erp/application/stock"
	"erp/domain/stock"

	"github.com/gin-gonic/gin"
)

// View adds the display name to a stock item
type View struct {
	stock.Stock
	DisplayName string `json:"display_name"`
}

// NewView renders a stock item for the client
func NewView(s stock.Stock) View {
	return View{Stock: s, DisplayName: s.DisplayName()}
}

// Controller serves /stock
type Controller struct {
	service  *stockapp.Service
	handlers *resource.Handlers[stock.Stock, int64, View]
}

// NewController creates the stock controller
func NewController(service *stockapp.Service) *Controller {
	return &Controller{
		service: service,
		handlers: &resource.Handlers[stock.Stock, int64, View]{
			Name:    "stock",
			Service: service,
			Key:     resource.Int64Key("no"),
			WithKey: func(s stock.Stock, no int64) stock.Stock { s.No = no; return s },
			View:    NewView,
		},
	}
}

// RegisterRoutes registers the stock routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/stock")
	group.GET("/divisions", c.Divisions)
	group.POST("/names", c.Names)
	c.handlers.Register(group, "/:no")
}

// Divisions lists the distinct division numbers
// GET /api/v1/stock/divisions
func (c *Controller) Divisions(ctx *gin.Context) {
	divisions, err := c.service.Divisions(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, divisions, "divisions retrieved")
}

// NamesRequest lists the stock numbers to resolve
type NamesRequest struct {
	StockNos []int64 `json:"stock_nos"`
}

// Names resolves stock numbers to display names
// POST /api/v1/stock/names
func (c *Controller) Names(ctx *gin.Context) {
	var req NamesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request body", http.StatusBadRequest)
		return
	}
	names, err := c.service.Names(ctx.Request.Context(), req.StockNos)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, names, "stock names retrieved")
}
