package customer

import (
	"errors"
	"strings"

	"erp/api/params"
	"erp/api/resource"
	"erp/api/response"
	customerapp "erp/application/customer"
	"erp/domain/customer"

	"github.com/gin-gonic/gin"
)

// Controller serves /customers
type Controller struct {
	service  *customerapp.Service
	handlers *resource.Handlers[customer.Customer, string, customer.Customer]
}

// NewController creates the customer controller
func NewController(service *customerapp.Service) *Controller {
	return &Controller{
		service: service,
		handlers: &resource.Handlers[customer.Customer, string, customer.Customer]{
			Name:    "customer",
			Service: service,
			Key:     codeParam,
			WithKey: func(c customer.Customer, code string) customer.Customer { c.Code = code; return c },
			View:    resource.Identity[customer.Customer],
		},
	}
}

// RegisterRoutes registers the customer routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/customers")
	group.GET("/letter/:letter", c.ByLetter)
	c.handlers.Register(group, "/:code")
}

// ByLetter lists customers by initial letter, "0-9" for digits
// GET /api/v1/customers/letter/:letter
func (c *Controller) ByLetter(ctx *gin.Context) {
	page, err := c.service.ByLetter(ctx.Request.Context(), ctx.Param("letter"), params.Spec(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, resource.Identity[customer.Customer], "customers retrieved")
}

func codeParam(c *gin.Context) (string, error) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return "", errors.New("customer code is required")
	}
	return code, nil
}
