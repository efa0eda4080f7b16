package course

import (
	"erp/api/resource"
	"erp/api/response"
	courseapp "erp/application/course"
	"erp/domain/course"

	"github.com/gin-gonic/gin"
)

// View adds display labels to a course
type View struct {
	course.Course
	StatusLabel string `json:"status_label"`
	TypeLabel   string `json:"type_label"`
}

// NewView renders a course for the client
func NewView(c course.Course) View {
	return View{
		Course:      c,
		StatusLabel: course.StatusLabel(c.Status),
		TypeLabel:   course.TypeLabel(c.TypeCode),
	}
}

// Controller serves /courses
type Controller struct {
	service  *courseapp.Service
	handlers *resource.Handlers[course.Course, int64, View]
}

// NewController creates the course controller
func NewController(service *courseapp.Service) *Controller {
	return &Controller{
		service: service,
		handlers: &resource.Handlers[course.Course, int64, View]{
			Name:    "course",
			Service: service,
			Key:     resource.Int64Key("no"),
			WithKey: func(c course.Course, no int64) course.Course { c.No = no; return c },
			View:    NewView,
		},
	}
}

// RegisterRoutes registers the course routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/courses")
	group.GET("/types", c.Types)
	group.GET("/categories", c.Categories)
	group.GET("/code/:code", c.ByCode)
	c.handlers.Register(group, "/:no")
}

// Types lists the course types
// GET /api/v1/courses/types
func (c *Controller) Types(ctx *gin.Context) {
	types, err := c.service.Types(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, types, "course types retrieved")
}

// Categories lists the course categories
// GET /api/v1/courses/categories
func (c *Controller) Categories(ctx *gin.Context) {
	categories, err := c.service.Categories(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, categories, "course categories retrieved")
}

// ByCode finds a course by code
// GET /api/v1/courses/code/:code
func (c *Controller) ByCode(ctx *gin.Context) {
	found, ok, err := c.service.GetByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !ok {
		response.HandleNotFound(ctx, "course not found")
		return
	}
	response.HandleSuccess(ctx, NewView(found), "course retrieved")
}
