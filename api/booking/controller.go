package booking

import (
	"net/http"

	"erp/api/params"
	"erp/api/resource"
	"erp/api/response"
	bookingapp "erp/application/booking"
	"erp/domain/booking"
	"erp/pkg/money"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// View adds display fields to a booking
type View struct {
	booking.Booking
	StatusLabel    string          `json:"status_label"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
}

// NewView renders a booking for the client
func NewView(b booking.Booking) View {
	return View{
		Booking:        b,
		StatusLabel:    booking.StatusLabel(b.TypeCode),
		Total:          b.Total(),
		TotalFormatted: money.FormatGBP(b.Total()),
	}
}

// LineView adds display fields to a booking line
type LineView struct {
	booking.Line
	TypeLabel     string          `json:"type_label"`
	DeliveryLabel string          `json:"delivery_label"`
	Value         decimal.Decimal `json:"value"`
}

// NewLineView renders a booking line for the client
func NewLineView(l booking.Line) LineView {
	return LineView{
		Line:          l,
		TypeLabel:     booking.LineTypeLabel(l.Type),
		DeliveryLabel: booking.DeliveryTypeLabel(l.DeliveryType),
		Value:         l.Value(),
	}
}

// Controller serves /bookings and /booking-lines
type Controller struct {
	service  *bookingapp.Service
	bookings *resource.Handlers[booking.Booking, int64, View]
	lines    *resource.Handlers[booking.Line, booking.LineKey, LineView]
}

// NewController creates the booking controller
func NewController(service *bookingapp.Service, lines *bookingapp.LineService) *Controller {
	return &Controller{
		service: service,
		bookings: &resource.Handlers[booking.Booking, int64, View]{
			Name:    "booking",
			Service: service,
			Key:     resource.Int64Key("no"),
			WithKey: func(b booking.Booking, no int64) booking.Booking { b.No = no; return b },
			View:    NewView,
		},
		lines: &resource.Handlers[booking.Line, booking.LineKey, LineView]{
			Name:    "booking line",
			Service: lines,
			Key:     lineKey,
			WithKey: func(l booking.Line, key booking.LineKey) booking.Line {
				l.BookingNo, l.LineNo = key.BookingNo, key.LineNo
				return l
			},
			View: NewLineView,
		},
	}
}

// RegisterRoutes registers the booking and booking line routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/bookings")
	bookings.GET("/customer/:code", c.ByCustomer)
	bookings.GET("/:no/lines", c.Lines)
	c.bookings.Register(bookings, "/:no")

	c.lines.Register(router.Group("/booking-lines"), "/:no/:line")
}

// ByCustomer lists the bookings of one customer
// GET /api/v1/bookings/customer/:code
func (c *Controller) ByCustomer(ctx *gin.Context) {
	page, err := c.service.ByCustomer(ctx.Request.Context(), ctx.Param("code"), params.Spec(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, NewView, "bookings retrieved")
}

// Lines lists the lines of one booking in line order
// GET /api/v1/bookings/:no/lines
func (c *Controller) Lines(ctx *gin.Context) {
	no, err := params.Int64Param(ctx, "no")
	if err != nil {
		response.HandleError(ctx, err, "invalid booking number", http.StatusBadRequest)
		return
	}
	page, err := c.service.Lines(ctx.Request.Context(), no, params.Spec(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, NewLineView, "booking lines retrieved")
}

func lineKey(ctx *gin.Context) (booking.LineKey, error) {
	no, err := params.Int64Param(ctx, "no")
	if err != nil {
		return booking.LineKey{}, err
	}
	line, err := params.Int64Param(ctx, "line")
	if err != nil {
		return booking.LineKey{}, err
	}
	return booking.LineKey{BookingNo: no, LineNo: line}, nil
}
