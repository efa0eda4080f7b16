package invoice

import (
	"net/http"
	"strconv"
	"strings"

	"erp/api/params"
	"erp/api/resource"
	"erp/api/response"
	invoiceapp "erp/application/invoice"
	"erp/domain/invoice"
	"erp/pkg/money"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// View adds display fields to an invoice
type View struct {
	invoice.Invoice
	StatusLabel    string          `json:"status_label"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
}

// NewView renders an invoice for the client
func NewView(i invoice.Invoice) View {
	return View{
		Invoice:        i,
		StatusLabel:    invoice.StatusLabel(i.StatusCode),
		Total:          i.Total(),
		TotalFormatted: money.FormatGBP(i.Total()),
	}
}

// LineView adds display fields to an invoice line
type LineView struct {
	invoice.Line
	ChargeFormatted string `json:"charge_formatted"`
	RefundFormatted string `json:"refund_formatted"`
}

// NewLineView renders an invoice line for the client
func NewLineView(l invoice.Line) LineView {
	return LineView{
		Line:            l,
		ChargeFormatted: money.FormatGBP(l.Charge),
		RefundFormatted: money.FormatGBP(l.Refund),
	}
}

// Controller serves /invoices and /invoice-lines
type Controller struct {
	service  *invoiceapp.Service
	lines    *invoiceapp.LineService
	invoices *resource.Handlers[invoice.Invoice, int64, View]
	lineRes  *resource.Handlers[invoice.Line, int64, LineView]
}

// NewController creates the invoice controller
func NewController(service *invoiceapp.Service, lines *invoiceapp.LineService) *Controller {
	return &Controller{
		service: service,
		lines:   lines,
		invoices: &resource.Handlers[invoice.Invoice, int64, View]{
			Name:    "invoice",
			Service: service,
			Key:     resource.Int64Key("id"),
			WithKey: func(i invoice.Invoice, id int64) invoice.Invoice { i.ID = id; return i },
			View:    NewView,
		},
		lineRes: &resource.Handlers[invoice.Line, int64, LineView]{
			Name:    "invoice line",
			Service: lines,
			Key:     resource.Int64Key("id"),
			WithKey: func(l invoice.Line, id int64) invoice.Line { l.ID = id; return l },
			View:    NewLineView,
		},
	}
}

// RegisterRoutes registers the invoice and invoice line routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/invoices")
	invoices.GET("/overdue", c.Overdue)
	invoices.GET("/by-contract", c.ByContract)
	invoices.GET("/:id/lines", c.Lines)
	invoices.GET("/:id/history", c.History)
	invoices.POST("/:id/history", c.AddHistory)
	invoices.PUT("/:id/history/:historyId", c.UpdateHistory)
	invoices.DELETE("/:id/history/:historyId", c.DeleteHistory)
	c.invoices.Register(invoices, "/:id")

	lines := router.Group("/invoice-lines")
	lines.PUT("/:id/refund", c.UpdateRefund)
	c.lineRes.Register(lines, "/:id")
}

// Overdue lists unpaid invoices past their end date
// GET /api/v1/invoices/overdue
func (c *Controller) Overdue(ctx *gin.Context) {
	page, err := c.service.Overdue(ctx.Request.Context(), params.Spec(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, NewView, "overdue invoices retrieved")
}

// ByContract finds an invoice by contract code and sequence number
// GET /api/v1/invoices/by-contract?contractCode=K100&seqNo=1
func (c *Controller) ByContract(ctx *gin.Context) {
	code := strings.TrimSpace(ctx.Query("contractCode"))
	seqNo, err := strconv.ParseInt(ctx.Query("seqNo"), 10, 64)
	if code == "" || err != nil {
		response.HandleError(ctx, err, "contractCode and a numeric seqNo are required", http.StatusBadRequest)
		return
	}
	inv, found, err := c.service.GetByContract(ctx.Request.Context(), code, seqNo)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !found {
		response.HandleNotFound(ctx, "invoice not found")
		return
	}
	response.HandleSuccess(ctx, NewView(inv), "invoice retrieved")
}

// Lines lists the lines of one invoice
// GET /api/v1/invoices/:id/lines
func (c *Controller) Lines(ctx *gin.Context) {
	id, ok := invoiceID(ctx)
	if !ok {
		return
	}
	page, err := c.service.Lines(ctx.Request.Context(), id, params.Spec(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, NewLineView, "invoice lines retrieved")
}

// History lists the notes and audit entries of one invoice
// GET /api/v1/invoices/:id/history
func (c *Controller) History(ctx *gin.Context) {
	id, ok := invoiceID(ctx)
	if !ok {
		return
	}
	page, err := c.service.History(ctx.Request.Context(), id, params.Spec(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePage(ctx, page, resource.Identity[invoice.History], "invoice history retrieved")
}

// HistoryRequest is the body of a history note
type HistoryRequest struct {
	Type      string `json:"type"`
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	CreatedBy string `json:"created_by"`
}

// AddHistory attaches a note to an invoice
// POST /api/v1/invoices/:id/history
func (c *Controller) AddHistory(ctx *gin.Context) {
	id, ok := invoiceID(ctx)
	if !ok {
		return
	}
	var req HistoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := c.service.AddHistory(ctx.Request.Context(), invoice.History{
		InvoiceID: id,
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, created, "invoice history added")
}

// UpdateHistory replaces the title and content of a note
// PUT /api/v1/invoices/:id/history/:historyId
func (c *Controller) UpdateHistory(ctx *gin.Context) {
	id, ok := invoiceID(ctx)
	if !ok {
		return
	}
	historyID, err := params.Int64Param(ctx, "historyId")
	if err != nil {
		response.HandleError(ctx, err, "invalid history id", http.StatusBadRequest)
		return
	}
	var req HistoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request body", http.StatusBadRequest)
		return
	}
	existing, found, err := c.service.GetHistory(ctx.Request.Context(), historyID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !found || existing.InvoiceID != id {
		response.HandleNotFound(ctx, "invoice history not found")
		return
	}
	updated, _, err := c.service.UpdateHistory(ctx.Request.Context(), historyID, req.Title, req.Content)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, updated, "invoice history updated")
}

// DeleteHistory removes a note from an invoice
// DELETE /api/v1/invoices/:id/history/:historyId
func (c *Controller) DeleteHistory(ctx *gin.Context) {
	id, ok := invoiceID(ctx)
	if !ok {
		return
	}
	historyID, err := params.Int64Param(ctx, "historyId")
	if err != nil {
		response.HandleError(ctx, err, "invalid history id", http.StatusBadRequest)
		return
	}
	deleted, err := c.service.DeleteHistory(ctx.Request.Context(), id, historyID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !deleted {
		response.HandleNotFound(ctx, "invoice history not found")
		return
	}
	response.HandleNoContent(ctx)
}

// RefundRequest is the body of a refund update
type RefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// UpdateRefund sets the off-hire refund of a line
// PUT /api/v1/invoice-lines/:id/refund
func (c *Controller) UpdateRefund(ctx *gin.Context) {
	id, err := params.Int64Param(ctx, "id")
	if err != nil {
		response.HandleError(ctx, err, "invalid invoice line id", http.StatusBadRequest)
		return
	}
	var req RefundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request body", http.StatusBadRequest)
		return
	}
	line, found, err := c.lines.UpdateRefund(ctx.Request.Context(), id, req.Amount)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !found {
		response.HandleNotFound(ctx, "invoice line not found")
		return
	}
	response.HandleSuccess(ctx, NewLineView(line), "refund updated")
}

func invoiceID(ctx *gin.Context) (int64, bool) {
	id, err := params.Int64Param(ctx, "id")
	if err != nil {
		response.HandleError(ctx, err, "invalid invoice id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
